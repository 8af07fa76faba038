package dialogue

import (
	"crypto/rand"

	"github.com/google/uuid"
)

// Ambiguous characters (0/O, 1/I/L) are left out so the code survives being
// read over the phone.
const refAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"

// NewCaseRef returns a short shareable reference like "SF-7KQ2M9".
func NewCaseRef() string {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "SF-" + uuid.NewString()[:6]
	}
	out := make([]byte, len(b))
	for i, v := range b {
		out[i] = refAlphabet[int(v)%len(refAlphabet)]
	}
	return "SF-" + string(out)
}
