package strategy

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

// Handler serves strategy brief generation for the audit flow.
type Handler struct {
	generator Generator
	logger    *logging.Logger
}

// NewHandler creates a strategy handler.
func NewHandler(generator Generator, logger *logging.Logger) *Handler {
	if generator == nil {
		generator = FallbackGenerator{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		generator: generator,
		logger:    logger,
	}
}

// BriefResponse carries the generated text.
type BriefResponse struct {
	Brief string `json:"brief"`
}

// GenerateBrief handles POST /reports/strategy.
func (h *Handler) GenerateBrief(w http.ResponseWriter, r *http.Request) {
	var req BriefRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.BusinessName) == "" {
		http.Error(w, "business_name is required", http.StatusBadRequest)
		return
	}

	brief, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		h.logger.Error("strategy brief generation failed", "error", err, "business", req.BusinessName)
		http.Error(w, "failed to generate brief", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(BriefResponse{Brief: brief})
}
