package leads

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

func newHandlerRouter(repo Repository) http.Handler {
	h := NewHandler(repo, logging.Default())
	r := chi.NewRouter()
	r.Post("/leads", h.CreateAuditLead)
	r.Get("/admin/leads", h.ListLeads)
	r.Get("/admin/leads/{id}", h.GetLead)
	r.Patch("/admin/leads/{id}/status", h.UpdateLeadStatus)
	return r
}

func TestCreateAuditLead(t *testing.T) {
	repo := NewInMemoryRepository()
	router := newHandlerRouter(repo)

	body := `{"business_name":"Oma's Bakery","contact_phone":"0800000001","challenge_summary":"Debt collection"}`
	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var lead Lead
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&lead))
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, SourceAuditForm, lead.Source, "audit endpoint must stamp its own source")
	assert.Equal(t, StatusNew, lead.Status)
}

func TestCreateAuditLeadValidation(t *testing.T) {
	router := newHandlerRouter(NewInMemoryRepository())

	req := httptest.NewRequest(http.MethodPost, "/leads", strings.NewReader(`{"contact_phone":"0800000001"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/leads", bytes.NewReader([]byte("{not json")))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListLeads(t *testing.T) {
	repo := NewInMemoryRepository()
	_, err := repo.Create(context.Background(), validRequest())
	require.NoError(t, err)
	router := newHandlerRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads?limit=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ListLeadsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, 10, resp.Limit)
	require.Len(t, resp.Leads, 1)
	assert.Equal(t, "Oma's Bakery", resp.Leads[0].BusinessName)
}

func TestGetLead(t *testing.T) {
	repo := NewInMemoryRepository()
	lead, err := repo.Create(context.Background(), validRequest())
	require.NoError(t, err)
	router := newHandlerRouter(repo)

	req := httptest.NewRequest(http.MethodGet, "/admin/leads/"+lead.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin/leads/nope", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateLeadStatus(t *testing.T) {
	repo := NewInMemoryRepository()
	lead, err := repo.Create(context.Background(), validRequest())
	require.NoError(t, err)
	router := newHandlerRouter(repo)

	req := httptest.NewRequest(http.MethodPatch, "/admin/leads/"+lead.ID+"/status",
		strings.NewReader(`{"status":"contacted"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code)

	got, err := repo.GetByID(context.Background(), lead.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusContacted, got.Status)

	req = httptest.NewRequest(http.MethodPatch, "/admin/leads/"+lead.ID+"/status",
		strings.NewReader(`{"status":"bogus"}`))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
