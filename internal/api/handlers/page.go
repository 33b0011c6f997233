package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/loomworks/loomai/internal/api"
	"github.com/loomworks/loomai/internal/domain"
	"github.com/loomworks/loomai/internal/service"
)

type PageProcessor interface {
	ProcessPage(ctx context.Context, input service.ProcessInput) (*service.ProcessOutput, error)
	Search(ctx context.Context, query string, limit int) (*service.SearchOutput, error)
	Stats(ctx context.Context) (int64, error)
}

type PageHandler struct {
	svc PageProcessor
}

func NewPageHandler(svc PageProcessor) *PageHandler {
	return &PageHandler{svc: svc}
}

type ProcessRequest struct {
	URL     string `json:"url"`
	Content string `json:"content"`
}

type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

type SearchResponse struct {
	Query      string                `json:"query"`
	Results    []domain.ScoredResult `json:"results"`
	Count      int                   `json:"count"`
	DurationMs int                   `json:"duration_ms"`
	Highlight  string                `json:"highlight_script,omitempty"`
}

type HealthResponse struct {
	Status       string `json:"status"`
	IndexedPages int64  `json:"indexed_pages"`
}

// Process accepts a page capture from the extension and queues it for
// indexing.
func (h *PageHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.ProcessPage(r.Context(), service.ProcessInput{
		URL:     req.URL,
		Content: req.Content,
	})
	if err != nil {
		api.HandleError(w, err)
		return
	}

	status := http.StatusAccepted
	if out.Status == domain.PageStatusSkipped {
		status = http.StatusOK
	}
	api.Success(w, status, out)
}

// Search runs a semantic query over the indexed pages.
func (h *PageHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Search(r.Context(), req.Query, req.Limit)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	resp := SearchResponse{
		Query:      out.Query,
		Results:    out.Results,
		Count:      out.Count,
		DurationMs: out.DurationMs,
	}
	if out.Count > 0 {
		resp.Highlight = service.HighlightScript(out.Query)
	}
	api.Success(w, http.StatusOK, resp)
}

// Health reports service liveness and index size.
func (h *PageHandler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.Stats(r.Context())
	if err != nil {
		// Liveness should not depend on a healthy index count.
		api.Success(w, http.StatusOK, HealthResponse{Status: "ok"})
		return
	}
	api.Success(w, http.StatusOK, HealthResponse{Status: "ok", IndexedPages: count})
}
