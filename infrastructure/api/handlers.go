package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopworks/catalogsync/domain/catalog"
	"github.com/shopworks/catalogsync/domain/tracking"
)

type handlers struct {
	tracker  *tracking.Tracker
	products catalog.Store
	logger   *slog.Logger
}

func newHandlers(tracker *tracking.Tracker, products catalog.Store, logger *slog.Logger) *handlers {
	return &handlers{tracker: tracker, products: products, logger: logger}
}

type cycleResponse struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Seen       int       `json:"seen"`
	Ingested   int       `json:"ingested"`
	Reconciled int       `json:"reconciled"`
	Unindexed  int       `json:"unindexed"`
	Skipped    int       `json:"skipped"`
	Failed     int       `json:"failed"`
}

type statusResponse struct {
	Cycles        int           `json:"cycles"`
	LastCycle     cycleResponse `json:"last_cycle"`
	TotalIngested int           `json:"total_ingested"`
	TotalFailed   int           `json:"total_failed"`
}

type productResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int    `json:"price"`
	Description string `json:"description"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Health handles GET /healthz.
func (h *handlers) Health(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Status handles GET /api/v1/status.
func (h *handlers) Status(w http.ResponseWriter, _ *http.Request) {
	snap := h.tracker.Snapshot()
	last := snap.LastCycle

	h.writeJSON(w, http.StatusOK, statusResponse{
		Cycles: snap.Cycles,
		LastCycle: cycleResponse{
			StartedAt:  last.StartedAt(),
			FinishedAt: last.FinishedAt(),
			Seen:       last.Seen(),
			Ingested:   last.Ingested(),
			Reconciled: last.Reconciled(),
			Unindexed:  last.Unindexed(),
			Skipped:    last.Skipped(),
			Failed:     last.Failed(),
		},
		TotalIngested: snap.TotalIngested,
		TotalFailed:   snap.TotalFailed,
	})
}

// SearchProducts handles GET /api/v1/products?q=...&category=...
func (h *handlers) SearchProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	products, err := h.products.Search(r.Context(), query.Get("q"), query.Get("category"))
	if err != nil {
		h.logger.Error("catalog search failed", "error", err)
		h.writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "catalog search failed"})
		return
	}

	out := make([]productResponse, 0, len(products))
	for _, p := range products {
		out = append(out, productResponse{
			ID:          p.ID(),
			Name:        p.Name(),
			Category:    p.Category(),
			Price:       p.Price(),
			Description: p.Description(),
			Stock:       p.Stock(),
			ImageURL:    p.ImageURL(),
		})
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"products": out})
}

func (h *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
