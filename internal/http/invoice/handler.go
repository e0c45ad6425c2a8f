package invoice

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/faktur/internal/history"
	"github.com/MrJamesThe3rd/faktur/internal/printing"
)

type Handler struct {
	svc      *history.Service
	renderer *printing.Renderer
	now      func() time.Time
}

func NewHandler(svc *history.Service, renderer *printing.Renderer) *Handler {
	return &Handler{svc: svc, renderer: renderer, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Get("/{id}/pdf", h.pdf)
}

// PreviewRoutes serves endpoints that work on an unsaved form.
func (h *Handler) PreviewRoutes(r chi.Router) {
	r.Post("/pdf", h.previewPDF)
}

func (h *Handler) LedgerRoutes(r chi.Router) {
	r.Post("/totals", h.totals)
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.List())
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ledger, err := ledgerFrom(req.Items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Save(r.Context(), req.header(h.now()), ledger)
	if err != nil {
		if errors.Is(err, history.ErrStoreFailed) {
			slog.Error("failed to save invoice", "error", err)
			http.Error(w, "invoice could not be saved, try again", http.StatusServiceUnavailable)

			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Find(id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) pdf(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	rec, err := h.svc.Find(id)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			http.Error(w, "invoice not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.writePDF(w, printing.FromRecord(rec))
}

func (h *Handler) previewPDF(w http.ResponseWriter, r *http.Request) {
	var req formRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ledger, err := ledgerFrom(req.Items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.writePDF(w, printing.FromForm(req.header(h.now()), ledger))
}

func (h *Handler) totals(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Items []itemRequest `json:"items"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ledger, err := ledgerFrom(req.Items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, toTotalsResponse(ledger))
}

// writePDF renders into a buffer first so a failed render still gets a clean 500.
func (h *Handler) writePDF(w http.ResponseWriter, doc printing.Document) {
	var buf bytes.Buffer
	if err := h.renderer.WritePDF(&buf, doc); err != nil {
		slog.Error("failed to render pdf", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	name := doc.Header.Number
	if name == "" {
		name = "draft"
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", "invoice-"+name+".pdf"))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write pdf", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
