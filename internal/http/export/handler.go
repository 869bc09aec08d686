package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/pocket/internal/export"
	"github.com/MrJamesThe3rd/pocket/internal/http/respond"
	txHandler "github.com/MrJamesThe3rd/pocket/internal/http/transaction"
	"github.com/MrJamesThe3rd/pocket/internal/period"
)

const filePrefix = "pocket"

type Handler struct {
	svc *export.Service
	cal *period.Calendar
}

func NewHandler(svc *export.Service, cal *period.Calendar) *Handler {
	return &Handler{svc: svc, cal: cal}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
}

// download sends the transactions matching the history filter as a CSV
// attachment. The file is built before anything is written so a failed query
// still yields a proper error status.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := txHandler.ParseFilter(r, h.cal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var buf bytes.Buffer

	n, err := h.svc.WriteCSV(r.Context(), filter, &buf)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", export.Filename(filePrefix, h.cal.Current())))
	w.Header().Set("X-Row-Count", strconv.Itoa(n))

	if _, err := buf.WriteTo(w); err != nil {
		slog.ErrorContext(r.Context(), "failed to write export", "error", err)
	}
}
