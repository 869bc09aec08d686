package report

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/http/respond"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/report"
)

type Handler struct {
	svc *report.Service
	cal *period.Calendar
}

func NewHandler(svc *report.Service, cal *period.Calendar) *Handler {
	return &Handler{svc: svc, cal: cal}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/dashboard", h.dashboard)
	r.Get("/day", h.day)
	r.Get("/range", h.resolve)
	r.Get("/categories/{id}", h.categoryTransactions)
	r.Get("/stream", h.stream)
}

// selection reads kind, month (1-12), year and week_offset. Missing fields
// default to the current period of the requested kind.
func (h *Handler) selection(r *http.Request) (period.Selection, error) {
	q := r.URL.Query()

	kind, err := period.ParseKind(q.Get("kind"))
	if err != nil {
		return period.Selection{}, err
	}

	sel := h.cal.Selection(kind)

	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil {
			return sel, fmt.Errorf("%w: month %q", period.ErrInvalidSelection, s)
		}

		sel.Month = m - 1
	}

	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return sel, fmt.Errorf("%w: year %q", period.ErrInvalidSelection, s)
		}

		sel.Year = y
	}

	if s := q.Get("week_offset"); s != "" {
		o, err := strconv.Atoi(s)
		if err != nil {
			return sel, fmt.Errorf("%w: week_offset %q", period.ErrInvalidSelection, s)
		}

		sel.WeekOffset = o
	}

	return sel, sel.Validate()
}

func breakdownType(r *http.Request) category.Type {
	if t := category.Type(r.URL.Query().Get("type")); t.Valid() {
		return t
	}

	return category.TypeExpense
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	sel, err := h.selection(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	sum, err := h.svc.Summary(r.Context(), sel, breakdownType(r))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toSummaryResponse(sum))
}

func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context())
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDashboardResponse(d))
}

func (h *Handler) day(w http.ResponseWriter, r *http.Request) {
	day := h.cal.Current()

	if s := r.URL.Query().Get("date"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, day.Location())
		if err != nil {
			http.Error(w, "invalid date", http.StatusBadRequest)
			return
		}

		day = t
	}

	rep, err := h.svc.Day(r.Context(), day)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toDayResponse(rep))
}

func (h *Handler) resolve(w http.ResponseWriter, r *http.Request) {
	sel, err := h.selection(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rng, err := h.cal.Resolve(sel)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, rangeResponse{
		Selection: toSelection(sel),
		Range:     toRange(rng),
		Previous:  toSelection(sel.Previous()),
		Next:      toSelection(sel.Next()),
	})
}

func (h *Handler) categoryTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	sel, err := h.selection(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	rep, err := h.svc.CategoryTransactions(r.Context(), id, sel)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toCategoryReportResponse(rep))
}

// stream pushes a summary snapshot as a server-sent event whenever the
// ledger changes, until the client goes away.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sel, err := h.selection(r)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for res := range h.svc.WatchSummary(r.Context(), sel, breakdownType(r)) {
		event, payload := "summary", any(nil)
		if res.Err != nil {
			slog.ErrorContext(r.Context(), "summary stream query failed", "error", res.Err)
			event, payload = "error", map[string]string{"error": "internal error"}
		} else {
			payload = toSummaryResponse(res.Value)
		}

		data, err := json.Marshal(payload)
		if err != nil {
			slog.Error("failed to encode response", "error", err)
			return
		}

		if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, data); err != nil {
			return
		}

		flusher.Flush()
	}
}
