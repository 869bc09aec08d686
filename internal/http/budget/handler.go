package budget

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/budget"
	"github.com/MrJamesThe3rd/pocket/internal/http/respond"
)

type Handler struct {
	svc *budget.Service
}

func NewHandler(svc *budget.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/", h.set)
	r.Get("/progress", h.progress)
	r.Get("/{id}", h.get)
	r.Delete("/{id}", h.delete)
}

// month reads month (1-12) and year from the query, defaulting to the
// current month.
func (h *Handler) month(r *http.Request) (int, int, bool) {
	month, year := h.svc.Current()

	q := r.URL.Query()

	if s := q.Get("month"); s != "" {
		m, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, false
		}

		month = m
	}

	if s := q.Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			return 0, 0, false
		}

		year = y
	}

	return month, year, true
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.month(r)
	if !ok {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	bs, err := h.svc.List(r.Context(), month, year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	total, err := h.svc.Total(r.Context(), month, year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, listResponse{
		Month:   month,
		Year:    year,
		Total:   total,
		Budgets: toResponseList(bs),
	})
}

type setBudgetRequest struct {
	CategoryID uuid.UUID `json:"category_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	Amount     int64     `json:"amount"`
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Month == 0 && req.Year == 0 {
		req.Month, req.Year = h.svc.Current()
	}

	b, err := h.svc.Set(r.Context(), budget.SetParams{
		CategoryID: req.CategoryID,
		Month:      req.Month,
		Year:       req.Year,
		Amount:     req.Amount,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	month, year, ok := h.month(r)
	if !ok {
		http.Error(w, "invalid month", http.StatusBadRequest)
		return
	}

	ps, err := h.svc.Progress(r.Context(), month, year)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toProgressList(ps))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	b, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(b))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
