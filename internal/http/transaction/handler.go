package transaction

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/http/respond"
	"github.com/MrJamesThe3rd/pocket/internal/period"
	"github.com/MrJamesThe3rd/pocket/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
	cal *period.Calendar
}

func NewHandler(svc *transaction.Service, cal *period.Calendar) *Handler {
	return &Handler{svc: svc, cal: cal}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/history", h.history)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createTransactionRequest struct {
	Amount     int64         `json:"amount"`
	Name       string        `json:"name"`
	Note       string        `json:"note"`
	CategoryID uuid.UUID     `json:"category_id"`
	Type       category.Type `json:"type,omitempty"`
	Date       time.Time     `json:"date"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Create(r.Context(), transaction.CreateParams{
		Amount:     req.Amount,
		Name:       req.Name,
		Note:       req.Note,
		CategoryID: req.CategoryID,
		Type:       req.Type,
		Date:       req.Date,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(tx))
}

// ParseFilter reads the history filter shared by listing, grouping and export:
// q, category_id, type, start_date, end_date (YYYY-MM-DD, local days) and limit.
func ParseFilter(r *http.Request, cal *period.Calendar) (transaction.ListFilter, error) {
	q := r.URL.Query()
	filter := transaction.ListFilter{Search: q.Get("q")}

	if s := q.Get("category_id"); s != "" {
		id, err := uuid.Parse(s)
		if err != nil {
			return filter, errBadParam("category_id")
		}

		filter.CategoryID = &id
	}

	if s := q.Get("type"); s != "" {
		t := category.Type(s)
		if !t.Valid() {
			return filter, errBadParam("type")
		}

		filter.Type = &t
	}

	if s := q.Get("start_date"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, cal.Location)
		if err != nil {
			return filter, errBadParam("start_date")
		}

		start := cal.StartOfDay(t)
		filter.Start = &start
	}

	if s := q.Get("end_date"); s != "" {
		t, err := time.ParseInLocation(time.DateOnly, s, cal.Location)
		if err != nil {
			return filter, errBadParam("end_date")
		}

		end := cal.EndOfDay(t)
		filter.End = &end
	}

	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return filter, errBadParam("limit")
		}

		filter.Limit = n
	}

	return filter, nil
}

type errBadParam string

func (e errBadParam) Error() string {
	return "invalid " + string(e)
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r, h.cal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	views, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToViewResponseList(views))
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	filter, err := ParseFilter(r, h.cal)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	hist, err := h.svc.History(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toHistoryResponse(hist))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	v, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, ToViewResponse(v))
}

type updateTransactionRequest struct {
	Amount     *int64         `json:"amount,omitempty"`
	Name       *string        `json:"name,omitempty"`
	Note       *string        `json:"note,omitempty"`
	CategoryID *uuid.UUID     `json:"category_id,omitempty"`
	Type       *category.Type `json:"type,omitempty"`
	Date       *time.Time     `json:"date,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	tx, err := h.svc.Update(r.Context(), id, transaction.UpdateParams{
		Amount:     req.Amount,
		Name:       req.Name,
		Note:       req.Note,
		CategoryID: req.CategoryID,
		Type:       req.Type,
		Date:       req.Date,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
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
