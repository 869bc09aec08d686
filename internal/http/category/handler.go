package category

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
	"github.com/MrJamesThe3rd/pocket/internal/http/respond"
)

type Handler struct {
	svc *category.Service
}

func NewHandler(svc *category.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/icons", h.icons)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type createCategoryRequest struct {
	Name  string         `json:"name"`
	Icon  category.Icon  `json:"icon"`
	Color category.Color `json:"color"`
	Type  category.Type  `json:"type"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), category.CreateParams{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
		Type:  req.Type,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, toResponse(c))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var filter category.ListFilter

	if s := r.URL.Query().Get("type"); s != "" {
		t := category.Type(s)
		if !t.Valid() {
			http.Error(w, "invalid type", http.StatusBadRequest)
			return
		}

		filter.Type = &t
	}

	cs, err := h.svc.List(r.Context(), filter)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponseList(cs))
}

func (h *Handler) icons(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, category.Icons())
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
}

type updateCategoryRequest struct {
	Name  *string         `json:"name,omitempty"`
	Icon  *category.Icon  `json:"icon,omitempty"`
	Color *category.Color `json:"color,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Update(r.Context(), id, category.UpdateParams{
		Name:  req.Name,
		Icon:  req.Icon,
		Color: req.Color,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(c))
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
