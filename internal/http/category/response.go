package category

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/pocket/internal/category"
)

type categoryResponse struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Icon      category.Icon  `json:"icon"`
	Color     category.Color `json:"color"`
	Type      category.Type  `json:"type"`
	CreatedAt time.Time      `json:"created_at"`
}

func toResponse(c *category.Category) categoryResponse {
	return categoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Icon:      c.Icon,
		Color:     c.Color,
		Type:      c.Type,
		CreatedAt: c.CreatedAt,
	}
}

func toResponseList(cs []*category.Category) []categoryResponse {
	resp := make([]categoryResponse, len(cs))
	for i, c := range cs {
		resp[i] = toResponse(c)
	}

	return resp
}
