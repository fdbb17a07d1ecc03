package containers

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// ContainerDTO is the container shape returned by list and mutation reads.
type ContainerDTO struct {
	ID         int64     `json:"id"`
	Name       *string   `json:"name"`
	RoomID     *int64    `json:"room_id"`
	QRCodePath *string   `json:"qr_code_path"`
	ItemCount  int64     `json:"item_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// ContainerDetailDTO adds the container's items to the base shape.
type ContainerDetailDTO struct {
	ContainerDTO
	Items []ItemSummary `json:"items"`
}

// ItemSummary is the flat item shape embedded in container detail responses.
type ItemSummary struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Quantity    int       `json:"quantity"`
	RoomID      int64     `json:"room_id"`
	ContainerID *int64    `json:"container_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// Option is the lightweight shape used by search and dropdown listings.
type Option struct {
	ID     int64   `json:"id"`
	Name   *string `json:"name"`
	RoomID *int64  `json:"room_id"`
}

// OptionsPage is the capped dropdown listing envelope.
type OptionsPage struct {
	Data    []Option `json:"data"`
	Total   int64    `json:"total"`
	HasMore bool     `json:"hasMore"`
}

// DeleteResult reports a completed container deletion.
type DeleteResult struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func dtoFromModel(container *models.Container, itemCount int64) *ContainerDTO {
	return &ContainerDTO{
		ID:         container.ID,
		Name:       container.Name,
		RoomID:     container.RoomID,
		QRCodePath: container.QRCodePath,
		ItemCount:  itemCount,
		CreatedAt:  container.CreatedAt,
	}
}

func detailFromModel(container *models.Container, items []models.Item) *ContainerDetailDTO {
	summaries := make([]ItemSummary, 0, len(items))
	for i := range items {
		summaries = append(summaries, ItemSummary{
			ID:          items[i].ID,
			Name:        items[i].Name,
			Quantity:    items[i].Quantity,
			RoomID:      items[i].RoomID,
			ContainerID: items[i].ContainerID,
			CreatedAt:   items[i].CreatedAt,
		})
	}
	return &ContainerDetailDTO{
		ContainerDTO: *dtoFromModel(container, int64(len(items))),
		Items:        summaries,
	}
}
