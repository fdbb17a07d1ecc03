package items

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// RoomRef is the lightweight room reference attached to item reads.
type RoomRef struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

// ContainerRef is the lightweight container reference attached to item reads.
type ContainerRef struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

// ItemDTO is the enriched item shape returned by every read and mutation.
// Room and Container are resolved at read time, not stored denormalized.
type ItemDTO struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Quantity    int           `json:"quantity"`
	RoomID      int64         `json:"room_id"`
	ContainerID *int64        `json:"container_id"`
	CreatedAt   time.Time     `json:"created_at"`
	Room        *RoomRef      `json:"room"`
	Container   *ContainerRef `json:"container"`
}

// DeleteResult reports the outcome of a delete-or-reduce call.
type DeleteResult struct {
	Message  string `json:"message"`
	ID       int64  `json:"id"`
	Quantity *int   `json:"quantity,omitempty"`
}

func dtoFromModel(item *models.Item) *ItemDTO {
	dto := &ItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Quantity:    item.Quantity,
		RoomID:      item.RoomID,
		ContainerID: item.ContainerID,
		CreatedAt:   item.CreatedAt,
	}
	if item.Room != nil {
		dto.Room = &RoomRef{ID: item.Room.ID, Name: item.Room.Name}
	}
	if item.Container != nil {
		dto.Container = &ContainerRef{ID: item.Container.ID, Name: item.Container.Name}
	}
	return dto
}

func dtosFromModels(rows []models.Item) []*ItemDTO {
	dtos := make([]*ItemDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, dtoFromModel(&rows[i]))
	}
	return dtos
}
