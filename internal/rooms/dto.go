package rooms

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// RoomDTO is the room shape returned by reads. ContainerCount and ItemCount
// are aggregate queries computed at read time.
type RoomDTO struct {
	ID             int64     `json:"id"`
	Name           *string   `json:"name"`
	FloorID        *int64    `json:"floor_id"`
	CreatedAt      time.Time `json:"created_at"`
	ContainerCount int64     `json:"container_count"`
	ItemCount      int64     `json:"item_count"`
}

// ContainerOption is the lightweight shape for the room's container dropdown.
type ContainerOption struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

// DeleteResult reports a completed room deletion.
type DeleteResult struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func dtoFromModel(room *models.Room, containerCount, itemCount int64) *RoomDTO {
	return &RoomDTO{
		ID:             room.ID,
		Name:           room.Name,
		FloorID:        room.FloorID,
		CreatedAt:      room.CreatedAt,
		ContainerCount: containerCount,
		ItemCount:      itemCount,
	}
}
