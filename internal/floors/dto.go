package floors

import (
	"time"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
)

// FloorDTO is the floor shape returned by list and mutation reads.
type FloorDTO struct {
	ID          int64     `json:"id"`
	Name        *string   `json:"name"`
	FloorNumber *int      `json:"floor_number"`
	CreatedAt   time.Time `json:"created_at"`
	RoomCount   int64     `json:"room_count"`
}

// FloorDetailDTO adds the floor's rooms, each annotated with child counts.
type FloorDetailDTO struct {
	FloorDTO
	Rooms []RoomSummary `json:"rooms"`
}

// RoomSummary is the annotated room shape embedded in floor detail responses.
type RoomSummary struct {
	ID             int64     `json:"id"`
	Name           *string   `json:"name"`
	FloorID        *int64    `json:"floor_id"`
	CreatedAt      time.Time `json:"created_at"`
	ItemCount      int64     `json:"item_count"`
	ContainerCount int64     `json:"container_count"`
}

// RoomOption is the lightweight shape for the floor's room dropdown.
type RoomOption struct {
	ID   int64   `json:"id"`
	Name *string `json:"name"`
}

// DeleteResult reports a completed floor deletion.
type DeleteResult struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

func dtoFromModel(floor *models.Floor, roomCount int64) *FloorDTO {
	return &FloorDTO{
		ID:          floor.ID,
		Name:        floor.Name,
		FloorNumber: floor.FloorNumber,
		CreatedAt:   floor.CreatedAt,
		RoomCount:   roomCount,
	}
}
