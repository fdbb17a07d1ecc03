package rooms

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// Counts carries the per-room aggregate child counts.
type Counts struct {
	Containers int64
	Items      int64
}

// Repository owns room persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads a room without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Room, error) {
	var room models.Room
	if err := r.DB(ctx).First(&room, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// Create inserts a new room row.
func (r *Repository) Create(ctx context.Context, room *models.Room) error {
	return r.DB(ctx).Create(room).Error
}

// Save writes back all mutable fields of an existing row.
func (r *Repository) Save(ctx context.Context, room *models.Room) error {
	return r.DB(ctx).Save(room).Error
}

// Delete removes a room row by ID. Foreign key violations from dependent
// containers or items surface as driver errors for the service to map.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.Room{}).Error
}

// List returns one page of rooms in ID order plus the total room count.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Room, int64, error) {
	var total int64
	if err := r.DB(ctx).Model(&models.Room{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Room
	err := r.DB(ctx).
		Order("rooms.id ASC").
		Scopes(repo.Paginate(params)).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListByFloor returns all rooms of a floor in ID order.
func (r *Repository) ListByFloor(ctx context.Context, floorID int64) ([]models.Room, error) {
	var rows []models.Room
	err := r.DB(ctx).
		Where("floor_id = ?", floorID).
		Order("rooms.id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// CountsFor computes container and item counts grouped by room for the given
// room IDs. Rooms without children are absent from the map.
func (r *Repository) CountsFor(ctx context.Context, roomIDs []int64) (map[int64]Counts, error) {
	counts := make(map[int64]Counts, len(roomIDs))
	if len(roomIDs) == 0 {
		return counts, nil
	}

	type grouped struct {
		RoomID int64
		N      int64
	}

	var containerRows []grouped
	err := r.DB(ctx).
		Model(&models.Container{}).
		Select("room_id AS room_id, COUNT(*) AS n").
		Where("room_id IN ?", roomIDs).
		Group("room_id").
		Scan(&containerRows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range containerRows {
		c := counts[row.RoomID]
		c.Containers = row.N
		counts[row.RoomID] = c
	}

	var itemRows []grouped
	err = r.DB(ctx).
		Model(&models.Item{}).
		Select("room_id AS room_id, COUNT(*) AS n").
		Where("room_id IN ?", roomIDs).
		Group("room_id").
		Scan(&itemRows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range itemRows {
		c := counts[row.RoomID]
		c.Items = row.N
		counts[row.RoomID] = c
	}

	return counts, nil
}

// ContainerOptions lists a room's containers as id/name pairs for dropdowns.
func (r *Repository) ContainerOptions(ctx context.Context, roomID int64) ([]ContainerOption, error) {
	var options []ContainerOption
	err := r.DB(ctx).
		Model(&models.Container{}).
		Select("id, name").
		Where("room_id = ?", roomID).
		Order("id ASC").
		Scan(&options).
		Error
	if err != nil {
		return nil, err
	}
	return options, nil
}
