package floors

import (
	"context"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// Repository owns floor persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads a floor without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Floor, error) {
	var floor models.Floor
	if err := r.DB(ctx).First(&floor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &floor, nil
}

// Create inserts a new floor row.
func (r *Repository) Create(ctx context.Context, floor *models.Floor) error {
	return r.DB(ctx).Create(floor).Error
}

// Save writes back all mutable fields of an existing row.
func (r *Repository) Save(ctx context.Context, floor *models.Floor) error {
	return r.DB(ctx).Save(floor).Error
}

// DeleteDetachingRooms removes the floor and clears the floor reference on
// its rooms. Rooms and everything beneath them survive.
func (r *Repository) DeleteDetachingRooms(ctx context.Context, id int64) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&models.Room{}).
			Where("floor_id = ?", id).
			Update("floor_id", nil).
			Error
		if err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Floor{}).Error
	})
}

// List returns one page of floors in ID order plus the total floor count.
func (r *Repository) List(ctx context.Context, params pagination.Params) ([]models.Floor, int64, error) {
	var total int64
	if err := r.DB(ctx).Model(&models.Floor{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Floor
	err := r.DB(ctx).
		Order("floors.id ASC").
		Scopes(repo.Paginate(params)).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// RoomCountsFor computes room counts grouped by floor for the given floor
// IDs. Floors without rooms are absent from the map.
func (r *Repository) RoomCountsFor(ctx context.Context, floorIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(floorIDs))
	if len(floorIDs) == 0 {
		return counts, nil
	}

	type grouped struct {
		FloorID int64
		N       int64
	}
	var rows []grouped
	err := r.DB(ctx).
		Model(&models.Room{}).
		Select("floor_id AS floor_id, COUNT(*) AS n").
		Where("floor_id IN ?", floorIDs).
		Group("floor_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.FloorID] = row.N
	}
	return counts, nil
}

// RoomsWithCounts loads the floor's rooms in ID order, each annotated with
// item and container counts computed by grouped aggregate queries.
func (r *Repository) RoomsWithCounts(ctx context.Context, floorID int64) ([]RoomSummary, error) {
	var rooms []models.Room
	err := r.DB(ctx).
		Where("floor_id = ?", floorID).
		Order("rooms.id ASC").
		Find(&rooms).
		Error
	if err != nil {
		return nil, err
	}

	summaries := make([]RoomSummary, 0, len(rooms))
	roomIDs := make([]int64, 0, len(rooms))
	for i := range rooms {
		roomIDs = append(roomIDs, rooms[i].ID)
	}

	type grouped struct {
		RoomID int64
		N      int64
	}
	itemCounts := map[int64]int64{}
	containerCounts := map[int64]int64{}
	if len(roomIDs) > 0 {
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
			itemCounts[row.RoomID] = row.N
		}

		var containerRows []grouped
		err = r.DB(ctx).
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
			containerCounts[row.RoomID] = row.N
		}
	}

	for i := range rooms {
		summaries = append(summaries, RoomSummary{
			ID:             rooms[i].ID,
			Name:           rooms[i].Name,
			FloorID:        rooms[i].FloorID,
			CreatedAt:      rooms[i].CreatedAt,
			ItemCount:      itemCounts[rooms[i].ID],
			ContainerCount: containerCounts[rooms[i].ID],
		})
	}
	return summaries, nil
}

// RoomOptions lists a floor's rooms as id/name pairs for dropdowns.
func (r *Repository) RoomOptions(ctx context.Context, floorID int64) ([]RoomOption, error) {
	var options []RoomOption
	err := r.DB(ctx).
		Model(&models.Room{}).
		Select("id, name").
		Where("floor_id = ?", floorID).
		Order("id ASC").
		Scan(&options).
		Error
	if err != nil {
		return nil, err
	}
	return options, nil
}
