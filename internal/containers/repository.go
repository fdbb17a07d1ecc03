package containers

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the containers listing.
type ListFilters struct {
	Name    string
	RoomIDs []int64
}

// Repository owns container persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads a container without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Container, error) {
	var container models.Container
	if err := r.DB(ctx).First(&container, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &container, nil
}

// Create inserts a new container row.
func (r *Repository) Create(ctx context.Context, container *models.Container) error {
	return r.DB(ctx).Create(container).Error
}

// Save writes back all mutable fields of an existing row.
func (r *Repository) Save(ctx context.Context, container *models.Container) error {
	return r.DB(ctx).Save(container).Error
}

// DeleteWithItems removes the container and its items in one transaction.
func (r *Repository) DeleteWithItems(ctx context.Context, id int64) error {
	return r.DB(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("container_id = ?", id).Delete(&models.Item{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Container{}).Error
	})
}

// Items loads the container's items in ID order.
func (r *Repository) Items(ctx context.Context, id int64) ([]models.Item, error) {
	var rows []models.Item
	err := r.DB(ctx).
		Where("container_id = ?", id).
		Order("items.id ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) listQuery(ctx context.Context, filters ListFilters) *gorm.DB {
	q := r.DB(ctx).Model(&models.Container{})

	if search := strings.TrimSpace(filters.Name); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(containers.name) LIKE ?", pattern)
	}
	if len(filters.RoomIDs) > 0 {
		q = q.Where("containers.room_id IN ?", filters.RoomIDs)
	}
	return q
}

// List returns one page of filtered containers plus the total filtered count.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Container, int64, error) {
	var total int64
	if err := r.listQuery(ctx, filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Container
	err := r.listQuery(ctx, filters).
		Order("containers.id ASC").
		Scopes(repo.Paginate(params)).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ItemCountsFor computes item counts grouped by container for the given IDs.
// Containers without items are absent from the map.
func (r *Repository) ItemCountsFor(ctx context.Context, containerIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(containerIDs))
	if len(containerIDs) == 0 {
		return counts, nil
	}

	type grouped struct {
		ContainerID int64
		N           int64
	}
	var rows []grouped
	err := r.DB(ctx).
		Model(&models.Item{}).
		Select("container_id AS container_id, COUNT(*) AS n").
		Where("container_id IN ?", containerIDs).
		Group("container_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.ContainerID] = row.N
	}
	return counts, nil
}

// Search finds containers whose name contains q case-insensitively, capped
// at limit rows in name order.
func (r *Repository) Search(ctx context.Context, q string, roomIDs []int64, limit int) ([]Option, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	query := r.DB(ctx).
		Model(&models.Container{}).
		Select("id, name, room_id").
		Where("LOWER(containers.name) LIKE ?", pattern)
	if len(roomIDs) > 0 {
		query = query.Where("containers.room_id IN ?", roomIDs)
	}

	var options []Option
	err := query.
		Order("containers.name ASC").
		Limit(limit).
		Scan(&options).
		Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

// Options lists up to limit containers as dropdown options plus the total
// count of the unclipped set.
func (r *Repository) Options(ctx context.Context, roomIDs []int64, limit int) ([]Option, int64, error) {
	base := r.DB(ctx).Model(&models.Container{})
	if len(roomIDs) > 0 {
		base = base.Where("containers.room_id IN ?", roomIDs)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var options []Option
	err := base.Session(&gorm.Session{}).
		Select("id, name, room_id").
		Order("containers.id ASC").
		Limit(limit).
		Scan(&options).
		Error
	if err != nil {
		return nil, 0, err
	}
	return options, total, nil
}
