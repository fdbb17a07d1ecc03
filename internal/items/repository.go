package items

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/internal/repo"
	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// ListFilters describe the supported filter knobs for the items listing.
// ContainerIDs take precedence over RoomIDs for row selection; the service
// validates their cross-consistency before the query runs.
type ListFilters struct {
	Name         string
	RoomIDs      []int64
	ContainerIDs []int64
}

// Repository owns item persistence.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// FindByID loads the item without associations.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	if err := r.DB(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindDetail loads the item with its room and container references.
func (r *Repository) FindDetail(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := r.DB(ctx).
		Preload("Room").
		Preload("Container").
		First(&item, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new item row.
func (r *Repository) Create(ctx context.Context, item *models.Item) error {
	return r.DB(ctx).Create(item).Error
}

// Save writes back all mutable fields of an existing row.
func (r *Repository) Save(ctx context.Context, item *models.Item) error {
	return r.DB(ctx).Save(item).Error
}

// Delete removes an item row by ID.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	return r.DB(ctx).Where("id = ?", id).Delete(&models.Item{}).Error
}

func (r *Repository) listQuery(ctx context.Context, filters ListFilters) *gorm.DB {
	q := r.DB(ctx).Model(&models.Item{})

	if search := strings.TrimSpace(filters.Name); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(items.name) LIKE ?", pattern)
	}

	// The container set alone determines row selection when both are given;
	// the service has already verified the sets agree.
	switch {
	case len(filters.ContainerIDs) > 0:
		q = q.Where("items.container_id IN ?", filters.ContainerIDs)
	case len(filters.RoomIDs) > 0:
		q = q.Where("items.room_id IN ?", filters.RoomIDs)
	}

	return q
}

// List returns one page of filtered items plus the total count of the
// filtered set. Rows carry preloaded room/container references.
func (r *Repository) List(ctx context.Context, filters ListFilters, params pagination.Params) ([]models.Item, int64, error) {
	var total int64
	if err := r.listQuery(ctx, filters).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Item
	err := r.listQuery(ctx, filters).
		Preload("Room").
		Preload("Container").
		Order("items.id ASC").
		Scopes(repo.Paginate(params)).
		Find(&rows).
		Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountMismatchedContainers reports how many of the requested containers have
// a room reference outside the requested room set. A container without a room
// counts as mismatched.
func (r *Repository) CountMismatchedContainers(ctx context.Context, containerIDs, roomIDs []int64) (int64, error) {
	var mismatched int64
	err := r.DB(ctx).
		Model(&models.Container{}).
		Where("id IN ?", containerIDs).
		Where("room_id IS NULL OR room_id NOT IN ?", roomIDs).
		Count(&mismatched).
		Error
	return mismatched, err
}

// FindByScopeName looks up an item by case-insensitive name within a scope:
// inside a specific container, or loose within a room when containerID is nil.
func (r *Repository) FindByScopeName(ctx context.Context, name string, roomID int64, containerID *int64) (*models.Item, error) {
	q := r.DB(ctx).
		Preload("Room").
		Preload("Container").
		Where("LOWER(items.name) = LOWER(?)", name)

	if containerID != nil {
		q = q.Where("items.container_id = ?", *containerID)
	} else {
		q = q.Where("items.room_id = ? AND items.container_id IS NULL", roomID)
	}

	var item models.Item
	if err := q.First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
