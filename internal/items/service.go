package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
	"github.com/stockroomhq/stockroom-backend/pkg/types"
)

// RoomItemsDefaultPageSize is the default page size for per-room item listings.
const RoomItemsDefaultPageSize = 50

// Service exposes item read and mutation operations.
type Service interface {
	Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error)
	List(ctx context.Context, input ListInput) (*pagination.Envelope, error)
	ListByRoom(ctx context.Context, roomID int64, params pagination.Params) (*pagination.Envelope, error)
	Update(ctx context.Context, id int64, patch UpdatePatch) (*ItemDTO, error)
	DeleteOrReduce(ctx context.Context, id int64, quantity *int) (*DeleteResult, error)
	UpsertInContainer(ctx context.Context, containerID int64, input UpsertItemInput) (*ItemDTO, error)
	UpsertLooseInRoom(ctx context.Context, roomID int64, input UpsertItemInput) (*ItemDTO, error)
}

// CreateItemInput holds the validated payload to create an item.
type CreateItemInput struct {
	Name        string
	Quantity    int
	RoomID      int64
	ContainerID *int64
}

// UpsertItemInput is the payload for the scoped add-item endpoints.
type UpsertItemInput struct {
	Name     string
	Quantity int
}

// ListInput captures the inputs needed to paginate/filter the items listing.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

// UpdatePatch holds tri-state mutation values: each field is independently
// absent, present with a value, or present as an explicit null.
type UpdatePatch struct {
	Name        types.NullableString `json:"name"`
	Quantity    types.NullableInt    `json:"quantity"`
	RoomID      types.NullableInt64  `json:"room_id"`
	ContainerID types.NullableInt64  `json:"container_id"`
}

type roomLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Room, error)
}

type containerLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Container, error)
}

type service struct {
	repo       *Repository
	rooms      roomLoader
	containers containerLoader
}

// NewService constructs an item service instance.
func NewService(repo *Repository, rooms roomLoader, containers containerLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if rooms == nil {
		return nil, fmt.Errorf("room loader required")
	}
	if containers == nil {
		return nil, fmt.Errorf("container loader required")
	}
	return &service{repo: repo, rooms: rooms, containers: containers}, nil
}

// Create inserts a new item after verifying its room and, when supplied, its
// container exist. The container's membership in the given room is not
// checked; create mirrors the historical behavior and only the list filters
// enforce cross-consistency.
func (s *service) Create(ctx context.Context, input CreateItemInput) (*ItemDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}

	if _, err := s.rooms.FindByID(ctx, input.RoomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errRoomNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}

	if input.ContainerID != nil {
		if _, err := s.containers.FindByID(ctx, *input.ContainerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errContainerNotFound()
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load container")
		}
	}

	item := &models.Item{
		Name:        name,
		Quantity:    input.Quantity,
		RoomID:      input.RoomID,
		ContainerID: input.ContainerID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert item")
	}

	return s.loadDTO(ctx, item.ID)
}

// List runs the filtered, counted, paginated items query. When both room and
// container filters are present, every requested container must belong to one
// of the requested rooms or the whole request is rejected.
func (s *service) List(ctx context.Context, input ListInput) (*pagination.Envelope, error) {
	params := input.Pagination.Normalize(pagination.DefaultPageSize)

	if len(input.Filters.RoomIDs) > 0 && len(input.Filters.ContainerIDs) > 0 {
		mismatched, err := s.repo.CountMismatchedContainers(ctx, input.Filters.ContainerIDs, input.Filters.RoomIDs)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check container rooms")
		}
		if mismatched > 0 {
			return nil, errContainerRoomMismatch()
		}
	}

	rows, total, err := s.repo.List(ctx, input.Filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list items")
	}

	envelope := pagination.NewEnvelope(dtosFromModels(rows), total, params)
	return &envelope, nil
}

// ListByRoom pages through a single room's items, 404ing on a missing room.
func (s *service) ListByRoom(ctx context.Context, roomID int64, params pagination.Params) (*pagination.Envelope, error) {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errRoomNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}

	normalized := params.Normalize(RoomItemsDefaultPageSize)
	rows, total, err := s.repo.List(ctx, ListFilters{RoomIDs: []int64{roomID}}, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list room items")
	}

	envelope := pagination.NewEnvelope(dtosFromModels(rows), total, normalized)
	return &envelope, nil
}

// Update applies the patch fields that were explicitly present in the request.
// An explicit null container_id detaches the item from its container.
func (s *service) Update(ctx context.Context, id int64, patch UpdatePatch) (*ItemDTO, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errItemNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	if err := applyPatch(item, patch); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update item")
	}

	return s.loadDTO(ctx, item.ID)
}

// DeleteOrReduce decrements the stored quantity when the requested amount is
// positive and strictly below the current quantity; any other request deletes
// the row outright.
func (s *service) DeleteOrReduce(ctx context.Context, id int64, quantity *int) (*DeleteResult, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errItemNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	if quantity != nil && *quantity > 0 && *quantity < item.Quantity {
		item.Quantity -= *quantity
		if err := s.repo.Save(ctx, item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reduce item quantity")
		}
		remaining := item.Quantity
		return &DeleteResult{Message: "Item quantity reduced", ID: item.ID, Quantity: &remaining}, nil
	}

	if err := s.repo.Delete(ctx, item.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete item")
	}
	return &DeleteResult{Message: "Item deleted", ID: item.ID}, nil
}

// UpsertInContainer adds quantity to an existing item with the same
// case-insensitive name inside the container, or inserts a new one.
func (s *service) UpsertInContainer(ctx context.Context, containerID int64, input UpsertItemInput) (*ItemDTO, error) {
	container, err := s.containers.FindByID(ctx, containerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errContainerNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load container")
	}
	if container.RoomID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "container is not assigned to a room")
	}

	return s.upsert(ctx, input, *container.RoomID, &container.ID)
}

// UpsertLooseInRoom adds quantity to an existing loose item with the same
// case-insensitive name in the room, or inserts a new one.
func (s *service) UpsertLooseInRoom(ctx context.Context, roomID int64, input UpsertItemInput) (*ItemDTO, error) {
	if _, err := s.rooms.FindByID(ctx, roomID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errRoomNotFound()
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}

	return s.upsert(ctx, input, roomID, nil)
}

func (s *service) upsert(ctx context.Context, input UpsertItemInput, roomID int64, containerID *int64) (*ItemDTO, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
	}

	existing, err := s.repo.FindByScopeName(ctx, name, roomID, containerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup item by name")
	}

	if existing != nil {
		existing.Quantity += input.Quantity
		if err := s.repo.Save(ctx, existing); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "increment item quantity")
		}
		return s.loadDTO(ctx, existing.ID)
	}

	item := &models.Item{
		Name:        name,
		Quantity:    input.Quantity,
		RoomID:      roomID,
		ContainerID: containerID,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert item")
	}
	return s.loadDTO(ctx, item.ID)
}

func (s *service) loadDTO(ctx context.Context, id int64) (*ItemDTO, error) {
	item, err := s.repo.FindDetail(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload item")
	}
	return dtoFromModel(item), nil
}

func applyPatch(item *models.Item, patch UpdatePatch) error {
	if patch.Name.Valid {
		if patch.Name.Value == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be null")
		}
		name := strings.TrimSpace(*patch.Name.Value)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		item.Name = name
	}

	if patch.Quantity.Valid {
		if patch.Quantity.Value == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be null")
		}
		if *patch.Quantity.Value < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be non-negative")
		}
		item.Quantity = *patch.Quantity.Value
	}

	if patch.RoomID.Valid {
		if patch.RoomID.Value == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "room_id cannot be null")
		}
		item.RoomID = *patch.RoomID.Value
	}

	if patch.ContainerID.Valid {
		// explicit null detaches the item from its container
		item.ContainerID = patch.ContainerID.Value
	}

	return nil
}

func errRoomNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "room not found").
		WithDetails(map[string]string{"reason": "room_not_found"})
}

func errContainerNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "container not found").
		WithDetails(map[string]string{"reason": "container_not_found"})
}

func errItemNotFound() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "item not found").
		WithDetails(map[string]string{"reason": "item_not_found"})
}

func errContainerRoomMismatch() *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, "container_room_mismatch")
}
