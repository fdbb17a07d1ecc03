package floors

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// Service exposes floor read and mutation operations.
type Service interface {
	Create(ctx context.Context, input FloorInput) (*FloorDTO, error)
	List(ctx context.Context, params pagination.Params) (*pagination.Envelope, error)
	Get(ctx context.Context, id int64) (*FloorDetailDTO, error)
	Update(ctx context.Context, id int64, input FloorInput) (*FloorDTO, error)
	Delete(ctx context.Context, id int64) (*DeleteResult, error)
	ListRooms(ctx context.Context, floorID int64) ([]RoomOption, error)
}

// FloorInput is the payload for floor create and full-replace update.
type FloorInput struct {
	Name        *string
	FloorNumber *int
}

type service struct {
	repo *Repository
}

// NewService constructs a floor service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("floor repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input FloorInput) (*FloorDTO, error) {
	floor := &models.Floor{Name: input.Name, FloorNumber: input.FloorNumber}
	if err := s.repo.Create(ctx, floor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert floor")
	}
	return dtoFromModel(floor, 0), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*pagination.Envelope, error) {
	normalized := params.Normalize(pagination.DefaultPageSize)

	rows, total, err := s.repo.List(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list floors")
	}

	ids := make([]int64, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	counts, err := s.repo.RoomCountsFor(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count floor rooms")
	}

	dtos := make([]*FloorDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, dtoFromModel(&rows[i], counts[rows[i].ID]))
	}

	envelope := pagination.NewEnvelope(dtos, total, normalized)
	return &envelope, nil
}

// Get returns the floor with its rooms, each annotated with child counts.
func (s *service) Get(ctx context.Context, id int64) (*FloorDetailDTO, error) {
	floor, err := s.loadFloor(ctx, id)
	if err != nil {
		return nil, err
	}

	rooms, err := s.repo.RoomsWithCounts(ctx, floor.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load floor rooms")
	}

	return &FloorDetailDTO{
		FloorDTO: *dtoFromModel(floor, int64(len(rooms))),
		Rooms:    rooms,
	}, nil
}

// Update fully replaces the floor's mutable fields.
func (s *service) Update(ctx context.Context, id int64, input FloorInput) (*FloorDTO, error) {
	floor, err := s.loadFloor(ctx, id)
	if err != nil {
		return nil, err
	}

	floor.Name = input.Name
	floor.FloorNumber = input.FloorNumber
	if err := s.repo.Save(ctx, floor); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update floor")
	}

	counts, err := s.repo.RoomCountsFor(ctx, []int64{floor.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count floor rooms")
	}
	return dtoFromModel(floor, counts[floor.ID]), nil
}

// Delete removes the floor. Its rooms are detached, never deleted; anything
// below them is untouched.
func (s *service) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	floor, err := s.loadFloor(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteDetachingRooms(ctx, floor.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete floor")
	}
	return &DeleteResult{Message: "Floor deleted successfully", ID: floor.ID}, nil
}

func (s *service) ListRooms(ctx context.Context, floorID int64) ([]RoomOption, error) {
	if _, err := s.loadFloor(ctx, floorID); err != nil {
		return nil, err
	}

	options, err := s.repo.RoomOptions(ctx, floorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list floor rooms")
	}
	return options, nil
}

func (s *service) loadFloor(ctx context.Context, id int64) (*models.Floor, error) {
	floor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "floor not found").
				WithDetails(map[string]string{"reason": "floor_not_found"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load floor")
	}
	return floor, nil
}
