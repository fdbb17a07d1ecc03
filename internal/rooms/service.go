package rooms

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

// Service exposes room read and mutation operations.
type Service interface {
	Create(ctx context.Context, input RoomInput) (*RoomDTO, error)
	List(ctx context.Context, params pagination.Params) (*pagination.Envelope, error)
	Get(ctx context.Context, id int64) (*RoomDTO, error)
	Update(ctx context.Context, id int64, input RoomInput) (*RoomDTO, error)
	Delete(ctx context.Context, id int64) (*DeleteResult, error)
	ListContainers(ctx context.Context, roomID int64) ([]ContainerOption, error)
}

// RoomInput is the payload for room create and full-replace update.
type RoomInput struct {
	Name    *string
	FloorID *int64
}

type service struct {
	repo *Repository
}

// NewService constructs a room service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("room repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input RoomInput) (*RoomDTO, error) {
	room := &models.Room{Name: input.Name, FloorID: input.FloorID}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert room")
	}
	return dtoFromModel(room, 0, 0), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (*pagination.Envelope, error) {
	normalized := params.Normalize(pagination.DefaultPageSize)

	rows, total, err := s.repo.List(ctx, normalized)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rooms")
	}

	ids := make([]int64, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	counts, err := s.repo.CountsFor(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count room children")
	}

	dtos := make([]*RoomDTO, 0, len(rows))
	for i := range rows {
		c := counts[rows[i].ID]
		dtos = append(dtos, dtoFromModel(&rows[i], c.Containers, c.Items))
	}

	envelope := pagination.NewEnvelope(dtos, total, normalized)
	return &envelope, nil
}

func (s *service) Get(ctx context.Context, id int64) (*RoomDTO, error) {
	room, err := s.loadRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.withCounts(ctx, room)
}

// Update fully replaces the room's mutable fields. A nil field clears the
// stored value rather than leaving it untouched.
func (s *service) Update(ctx context.Context, id int64, input RoomInput) (*RoomDTO, error) {
	room, err := s.loadRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	room.Name = input.Name
	room.FloorID = input.FloorID
	if err := s.repo.Save(ctx, room); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update room")
	}

	return s.withCounts(ctx, room)
}

// Delete removes an empty room. Rooms still holding containers or items are
// rejected so their children are never orphaned.
func (s *service) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	room, err := s.loadRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	counts, err := s.repo.CountsFor(ctx, []int64{room.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count room children")
	}
	if c := counts[room.ID]; c.Containers > 0 || c.Items > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "room still has containers or items")
	}

	if err := s.repo.Delete(ctx, room.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete room")
	}
	return &DeleteResult{Message: "Room deleted", ID: room.ID}, nil
}

func (s *service) ListContainers(ctx context.Context, roomID int64) ([]ContainerOption, error) {
	if _, err := s.loadRoom(ctx, roomID); err != nil {
		return nil, err
	}

	options, err := s.repo.ContainerOptions(ctx, roomID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list room containers")
	}
	return options, nil
}

func (s *service) loadRoom(ctx context.Context, id int64) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "room not found").
				WithDetails(map[string]string{"reason": "room_not_found"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load room")
	}
	return room, nil
}

func (s *service) withCounts(ctx context.Context, room *models.Room) (*RoomDTO, error) {
	counts, err := s.repo.CountsFor(ctx, []int64{room.ID})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count room children")
	}
	c := counts[room.ID]
	return dtoFromModel(room, c.Containers, c.Items), nil
}
