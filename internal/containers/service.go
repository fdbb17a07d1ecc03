package containers

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"gorm.io/gorm"

	"github.com/stockroomhq/stockroom-backend/pkg/db/models"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/pagination"
)

const (
	// SearchLimit caps how many rows a name search returns.
	SearchLimit = 50
	// OptionsDefaultLimit is the dropdown listing size when none is given.
	OptionsDefaultLimit = 200
	// OptionsMaxLimit caps the dropdown listing size.
	OptionsMaxLimit = 500

	qrPublicPrefix = "/static/qr_codes"
)

// Service exposes container read and mutation operations.
type Service interface {
	Create(ctx context.Context, input ContainerInput) (*ContainerDTO, error)
	List(ctx context.Context, input ListInput) (*pagination.Envelope, error)
	Get(ctx context.Context, id int64) (*ContainerDetailDTO, error)
	Update(ctx context.Context, id int64, input ContainerInput) (*ContainerDetailDTO, error)
	Delete(ctx context.Context, id int64) (*DeleteResult, error)
	Search(ctx context.Context, q string, roomIDs []int64) ([]Option, error)
	Options(ctx context.Context, limit int, roomIDs []int64) (*OptionsPage, error)
}

// ContainerInput is the payload for container create and full-replace update.
type ContainerInput struct {
	Name   *string
	RoomID *int64
}

// ListInput captures the inputs for the paginated containers listing.
type ListInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

type qrWriter interface {
	Generate(content, filename string) error
	Remove(filename string) error
}

type service struct {
	repo *Repository
	qr   qrWriter
	log  *logger.Logger
}

// NewService constructs a container service instance. The QR writer's output
// directory is fixed at construction so tests can point it elsewhere.
func NewService(repo *Repository, qr qrWriter, log *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("container repository required")
	}
	if qr == nil {
		return nil, fmt.Errorf("qr writer required")
	}
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, qr: qr, log: log}, nil
}

// Create inserts the container, then writes its QR code image. A failed QR
// write leaves the row without a path; the row is not rolled back.
func (s *service) Create(ctx context.Context, input ContainerInput) (*ContainerDTO, error) {
	container := &models.Container{Name: input.Name, RoomID: input.RoomID}
	if err := s.repo.Create(ctx, container); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert container")
	}

	filename := qrFilename(container.ID)
	content := fmt.Sprintf("/containers/%d", container.ID)
	if err := s.qr.Generate(content, filename); err != nil {
		logCtx := s.log.WithField(ctx, "container_id", container.ID)
		s.log.Error(logCtx, "qr code generation failed", err)
		return dtoFromModel(container, 0), nil
	}

	qrPath := path.Join(qrPublicPrefix, filename)
	container.QRCodePath = &qrPath
	if err := s.repo.Save(ctx, container); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store qr path")
	}

	return dtoFromModel(container, 0), nil
}

func (s *service) List(ctx context.Context, input ListInput) (*pagination.Envelope, error) {
	params := input.Pagination.Normalize(pagination.DefaultPageSize)

	rows, total, err := s.repo.List(ctx, input.Filters, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list containers")
	}

	ids := make([]int64, 0, len(rows))
	for i := range rows {
		ids = append(ids, rows[i].ID)
	}
	counts, err := s.repo.ItemCountsFor(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count container items")
	}

	dtos := make([]*ContainerDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, dtoFromModel(&rows[i], counts[rows[i].ID]))
	}

	envelope := pagination.NewEnvelope(dtos, total, params)
	return &envelope, nil
}

func (s *service) Get(ctx context.Context, id int64) (*ContainerDetailDTO, error) {
	container, err := s.loadContainer(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.detail(ctx, container)
}

// Update fully replaces name and room. The QR path is never touched here;
// only deletion removes it.
func (s *service) Update(ctx context.Context, id int64, input ContainerInput) (*ContainerDetailDTO, error) {
	container, err := s.loadContainer(ctx, id)
	if err != nil {
		return nil, err
	}

	container.Name = input.Name
	container.RoomID = input.RoomID
	if err := s.repo.Save(ctx, container); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update container")
	}

	return s.detail(ctx, container)
}

// Delete removes the container and its items, then its QR image. A QR file
// that is already gone is fine; other removal failures are logged only, the
// database delete has already committed.
func (s *service) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	container, err := s.loadContainer(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteWithItems(ctx, container.ID); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete container")
	}

	if container.QRCodePath != nil {
		if err := s.qr.Remove(path.Base(*container.QRCodePath)); err != nil {
			logCtx := s.log.WithField(ctx, "container_id", container.ID)
			s.log.Error(logCtx, "qr code removal failed", err)
		}
	}

	return &DeleteResult{Message: "Container deleted", ID: container.ID}, nil
}

func (s *service) Search(ctx context.Context, q string, roomIDs []int64) ([]Option, error) {
	if strings.TrimSpace(q) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "search query is required")
	}

	options, err := s.repo.Search(ctx, q, roomIDs, SearchLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "search containers")
	}
	return options, nil
}

func (s *service) Options(ctx context.Context, limit int, roomIDs []int64) (*OptionsPage, error) {
	if limit <= 0 {
		limit = OptionsDefaultLimit
	}
	if limit > OptionsMaxLimit {
		limit = OptionsMaxLimit
	}

	options, total, err := s.repo.Options(ctx, roomIDs, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list container options")
	}
	if options == nil {
		options = []Option{}
	}

	return &OptionsPage{
		Data:    options,
		Total:   total,
		HasMore: total > int64(len(options)),
	}, nil
}

func (s *service) loadContainer(ctx context.Context, id int64) (*models.Container, error) {
	container, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "container not found").
				WithDetails(map[string]string{"reason": "container_not_found"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load container")
	}
	return container, nil
}

func (s *service) detail(ctx context.Context, container *models.Container) (*ContainerDetailDTO, error) {
	items, err := s.repo.Items(ctx, container.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load container items")
	}
	return detailFromModel(container, items), nil
}

func qrFilename(id int64) string {
	return fmt.Sprintf("container_%d.png", id)
}
