package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	containersvc "github.com/stockroomhq/stockroom-backend/internal/containers"
	itemsvc "github.com/stockroomhq/stockroom-backend/internal/items"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

type containerRequest struct {
	Name   *string `json:"name"`
	RoomID *int64  `json:"room_id"`
}

// CreateContainer handles POST /api/v1/containers, writing the QR image as a
// side effect of creation.
func CreateContainer(svc containersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "container service unavailable"))
			return
		}

		var payload containerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		container, err := svc.Create(r.Context(), containersvc.ContainerInput{Name: payload.Name, RoomID: payload.RoomID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, container)
	}
}

// ListContainers handles GET /api/v1/containers with name/rooms filters.
func ListContainers(svc containersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "container service unavailable"))
			return
		}

		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		roomIDs, err := validators.ParseIDList(r, "rooms")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), containersvc.ListInput{
			Filters: containersvc.ListFilters{
				Name:    strings.TrimSpace(r.URL.Query().Get("name")),
				RoomIDs: roomIDs,
			},
			Pagination: params,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, page)
	}
}

// SearchContainers handles GET /api/v1/containers/search?q=&rooms=.
func SearchContainers(svc containersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "container service unavailable"))
			return
		}

		roomIDs, err := validators.ParseIDList(r, "rooms")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		options, err := svc.Search(r.Context(), r.URL.Query().Get("q"), roomIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if options == nil {
			options = []containersvc.Option{}
		}

		responses.WriteSuccess(w, options)
	}
}

// ListAllContainers handles GET /api/v1/containers/all?limit=&rooms= for
// dropdowns.
func ListAllContainers(svc containersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "container service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 1, containersvc.OptionsMaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		roomIDs, err := validators.ParseIDList(r, "rooms")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		options, err := svc.Options(r.Context(), limit, roomIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, options)
	}
}

// GetContainer handles GET /api/v1/containers/{containerId} with items.
func GetContainer(svc containersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "container service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "containerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		container, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, container)
	}
}

// UpdateContainer handles PUT /api/v1/containers/{containerId} as a full
// replace of name and room; the QR path is never modified here.
func UpdateContainer(svc containersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "container service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "containerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload containerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		container, err := svc.Update(r.Context(), id, containersvc.ContainerInput{Name: payload.Name, RoomID: payload.RoomID})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, container)
	}
}

// DeleteContainer handles DELETE /api/v1/containers/{containerId}.
func DeleteContainer(svc containersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "container service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "containerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CreateContainerItem handles POST /api/v1/containers/{containerId}/items as
// an upsert against the container's items.
func CreateContainerItem(svc itemsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "item service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "containerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload scopedItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.UpsertInContainer(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}
