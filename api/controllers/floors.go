package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockroomhq/stockroom-backend/api/responses"
	"github.com/stockroomhq/stockroom-backend/api/validators"
	floorsvc "github.com/stockroomhq/stockroom-backend/internal/floors"
	pkgerrors "github.com/stockroomhq/stockroom-backend/pkg/errors"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
)

type floorRequest struct {
	Name        *string `json:"name"`
	FloorNumber *int    `json:"floor_number"`
}

// CreateFloor handles POST /api/v1/floors.
func CreateFloor(svc floorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "floor service unavailable"))
			return
		}

		var payload floorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		floor, err := svc.Create(r.Context(), floorsvc.FloorInput{Name: payload.Name, FloorNumber: payload.FloorNumber})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, floor)
	}
}

// ListFloors handles GET /api/v1/floors.
func ListFloors(svc floorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "floor service unavailable"))
			return
		}

		params, err := parsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := svc.List(r.Context(), params)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WritePage(w, page)
	}
}

// GetFloor handles GET /api/v1/floors/{floorId} with nested annotated rooms.
func GetFloor(svc floorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "floor service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "floorId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		floor, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, floor)
	}
}

// UpdateFloor handles PUT /api/v1/floors/{floorId} as a full replace.
func UpdateFloor(svc floorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "floor service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "floorId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload floorRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		floor, err := svc.Update(r.Context(), id, floorsvc.FloorInput{Name: payload.Name, FloorNumber: payload.FloorNumber})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, floor)
	}
}

// DeleteFloor handles DELETE /api/v1/floors/{floorId}. Rooms beneath the
// floor are detached, not deleted.
func DeleteFloor(svc floorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "floor service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "floorId"))
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

// ListFloorRooms handles GET /api/v1/floors/{floorId}/rooms.
func ListFloorRooms(svc floorsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "floor service unavailable"))
			return
		}

		id, err := validators.ParsePathID(chi.URLParam(r, "floorId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		options, err := svc.ListRooms(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if options == nil {
			options = []floorsvc.RoomOption{}
		}

		responses.WriteSuccess(w, options)
	}
}
