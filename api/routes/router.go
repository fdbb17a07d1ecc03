package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/stockroomhq/stockroom-backend/api/controllers"
	"github.com/stockroomhq/stockroom-backend/api/handlers"
	"github.com/stockroomhq/stockroom-backend/api/middleware"
	containersvc "github.com/stockroomhq/stockroom-backend/internal/containers"
	floorsvc "github.com/stockroomhq/stockroom-backend/internal/floors"
	itemsvc "github.com/stockroomhq/stockroom-backend/internal/items"
	roomsvc "github.com/stockroomhq/stockroom-backend/internal/rooms"
	"github.com/stockroomhq/stockroom-backend/pkg/config"
	"github.com/stockroomhq/stockroom-backend/pkg/db"
	"github.com/stockroomhq/stockroom-backend/pkg/logger"
	"github.com/stockroomhq/stockroom-backend/pkg/metrics"
)

// Services bundles the domain services the router dispatches to.
type Services struct {
	Floors     floorsvc.Service
	Rooms      roomsvc.Service
	Containers containersvc.Service
	Items      itemsvc.Service
}

// NewRouter assembles the full route tree with shared middleware.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	svcs Services,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()

	var httpMetrics *metrics.HTTPMetrics
	if registry != nil {
		httpMetrics = metrics.NewHTTPMetrics(registry)
	}

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", handlers.HealthLive(cfg))
		r.Get("/ready", handlers.HealthReady(cfg, logg, dbP))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/floors", func(r chi.Router) {
			r.Post("/", controllers.CreateFloor(svcs.Floors, logg))
			r.Get("/", controllers.ListFloors(svcs.Floors, logg))
			r.Get("/{floorId}", controllers.GetFloor(svcs.Floors, logg))
			r.Put("/{floorId}", controllers.UpdateFloor(svcs.Floors, logg))
			r.Delete("/{floorId}", controllers.DeleteFloor(svcs.Floors, logg))
			r.Get("/{floorId}/rooms", controllers.ListFloorRooms(svcs.Floors, logg))
		})

		r.Route("/rooms", func(r chi.Router) {
			r.Post("/", controllers.CreateRoom(svcs.Rooms, logg))
			r.Get("/", controllers.ListRooms(svcs.Rooms, logg))
			r.Get("/{roomId}", controllers.GetRoom(svcs.Rooms, logg))
			r.Put("/{roomId}", controllers.UpdateRoom(svcs.Rooms, logg))
			r.Delete("/{roomId}", controllers.DeleteRoom(svcs.Rooms, logg))
			r.Get("/{roomId}/containers", controllers.ListRoomContainers(svcs.Rooms, logg))
			r.Post("/{roomId}/items", controllers.CreateRoomItem(svcs.Items, logg))
			r.Get("/{roomId}/items", controllers.ListRoomItems(svcs.Items, logg))
		})

		r.Route("/containers", func(r chi.Router) {
			// fixed segments go before the id route so chi matches them first
			r.Get("/search", controllers.SearchContainers(svcs.Containers, logg))
			r.Get("/all", controllers.ListAllContainers(svcs.Containers, logg))
			r.Post("/", controllers.CreateContainer(svcs.Containers, logg))
			r.Get("/", controllers.ListContainers(svcs.Containers, logg))
			r.Get("/{containerId}", controllers.GetContainer(svcs.Containers, logg))
			r.Put("/{containerId}", controllers.UpdateContainer(svcs.Containers, logg))
			r.Delete("/{containerId}", controllers.DeleteContainer(svcs.Containers, logg))
			r.Post("/{containerId}/items", controllers.CreateContainerItem(svcs.Items, logg))
		})

		r.Route("/items", func(r chi.Router) {
			r.Post("/", controllers.CreateItem(svcs.Items, logg))
			r.Get("/", controllers.ListItems(svcs.Items, logg))
			r.Put("/{itemId}", controllers.UpdateItem(svcs.Items, logg))
			r.Delete("/{itemId}", controllers.DeleteItem(svcs.Items, logg))
		})
	})

	return r
}
