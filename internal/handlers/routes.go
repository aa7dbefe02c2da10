package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/canteen-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Auth        *auth.AuthHandler
	Student     *StudentHandler
	Canteen     *CanteenHandler
	Reservation *ReservationHandler
	// Metrics is mounted at /metrics behind the admin check when set.
	Metrics http.Handler
}

func RegisterRoutes(r *chi.Mux, h Handlers) {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	config := huma.DefaultConfig("Canteen Reservation API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	if h.Metrics != nil {
		r.With(h.Auth.AdminMiddleware).Handle("/metrics", h.Metrics)
	}

	RegisterOperations(api, h)
}

func bearerAuth(o *huma.Operation) {
	o.Security = []map[string][]string{{"bearerAuth": {}}}
}

// RegisterOperations adds every API operation to api.
func RegisterOperations(api huma.API, h Handlers) {
	huma.Post(api, "/students", h.Student.HandleRegister, createdStatus)
	huma.Get(api, "/students/{id}", h.Student.HandleGet)
	huma.Get(api, "/me", h.Auth.HandleMe, bearerAuth)

	huma.Get(api, "/canteens", h.Canteen.HandleList)
	huma.Get(api, "/canteens/status", h.Canteen.HandleAllSlots)
	huma.Get(api, "/canteens/{id}", h.Canteen.HandleGet)
	huma.Get(api, "/canteens/{id}/status", h.Canteen.HandleCanteenSlots)
	huma.Post(api, "/canteens", h.Canteen.HandleCreate, bearerAuth, createdStatus)
	huma.Put(api, "/canteens/{id}", h.Canteen.HandleUpdate, bearerAuth)
	huma.Delete(api, "/canteens/{id}", h.Canteen.HandleDelete, bearerAuth)

	huma.Post(api, "/reservations", h.Reservation.HandleCreate, createdStatus)
	huma.Get(api, "/reservations/{id}", h.Reservation.HandleGet)
	huma.Delete(api, "/reservations/{id}", h.Reservation.HandleCancel)
}
