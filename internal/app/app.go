package app

import (
	"net/http"
	"medremind/internal/app/deps"
	"medremind/internal/app/services"
	"medremind/internal/http/handlers/auth"
	confirmintake "medremind/internal/http/handlers/medicines/confirm_intake"
	createmedicine "medremind/internal/http/handlers/medicines/create_medicine"
	deletemedicine "medremind/internal/http/handlers/medicines/delete_medicine"
	listmedicines "medremind/internal/http/handlers/medicines/list_medicines"
	"medremind/internal/http/handlers/user/events"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	medicinesRouter := chi.NewRouter()
	medicinesRouter.Use(auth.SetAuthTokenToContext)
	medicinesRouter.Method(http.MethodGet, "/", listmedicines.New(s.ListMedicines, deps.Now))
	medicinesRouter.Method(http.MethodPost, "/", createmedicine.New(s.CreateMedicine))
	medicinesRouter.Method(http.MethodDelete, "/{medicineID:[0-9]+}", deletemedicine.New(s.DeleteMedicine))
	medicinesRouter.Method(
		http.MethodPost,
		"/{medicineID:[0-9]+}/confirm",
		confirmintake.New(s.ConfirmIntake, deps.Now),
	)
	medicinesRouter.Method(
		http.MethodGet,
		"/events",
		events.New(deps.Logger, deps.SseServer, s.GetUserBySessionToken),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/medicines", medicinesRouter)

	return &http.Server{
		Handler: router,
		Addr:    deps.Config.Address,
	}
}
