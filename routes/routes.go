package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matchday-app/championship-engine/handlers"
	"github.com/matchday-app/championship-engine/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	jwtSecret string,
	authHandler *handlers.AuthHandler,
	championshipHandler *handlers.ChampionshipHandler,
	teamHandler *handlers.TeamHandler,
	matchHandler *handlers.MatchHandler,
	standingsHandler *handlers.StandingsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Post("/auth/register", authHandler.Register)
	router.Post("/auth/login", authHandler.Login)

	router.Get("/ws/championships/{championshipID}", webSocketHandler.ServeWs)

	router.Group(func(r chi.Router) {
		r.Use(middleware.Authenticate([]byte(jwtSecret)))

		r.Route("/championships", func(r chi.Router) {
			r.Post("/", championshipHandler.Create)
			r.Get("/", championshipHandler.List)
			r.Get("/current", championshipHandler.GetCurrent)
			r.Put("/current", championshipHandler.SetCurrent)

			r.Route("/{championshipID}", func(r chi.Router) {
				r.Get("/", championshipHandler.Get)
				r.Delete("/", championshipHandler.Delete)
				r.Patch("/status", championshipHandler.UpdateStatus)
				r.Post("/badge", teamHandler.UploadChampionshipBadge)

				r.Get("/standings", standingsHandler.GetStandings)

				r.Post("/fixtures", matchHandler.GenerateFixtures)
				r.Get("/matches", matchHandler.ListMatches)
				r.Put("/matches/{matchID}/result", matchHandler.RecordResult)

				r.Route("/teams", func(r chi.Router) {
					r.Post("/", teamHandler.AddTeam)
					r.Put("/{teamID}", teamHandler.UpdateTeam)
					r.Delete("/{teamID}", teamHandler.RemoveTeam)
					r.Post("/{teamID}/badge", teamHandler.UploadBadge)

					r.Post("/{teamID}/players", teamHandler.AddPlayer)
					r.Put("/{teamID}/players/{playerID}", teamHandler.UpdatePlayer)
					r.Delete("/{teamID}/players/{playerID}", teamHandler.RemovePlayer)
				})
			})
		})
	})
}
