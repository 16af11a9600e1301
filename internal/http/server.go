package httpapi

import (
	"net/http"
	"time"

	"faculty-reporting-backend-go/internal/config"
	"faculty-reporting-backend-go/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	DB      *sqlx.DB
	Config  config.Config
	Tokens  services.TokenService
	Monitor *services.ActivityHub
}

func NewServer(db *sqlx.DB, cfg config.Config, hub *services.ActivityHub) *Server {
	tokens := services.TokenService{
		Secret:     []byte(cfg.JWTSecret),
		Issuer:     cfg.JWTIssuer,
		AccessTTL:  time.Duration(cfg.AccessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(cfg.RefreshTTLSeconds) * time.Second,
	}
	return &Server{
		DB:      db,
		Config:  cfg,
		Tokens:  tokens,
		Monitor: hub,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/register", s.Register)
		api.Post("/auth/login", s.Login)
		api.Post("/auth/refresh", s.Refresh)

		api.Group(func(private chi.Router) {
			private.Use(WithAuth(s.Tokens))

			private.Get("/me", s.Me)

			private.Route("/reports", func(reports chi.Router) {
				reports.Post("/submit", s.SubmitReport)
				reports.Get("/view", s.ViewReports)
				reports.Get("/search", s.SearchReports)
				reports.Get("/download/{reportId}", s.DownloadReport)
				reports.Get("/monitoring/{userId}", s.MonitorReports)
				reports.Get("/export/excel", s.ExportReports)
				reports.Post("/review/{reportId}", s.ReviewReport)
			})

			private.Route("/feedback", func(feedback chi.Router) {
				feedback.Post("/submit", s.SubmitFeedback)
				feedback.Get("/report/{reportId}", s.FeedbackForReport)
			})

			private.Route("/ratings", func(ratings chi.Router) {
				ratings.Get("/ratees", s.ListRatees)
				ratings.Post("/submit", s.SubmitRating)
				ratings.Get("/view", s.ViewRatings)
				ratings.Get("/received", s.ReceivedRatings)
			})

			private.Route("/courses", func(courses chi.Router) {
				courses.Get("/view", s.ViewCourses)
				courses.Get("/lecturers", s.ListLecturers)
				courses.With(RequireCatalogManager).Post("/add", s.AddCourse)
				courses.With(RequireCatalogManager).Put("/update/{courseId}", s.UpdateCourse)
				courses.With(RequireCatalogManager).Delete("/delete/{courseId}", s.DeleteCourse)
			})

			private.Route("/classes", func(classes chi.Router) {
				classes.Get("/view", s.ViewClasses)
				classes.With(RequireCatalogManager).Post("/add", s.AddClass)
				classes.With(RequireCatalogManager).Put("/update/{classId}", s.UpdateClass)
				classes.With(RequireCatalogManager).Delete("/delete/{classId}", s.DeleteClass)
			})

			private.Get("/users/recipients", s.ListRecipients)
			private.Get("/monitor/history", s.MetricsHistory)
		})
	})

	r.Get("/ws/activity", s.ActivitySocket)
	return r
}
