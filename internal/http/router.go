package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"emoticare/internal/http/handlers"
	"emoticare/internal/middleware"
)

func NewRouter(app *handlers.App, country middleware.CountryLookup) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Region(country),
		middleware.Logger(app.Logger),
		middleware.CORS(app.Cfg.AllowedOrigins),
		middleware.RateLimit(app.Cfg.RateLimitPerMin, time.Minute),
		chimw.Recoverer,
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/support", app.Support)
		r.Post("/prescriptions/analyze", app.PrescriptionsAnalyze)
		r.Post("/surgery/simulate", app.SurgerySimulate)
		r.Post("/wounds/analyze", app.WoundsAnalyze)

		if app.HeyGen != nil {
			r.Route("/videos", func(r chi.Router) {
				r.Post("/", app.VideosCreate)
				r.Get("/{video_id}", app.VideoStatus)
				r.Post("/{video_id}/archive", app.VideoArchive)
			})
		}

		if app.Medications != nil {
			r.Route("/medications", func(r chi.Router) {
				r.Post("/", app.MedicationsCreate)
				r.Get("/{medication_id}", app.MedicationsGet)
				r.Put("/{medication_id}", app.MedicationsUpdate)
				r.Delete("/{medication_id}", app.MedicationsDelete)
			})
			r.Get("/patients/{patient_id}/medications", app.MedicationsListByPatient)
		}
	})

	return r
}
