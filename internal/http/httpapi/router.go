package httpapi

import (
	stdhttp "net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/auth"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/http/handlers"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/infra/geoip"
	"github.com/Ramesh-Sakthivel-18/Gen-Jewels/internal/middleware"
)

// Options bundles the cross-cutting collaborators the router wires into its
// middleware chain and static file serving.
type Options struct {
	Logger          zerolog.Logger
	Auth            *auth.Service
	GeoResolver     geoip.CountryResolver
	CORSOrigins     []string
	RateLimitPerMin int
	StorageDir      string
	StorageBaseURL  string
}

func NewRouter(app *handlers.App, opts Options) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP, chimw.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(opts.Logger, opts.GeoResolver))
	r.Use(middleware.CORS(opts.CORSOrigins))
	if opts.RateLimitPerMin > 0 {
		r.Use(middleware.RateLimit(opts.RateLimitPerMin, time.Minute))
	}

	r.Get("/", app.Root)
	r.Get("/health", app.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", app.AuthRegister)
		r.Post("/login", app.AuthLogin)
	})

	r.Route("/generate", func(r chi.Router) {
		r.Use(middleware.AuthJWT(opts.Auth))
		r.Post("/", app.GenerateDesign)
		r.Post("/image-to-image", app.GenerateImageToImage)
		r.Get("/history", app.GenerateHistory)
	})

	if opts.StorageDir != "" {
		prefix := opts.StorageBaseURL
		if prefix == "" {
			prefix = "/storage"
		}
		fs := stdhttp.StripPrefix(prefix, stdhttp.FileServer(stdhttp.Dir(opts.StorageDir)))
		r.Handle(prefix+"/*", fs)
	}

	return r
}
