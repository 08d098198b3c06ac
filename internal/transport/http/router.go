package http

import (
	"context"
	"net/http"
	"time"

	"github.com/cwrk-planet/bizos/internal/metrics"
	httpmw "github.com/cwrk-planet/bizos/internal/transport/http/middleware"
	"github.com/cwrk-planet/bizos/pkg/httputil"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Handler        *Handler
	WS             http.HandlerFunc // nil: без websocket
	DB             Pinger
	Verifier       httpmw.TokenVerifier
	ImageLimiter   *httpmw.RateLimiter
	AllowedOrigins []string
	RequestTimeout time.Duration
	TrustProxy     bool // X-Forwarded-For/X-Real-IP только за своим прокси
}

func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}
	if len(d.AllowedOrigins) == 0 {
		d.AllowedOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	}
	h := d.Handler

	r := chi.NewRouter()
	r.Use(httputil.MiddlewareRequestID)
	if d.TrustProxy {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", "X-User-ID"},
		ExposedHeaders:   []string{HeaderNextCursor, httputil.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// WS вне middleware, которые оборачивают ResponseWriter (Hijack)
	if d.WS != nil {
		r.Get("/ws/chat-groups/{id}", d.WS)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.DB != nil {
			if err := d.DB.Ping(r.Context()); err != nil {
				httputil.Error(w, http.StatusServiceUnavailable, "database unavailable")
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(pr chi.Router) {
		pr.Use(httputil.MiddlewareLogging)
		pr.Use(metrics.Middleware)
		pr.Use(middleware.Timeout(d.RequestTimeout))
		pr.Use(httpmw.RequireJSON)
		pr.Use(httpmw.Auth(d.Verifier))

		pr.Route("/api", func(api chi.Router) {
			api.Route("/profiles", func(rt chi.Router) {
				rt.Post("/", h.CreateProfile)
				rt.Get("/by-email/{email}", h.GetProfileByEmail)
				rt.Get("/{id}", h.GetProfile)
				rt.Put("/{id}", h.UpdateProfile)
			})

			api.Route("/business-accounts", func(rt chi.Router) {
				rt.Post("/", h.CreateBusiness)
				rt.Get("/owner/{ownerId}", h.ListBusinessesByOwner)
				rt.Get("/{id}", h.GetBusiness)
				rt.Put("/{id}", h.UpdateBusiness)
			})

			api.Route("/chat-groups", func(rt chi.Router) {
				rt.Post("/", h.CreateGroup)
				rt.Get("/business/{businessId}", h.ListGroups)
				rt.Get("/{id}", h.GetGroup)
				rt.Put("/{id}", h.UpdateGroup)
			})

			api.Route("/group-members", func(rt chi.Router) {
				rt.Post("/", h.AddMember)
				rt.Get("/{groupId}", h.ListMembers)
				rt.Put("/{groupId}/{userId}", h.UpdateMember)
				rt.Delete("/{groupId}/{userId}", h.RemoveMember)
			})

			api.Route("/group-invitations", func(rt chi.Router) {
				rt.Post("/", h.CreateInvitation)
				rt.Get("/code/{code}", h.GetInvitation)
				rt.Post("/code/{code}/accept", h.AcceptInvitation)
				rt.Get("/group/{groupId}", h.ListInvitations)
				rt.Put("/{id}", h.UpdateInvitation)
			})

			api.Route("/chat-messages", func(rt chi.Router) {
				rt.Post("/", h.SendMessage)
				rt.Get("/{groupId}", h.ListMessages)
				rt.Put("/{id}", h.EditMessage)
			})

			api.Route("/typing-indicators", func(rt chi.Router) {
				rt.Post("/", h.Typing)
				rt.Get("/{groupId}", h.ListTyping)
				rt.Delete("/{groupId}/{userId}", h.ClearTyping)
			})

			api.Get("/generated-images/{businessId}", h.ListImages)
			api.With(limit(d.ImageLimiter, "/api/generate-image")).Post("/generate-image", h.GenerateImage)

			api.Route("/transactions", func(rt chi.Router) {
				rt.Post("/", h.CreateTransaction)
				rt.Get("/business/{businessId}", h.ListTransactions)
				rt.Put("/{id}", h.UpdateTransaction)
				rt.Delete("/{id}", h.DeleteTransaction)
			})

			api.Route("/documents", func(rt chi.Router) {
				rt.Post("/", h.CreateDocument)
				rt.Get("/business/{businessId}", h.ListDocuments)
				rt.Put("/{id}", h.UpdateDocument)
				rt.Delete("/{id}", h.DeleteDocument)
			})

			api.Route("/contacts", func(rt chi.Router) {
				rt.Post("/", h.CreateContact)
				rt.Get("/business/{businessId}", h.ListContacts)
				rt.Put("/{id}", h.UpdateContact)
				rt.Delete("/{id}", h.DeleteContact)
			})

			api.Get("/dashboard/{businessId}", h.Dashboard)
		})
	})

	return r
}

func limit(rl *httpmw.RateLimiter, route string) func(http.Handler) http.Handler {
	if rl == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return rl.Handler(route)
}
