package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/ebookmarket/docs"
	accounthandlers "github.com/GlebRadaev/ebookmarket/internal/handlers/account"
	authhandlers "github.com/GlebRadaev/ebookmarket/internal/handlers/auth"
	balancehandlers "github.com/GlebRadaev/ebookmarket/internal/handlers/balance"
	ebookhandlers "github.com/GlebRadaev/ebookmarket/internal/handlers/ebooks"
	subscriptionhandlers "github.com/GlebRadaev/ebookmarket/internal/handlers/subscriptions"
	"github.com/GlebRadaev/ebookmarket/internal/metrics"
	"github.com/GlebRadaev/ebookmarket/internal/service"
	"github.com/GlebRadaev/ebookmarket/pkg/auth"
	"github.com/GlebRadaev/ebookmarket/pkg/utils"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	ChangePassword(w http.ResponseWriter, r *http.Request)
	DeleteAccount(w http.ResponseWriter, r *http.Request)
}

type BalanceHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	Withdraw(w http.ResponseWriter, r *http.Request)
	GetWithdrawals(w http.ResponseWriter, r *http.Request)
}

type EbookHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Popular(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Purchase(w http.ResponseWriter, r *http.Request)
	Created(w http.ResponseWriter, r *http.Request)
	Purchased(w http.ResponseWriter, r *http.Request)
	Dashboard(w http.ResponseWriter, r *http.Request)
}

type SubscriptionHandler interface {
	Plans(w http.ResponseWriter, r *http.Request)
	Subscribe(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
}

// HealthChecker reports whether storage runs without its primary backend.
type HealthChecker interface {
	Degraded() bool
}

type Handlers struct {
	AuthHandler         AuthHandler
	AccountHandler      AccountHandler
	BalanceHandler      BalanceHandler
	EbookHandler        EbookHandler
	SubscriptionHandler SubscriptionHandler

	authenticator auth.TokenAuthenticator
	health        HealthChecker
}

type healthResponse struct {
	Status  string `json:"status" example:"ok"`
	Storage string `json:"storage" example:"ok"`
}

func New(s *service.Services, health HealthChecker) *Handlers {
	return &Handlers{
		AuthHandler:         authhandlers.New(s.AuthService),
		AccountHandler:      accounthandlers.New(s.AccountService),
		BalanceHandler:      balancehandlers.New(s.BalanceService),
		EbookHandler:        ebookhandlers.New(s.EbookService),
		SubscriptionHandler: subscriptionhandlers.New(s.SubscriptionService),
		authenticator:       s.Authenticator,
		health:              health,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		metrics.InstrumentHandler,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Get("/health", h.Health)
	r.Handle("/metrics", metrics.Handler())

	authMiddleware := auth.AuthMiddleware(h.authenticator)

	r.Get("/api/subscriptions/plans", h.SubscriptionHandler.Plans)
	r.Route("/api/ebooks", func(r chi.Router) {
		r.Get("/", h.EbookHandler.List)
		r.Get("/popular", h.EbookHandler.Popular)
		r.Get("/{id}", h.EbookHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/", h.EbookHandler.Create)
			r.Post("/{id}/purchase", h.EbookHandler.Purchase)
		})
	})
	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware)
			r.Post("/logout", h.AuthHandler.Logout)
			r.Get("/me", h.AccountHandler.Me)
			r.Put("/profile", h.AccountHandler.UpdateProfile)
			r.Put("/password", h.AccountHandler.ChangePassword)
			r.Delete("/", h.AccountHandler.DeleteAccount)
			r.Get("/dashboard", h.EbookHandler.Dashboard)
			r.Route("/balance", func(r chi.Router) {
				r.Get("/", h.BalanceHandler.GetBalance)
				r.Post("/withdraw", h.BalanceHandler.Withdraw)
			})
			r.Get("/withdrawals", h.BalanceHandler.GetWithdrawals)
			r.Route("/ebooks", func(r chi.Router) {
				r.Get("/created", h.EbookHandler.Created)
				r.Get("/purchased", h.EbookHandler.Purchased)
			})
			r.Post("/subscription", h.SubscriptionHandler.Subscribe)
			r.Delete("/subscription", h.SubscriptionHandler.Cancel)
		})
	})

	return r
}

// Health godoc
//
//	@Summary		Service health
//	@Description	Storage is "degraded" once the primary key-value backend failed and data lives in memory only.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	healthResponse
//	@Router			/health [get]
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Storage: "ok"}
	if h.health != nil && h.health.Degraded() {
		resp.Storage = "degraded"
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
