package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	admincontrollers "github.com/angelmondragon/storefront-backend/api/controllers/admin"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	"github.com/angelmondragon/storefront-backend/internal/address"
	"github.com/angelmondragon/storefront-backend/internal/analytics"
	"github.com/angelmondragon/storefront-backend/internal/auth"
	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/categories"
	"github.com/angelmondragon/storefront-backend/internal/checkout"
	"github.com/angelmondragon/storefront-backend/internal/content"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/users"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
	"github.com/angelmondragon/storefront-backend/pkg/redis"
)

// Dependencies are the collaborators mounted by NewRouter.
type Dependencies struct {
	DB             controllers.Pinger
	Redis          controllers.Pinger
	RateLimiter    redis.RateLimiter
	Idempotency    redis.IdempotencyStore
	Sessions       session.AccessSessionChecker
	Gatherer       prometheus.Gatherer
	HTTPMetrics    *metrics.HTTPMetrics
	Auth           auth.Service
	Users          users.Service
	Addresses      address.Service
	Categories     categories.Service
	Products       products.Service
	Content        content.Service
	Cart           cart.Service
	Checkout       checkout.Service
	Orders         orders.Service
	Analytics      analytics.Service
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	authenticated := middleware.Auth(cfg.JWT, deps.Sessions, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.DB, deps.Redis))
	})
	if deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(middleware.RegisterRateLimitPolicy(cfg.AuthRateLimit), deps.RateLimiter, logg)).
			Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(middleware.LoginRateLimitPolicy(cfg.AuthRateLimit), deps.RateLimiter, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.Auth, cfg.JWT, logg))
		r.With(authenticated).Get("/me", controllers.AuthMe(deps.Users, logg))
	})

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/", controllers.CategoryList(deps.Categories, logg))
		r.Get("/{slug}", controllers.CategoryGet(deps.Categories, logg))
		r.Get("/{slug}/products", controllers.CategoryProducts(deps.Categories, deps.Products, logg))
	})

	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", controllers.ProductList(deps.Products, logg))
		r.Get("/slug/{slug}", controllers.ProductGetBySlug(deps.Products, logg))
		r.Get("/{id}", controllers.ProductGet(deps.Products, logg))
		r.Get("/{id}/related", controllers.ProductRelated(deps.Products, logg))
	})

	r.Route("/api/content", func(r chi.Router) {
		r.Get("/banners", controllers.ContentBanners(deps.Content, logg))
		r.Get("/banners/{position}", controllers.ContentBannersAt(deps.Content, logg))
		r.Get("/carousel", controllers.ContentCarousel(deps.Content, logg))
		r.Get("/contact", controllers.ContentContact(deps.Content, logg))
	})

	r.Group(func(r chi.Router) {
		r.Use(authenticated)

		r.Route("/api/user", func(r chi.Router) {
			r.Get("/profile", controllers.ProfileGet(deps.Users, logg))
			r.Put("/profile", controllers.ProfileUpdate(deps.Users, logg))
		})

		r.Route("/api/addresses", func(r chi.Router) {
			r.Get("/", controllers.AddressList(deps.Addresses, logg))
			r.Post("/", controllers.AddressCreate(deps.Addresses, logg))
			r.Get("/{id}", controllers.AddressGet(deps.Addresses, logg))
			r.Put("/{id}", controllers.AddressUpdate(deps.Addresses, logg))
			r.Delete("/{id}", controllers.AddressDelete(deps.Addresses, logg))
			r.Patch("/{id}/set-default", controllers.AddressSetDefault(deps.Addresses, logg))
		})

		r.Route("/api/cart", func(r chi.Router) {
			r.Get("/", controllers.CartGet(deps.Cart, logg))
			r.Delete("/", controllers.CartClear(deps.Cart, logg))
			r.Post("/items", controllers.CartAddItem(deps.Cart, logg))
			r.Put("/items/{itemId}", controllers.CartUpdateItem(deps.Cart, logg))
			r.Delete("/items/{itemId}", controllers.CartRemoveItem(deps.Cart, logg))
		})

		r.Route("/api/orders", func(r chi.Router) {
			r.With(middleware.Idempotency(deps.Idempotency, logg)).Post("/", controllers.OrderCreate(deps.Checkout, logg))
			r.Get("/", controllers.OrderList(deps.Orders, logg))
			r.Get("/{id}", controllers.OrderGet(deps.Orders, logg))
			r.Patch("/{id}/cancel", controllers.OrderCancel(deps.Orders, logg))
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authenticated)
		r.Use(middleware.RequireRole(enums.UserRoleAdmin, logg))

		r.Get("/users", admincontrollers.UserList(deps.Users, logg))
		r.Patch("/users/{id}/role", admincontrollers.UserUpdateRole(deps.Users, logg))

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", admincontrollers.CategoryList(deps.Categories, logg))
			r.Post("/", admincontrollers.CategoryCreate(deps.Categories, logg))
			r.Put("/{id}", admincontrollers.CategoryUpdate(deps.Categories, logg))
			r.Delete("/{id}", admincontrollers.CategoryDelete(deps.Categories, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", admincontrollers.ProductList(deps.Products, logg))
			r.Post("/", admincontrollers.ProductCreate(deps.Products, logg))
			r.Get("/{id}", admincontrollers.ProductGet(deps.Products, logg))
			r.Put("/{id}", admincontrollers.ProductUpdate(deps.Products, logg))
			r.Delete("/{id}", admincontrollers.ProductDelete(deps.Products, logg))
			r.Post("/{productId}/variants", admincontrollers.VariantCreate(deps.Products, logg))
		})
		r.Put("/variants/{variantId}", admincontrollers.VariantUpdate(deps.Products, logg))
		r.Delete("/variants/{variantId}", admincontrollers.VariantDelete(deps.Products, logg))

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", admincontrollers.OrderList(deps.Orders, logg))
			r.Get("/stats/summary", admincontrollers.OrderStatsSummary(deps.Analytics, logg))
			r.Get("/stats/dashboard", admincontrollers.OrderStatsDashboard(deps.Analytics, logg))
			r.Get("/{id}", admincontrollers.OrderGet(deps.Orders, logg))
			r.Put("/{id}/status", admincontrollers.OrderUpdateStatus(deps.Orders, logg))
		})

		r.Route("/content", func(r chi.Router) {
			r.Get("/banners", admincontrollers.BannerList(deps.Content, logg))
			r.Post("/banners", admincontrollers.BannerCreate(deps.Content, logg))
			r.Put("/banners/{id}", admincontrollers.BannerUpdate(deps.Content, logg))
			r.Patch("/banners/{id}/toggle", admincontrollers.BannerToggle(deps.Content, logg))
			r.Delete("/banners/{id}", admincontrollers.BannerDelete(deps.Content, logg))

			r.Get("/carousel", admincontrollers.CarouselList(deps.Content, logg))
			r.Post("/carousel", admincontrollers.CarouselCreate(deps.Content, logg))
			r.Put("/carousel/reorder", admincontrollers.CarouselReorder(deps.Content, logg))
			r.Put("/carousel/{id}", admincontrollers.CarouselUpdate(deps.Content, logg))
			r.Patch("/carousel/{id}/toggle", admincontrollers.CarouselToggle(deps.Content, logg))
			r.Delete("/carousel/{id}", admincontrollers.CarouselDelete(deps.Content, logg))

			r.Get("/contact", admincontrollers.ContactGet(deps.Content, logg))
			r.Put("/contact", admincontrollers.ContactUpdate(deps.Content, logg))
		})

		r.Get("/dashboard", admincontrollers.Dashboard(deps.Analytics, logg))
		r.Get("/dashboard/analytics", admincontrollers.DashboardAnalytics(deps.Analytics, logg))
	})

	return r
}
