package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stocknote/stocknote-backend/api/controllers"
	"github.com/stocknote/stocknote-backend/api/middleware"
	"github.com/stocknote/stocknote-backend/internal/categories"
	"github.com/stocknote/stocknote-backend/internal/dashboard"
	"github.com/stocknote/stocknote-backend/internal/demo"
	"github.com/stocknote/stocknote-backend/internal/fieldprefs"
	"github.com/stocknote/stocknote-backend/internal/notifications"
	"github.com/stocknote/stocknote-backend/internal/orders"
	"github.com/stocknote/stocknote-backend/internal/stock"
	"github.com/stocknote/stocknote-backend/pkg/config"
	"github.com/stocknote/stocknote-backend/pkg/db"
	"github.com/stocknote/stocknote-backend/pkg/logger"
	"github.com/stocknote/stocknote-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	stockService stock.Service,
	ordersService orders.Service,
	categoriesService categories.Service,
	preferencesService fieldprefs.Service,
	dashboardService dashboard.Service,
	notificationsService notifications.Service,
	demoManager *demo.Manager,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, redisClient, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/stock-items", func(r chi.Router) {
			r.Get("/", controllers.ListStockItems(stockService, logg))
			r.Post("/", controllers.CreateStockItem(stockService, logg))
			r.Get("/{itemID}", controllers.GetStockItem(stockService, logg))
			r.Put("/{itemID}", controllers.UpdateStockItem(stockService, logg))
			r.Post("/{itemID}/adjust", controllers.AdjustStockItem(stockService, logg))
			r.Delete("/{itemID}", controllers.DeleteStockItem(stockService, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrders(ordersService, logg))
			r.Post("/", controllers.CreateOrder(ordersService, logg))
			r.Get("/{orderID}", controllers.GetOrder(ordersService, logg))
			r.Put("/{orderID}", controllers.UpdateOrder(ordersService, logg))
			r.Delete("/{orderID}", controllers.DeleteOrder(ordersService, logg))
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(categoriesService, logg))
			r.Post("/", controllers.CreateCategory(categoriesService, logg))
			r.Put("/{categoryID}", controllers.UpdateCategory(categoriesService, logg))
			r.Delete("/{categoryID}", controllers.DeleteCategory(categoriesService, logg))
		})

		r.Route("/preferences/{kind}", func(r chi.Router) {
			r.Get("/", controllers.GetPreferences(preferencesService, logg))
			r.Put("/", controllers.ReplacePreferences(preferencesService, logg))
			r.Post("/fields", controllers.AddPreferenceField(preferencesService, logg))
			r.Delete("/fields/{fieldID}", controllers.RemovePreferenceField(preferencesService, logg))
			r.Post("/fields/move", controllers.MovePreferenceField(preferencesService, logg))
			r.Put("/fields/{fieldID}/visibility", controllers.SetPreferenceFieldVisibility(preferencesService, logg))
		})

		r.Get("/dashboard", controllers.DashboardSummary(dashboardService, logg))

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Get("/unread-count", controllers.UnreadNotificationCount(notificationsService, logg))
			r.Post("/{notificationID}/read", controllers.MarkNotificationRead(notificationsService, logg))
			r.Post("/read-all", controllers.MarkAllNotificationsRead(notificationsService, logg))
		})

		r.Route("/demo", func(r chi.Router) {
			r.Get("/", controllers.DemoStatus(demoManager, logg))
			r.Put("/", controllers.SetDemoMode(demoManager, logg))
		})
	})

	return r
}
