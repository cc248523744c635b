package rest

import (
	"github.com/Dhoini/olio-backoffice/internal/api/rest/handlers"
	"github.com/Dhoini/olio-backoffice/internal/metrics"
	"github.com/Dhoini/olio-backoffice/internal/middleware"
	"github.com/Dhoini/olio-backoffice/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Handlers обработчики, которые подключает роутер
type Handlers struct {
	Auth      *handlers.AuthHandler
	Orders    *handlers.OrderHandler
	Messages  *handlers.MessageHandler
	Customers *handlers.CustomerHandler
	Dashboard *handlers.DashboardHandler
	Health    *handlers.HealthHandler
}

// SetupRouter настраивает маршрутизатор Gin с маршрутами и middleware
func SetupRouter(h Handlers, jwt *middleware.JWTMiddleware, registry *prometheus.Registry, log *logger.Logger) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestLogger(log))
	r.Use(gin.Recovery())
	r.Use(metrics.NewHTTPMetrics(registry).Middleware())

	// Endpoint для проверки работоспособности сервиса
	r.GET("/health", h.Health.HealthCheck)

	// Prometheus метрики
	r.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	api := r.Group("/api")
	{
		// Публичные формы сайта
		api.GET("/orders", h.Orders.GetProducts)
		api.POST("/orders", h.Orders.SubmitOrder)
		api.POST("/contact", h.Messages.SubmitContact)

		authGroup := api.Group("/admin/auth")
		{
			authGroup.POST("/login", h.Auth.Login)
			authGroup.POST("/logout", h.Auth.Logout)
		}

		admin := api.Group("/admin", jwt.RequireAuth())
		{
			settings := admin.Group("/settings")
			{
				settings.GET("", h.Auth.GetSettings)
				settings.PUT("/password", h.Auth.UpdatePassword)
				settings.PUT("/email", h.Auth.UpdateNotificationEmail)
			}

			orders := admin.Group("/orders")
			{
				orders.GET("", h.Orders.GetOrders)
				orders.POST("", h.Orders.CreateOrder)
				orders.PUT("/:id", h.Orders.UpdateOrder)
				orders.DELETE("/:id", h.Orders.DeleteOrder)
			}

			messages := admin.Group("/messages")
			{
				messages.GET("", h.Messages.GetMessages)
				messages.POST("", h.Messages.CreateMessage)
				messages.GET("/:id", h.Messages.GetMessage)
				messages.PUT("/:id", h.Messages.UpdateMessage)
				messages.DELETE("/:id", h.Messages.DeleteMessage)
			}

			clients := admin.Group("/clients")
			{
				clients.GET("", h.Customers.GetCustomers)
				clients.POST("", h.Customers.CreateCustomer)
				clients.PUT("/:id", h.Customers.UpdateCustomer)
				clients.DELETE("/:id", h.Customers.DeleteCustomer)
			}

			admin.GET("/products", h.Dashboard.GetProducts)
			admin.GET("/dashboard", h.Dashboard.GetDashboard)
		}
	}

	return r
}
