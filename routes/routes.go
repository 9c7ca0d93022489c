package routes

import (
	"backend/configs"
	"backend/controllers"
	"backend/middlewares"
	"backend/repository"
	"backend/services"
	"backend/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config, hub *ws.OrderHub) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	secret := cfg.JWTSecret

	// Repositories
	orderRepo := repository.NewOrderRepository(db)
	partnerRepo := repository.NewPartnerRepository(db)

	// Services
	orderSvc := services.NewOrderService(db, orderRepo, hub)
	assignSvc := services.NewAssignmentService(db, orderRepo, partnerRepo, hub)
	partnerSvc := services.NewPartnerService(db, partnerRepo, orderRepo)
	statsSvc := services.NewStatsService(db, orderRepo, partnerRepo)

	// Controllers
	authCtrl := controllers.NewAuthController(db, cfg)
	orderCtrl := controllers.NewOrderController(orderSvc, assignSvc)
	partnerCtrl := controllers.NewPartnerController(partnerSvc, orderSvc)
	adminCtrl := controllers.NewAdminController(partnerSvc, statsSvc)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(secret))
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.POST("/logout", authCtrl.Logout)
	}

	// Orders (admin only)
	o := r.Group("/orders", middlewares.AuthMiddleware(secret, "admin"))
	{
		o.POST("", orderCtrl.Create)
		o.GET("", orderCtrl.List)
		o.GET("/:id", orderCtrl.Detail)
		o.PATCH("/:id", orderCtrl.Update)
		o.DELETE("/:id", orderCtrl.Delete)
		o.POST("/:id/assign", orderCtrl.AssignPartner)
	}

	// Partner self-service
	p := r.Group("/partners", middlewares.AuthMiddleware(secret, "partner"))
	{
		p.PATCH("/availability", partnerCtrl.UpdateAvailability)
		p.PATCH("/location", partnerCtrl.UpdateLocation)
		p.GET("/orders", partnerCtrl.MyOrders)
		p.PATCH("/orders/:id/status", partnerCtrl.UpdateOrderStatus)
	}

	// Admin
	admin := r.Group("/admin", middlewares.AuthMiddleware(secret, "admin"))
	{
		admin.GET("/partners", adminCtrl.ListPartners)
		admin.DELETE("/partners/:id", adminCtrl.DeletePartner)
		admin.GET("/stats", adminCtrl.DashboardStats)
	}

	// Live order feed (admin dashboards)
	r.GET("/ws/orders", middlewares.AuthMiddleware(secret, "admin"), hub.HandleWebSocket)
}
