package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Bryan490125/Smart-Parking/config"
	"github.com/Bryan490125/Smart-Parking/internal/api/handler"
	"github.com/Bryan490125/Smart-Parking/internal/api/middleware"
	"github.com/Bryan490125/Smart-Parking/internal/model"
	"github.com/Bryan490125/Smart-Parking/pkg/jwt"
	"github.com/Bryan490125/Smart-Parking/pkg/redis"
)

// maxBodyBytes 全局请求体大小上限
const maxBodyBytes = 1 << 20 // 1MB

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录/注册限流防爆破）
		loginLimit := middleware.RateLimit(rdb, 10, time.Minute)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", loginLimit, h.Auth.Login)
			auth.POST("/register", loginLimit, h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth(model.RoleAdmin), h.User.ListUsers)
				users.POST("", middleware.RoleAuth(model.RoleAdmin), h.User.CreateUser)
				users.GET("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.GetUser)
				users.PUT("/me", h.User.UpdateProfile)
				users.PUT("/:id", h.User.UpdateUser) // admin 或本人（Service 层鉴权）
				users.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.DeleteUser)
			}

			// 停车区域模块
			zones := authorized.Group("/zones")
			{
				zones.GET("", h.Zone.ListZones)
				zones.GET("/:id", h.Zone.GetZone)
				zones.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Zone.CreateZone)
				zones.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Zone.UpdateZone)
				zones.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Zone.DeleteZone)
			}

			// 车位模块
			slots := authorized.Group("/slots")
			{
				slots.GET("", h.Slot.ListSlots)
				slots.GET("/availability", h.Slot.SlotAvailability)
				slots.GET("/:id", h.Slot.GetSlot)
				slots.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Slot.CreateSlot)
				slots.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Slot.UpdateSlot)
				slots.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Slot.DeleteSlot)
			}

			// 预约模块（本人/代订权限在 Service 层判定）
			reservations := authorized.Group("/reservations")
			{
				reservations.POST("", h.Reservation.CreateReservation)
				reservations.GET("", h.Reservation.ListReservations)
				reservations.GET("/:id", h.Reservation.GetReservation)
				reservations.PUT("/:id/cancel", h.Reservation.CancelReservation)
			}

			// 统计分析模块
			authorized.GET("/admin/analytics", middleware.RoleAuth(model.RoleAdmin), h.Analytics.Overview)

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/reservations", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Export.ExportReservations)
				export.GET("/my-reservations.ics", h.Export.ExportMyCalendar)
			}
		}
	}

	return r
}
