package routes

import (
	"CheerioGo/controllers"
	"CheerioGo/middleware"
	"CheerioGo/services"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, analysis *services.AnalysisService, monitor *services.MonitorService, engine *services.ChallengeEngine, pets *services.PetService, store services.StateStore) {
	authController := controllers.NewAuthController(store)
	syncController := controllers.NewSyncController(store)
	bookingController := controllers.BookingController{}
	userController := controllers.NewUserController(monitor, store)
	wellnessController := controllers.NewWellnessController(analysis, monitor)
	challengeController := controllers.NewChallengeController(engine)
	petController := controllers.NewPetController(pets)

	// 分析接口路径是对外契约，不带版本前缀
	r.POST("/analyze-wellness", wellnessController.Analyze)
	r.GET("/analyze-wellness", wellnessController.Liveness)

	// 公开路由（无需认证）
	public := r.Group("/api/v1")
	{
		public.POST("/auth/register", authController.Register)
		public.POST("/auth/login", authController.Login)
		public.POST("/auth/demo", authController.DemoLogin)
	}

	// 需要认证的路由
	private := r.Group("/api/v1")
	private.Use(middleware.AuthMiddleware()) // 应用认证中间件
	{
		private.POST("/auth/logout", authController.Logout)

		private.GET("/user", userController.GetUser)
		private.PUT("/user/profile", userController.UpdateProfile)
		private.POST("/user/plan", userController.SelectPlan)
		private.GET("/user/stats", userController.GetStats)
		private.GET("/integrations", userController.GetIntegrations)

		private.GET("/state", syncController.RestoreState)
		private.POST("/state", syncController.SaveState)
		private.DELETE("/state/:key", syncController.DeleteState)

		private.POST("/wellness/monitoring/start", wellnessController.StartMonitoring)
		private.POST("/wellness/monitoring/stop", wellnessController.StopMonitoring)
		private.GET("/wellness/latest", wellnessController.LatestReading)
		private.GET("/wellness/history", wellnessController.History)

		private.GET("/challenges", challengeController.ListChallenges)
		private.POST("/challenges/:id/start", challengeController.StartChallenge)
		private.POST("/challenges/:id/pause", challengeController.PauseChallenge)
		private.POST("/challenges/:id/complete", challengeController.CompleteChallenge)

		private.GET("/pet", petController.GetPet)
		private.POST("/pet/interact", petController.Interact)
		private.PUT("/pet", petController.UpdatePet)

		private.POST("/bookings", bookingController.CreateBooking)
		private.GET("/bookings", bookingController.ListBookings)
	}

	// 内部路由组（仅限服务器内部调用）
	internal := r.Group("/internal")
	internal.Use(middleware.InternalAuthMiddleware())
	{
		internal.GET("/monitoring/active", func(c *gin.Context) {
			c.JSON(200, gin.H{"count": monitor.ActiveCount()})
		})
	}

	// 测试路由
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
