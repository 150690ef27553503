package main

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/FamilyQT/controllers"
	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/middlewares"
	"github.com/FamilyQT/services"
)

func init() {
	initializers.LoadEnv()
	initializers.InitLogger()
	initializers.ConnectDB()
	services.InitPushNotificationService()
	services.InitEmailService()
	services.InitChatService()
}

func main() {
	defer initializers.Log.Sync()

	router := gin.New()
	router.Use(gin.Recovery(), middlewares.RequestLogger)

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	services.StartReportScheduler(context.Background(), initializers.Location())

	router.GET("/ping", middlewares.RateLimitMiddleware("ping", 2, 2, getKey), controllers.Ping)
	router.POST("/login", middlewares.RateLimitMiddleware("login", 2, 2, getKey), controllers.UserLogin)
	router.POST("/family/access", middlewares.RateLimitMiddleware("family-access", 2, 5, getKey), controllers.FamilyAccess)

	// member facing routes, no account needed
	public := router.Group("/")
	public.Use(middlewares.RateLimitMiddleware("public", 10, 20, getKey))
	{
		public.GET("/records", controllers.GetRecords)
		public.GET("/records/lookup", controllers.LookupRecord)
		public.GET("/home/totals", controllers.GetHomeTotals)
		public.GET("/temperatures", controllers.GetTemperatures)
		public.GET("/members", controllers.GetMembers)
		public.GET("/system/maintenance", controllers.GetMaintenanceStatus)
		public.GET("/realtime", controllers.RealtimeWS)

		public.PUT("/records", middlewares.BlockDuringMaintenance, controllers.UpsertRecord)
		public.POST("/prayers", middlewares.BlockDuringMaintenance, controllers.CreatePrayerRequest)
		public.POST("/chat", middlewares.RateLimitMiddleware("chat", 0.2, 3, getKey), controllers.Chat)
	}

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware("auth", 10, 10, getKey))
	{
		// family leader routes
		family := auth.Group("/family")
		family.Use(middlewares.CheckLeader)
		{
			family.GET("/stats", controllers.GetFamilyStats)
			family.GET("/stats/weekly", controllers.GetWeeklyStats)

			family.DELETE("/records/:record_id", controllers.DeleteRecord)
			family.GET("/records/export", controllers.ExportRecords)

			family.GET("/prayers", controllers.GetPrayerRequests)
			family.PATCH("/prayers/:prayer_id/answered", controllers.SetPrayerAnswered)
			family.DELETE("/prayers/:prayer_id", controllers.DeletePrayerRequest)

			family.GET("/attendance", controllers.GetAttendance)
			family.POST("/attendance/bulk", controllers.SaveAttendance)
			family.PATCH("/attendance/:attendance_id", controllers.UpdateAttendance)
			family.GET("/attendance/export", controllers.ExportAttendance)

			family.POST("/push/subscribe", controllers.SubscribeLeaderPush)
		}

		// account routes
		auth.GET("/users/me", controllers.GetUserProfile)
		auth.POST("/users/push-token", controllers.StorePushToken)

		//admin only routes
		admin := auth.Group("/admin")
		admin.Use(middlewares.CheckAdmin)
		admin.Use(middlewares.RateLimitMiddleware("admin", 5, 5, getKey))
		{
			admin.POST("/users", controllers.UserSignup)
			admin.PUT("/family-password", controllers.SetFamilyPassword)

			admin.POST("/members", controllers.CreateMember)
			admin.DELETE("/members/:member_id", controllers.DeleteMember)

			admin.PUT("/system/maintenance", controllers.SetMaintenanceStatus)
			admin.POST("/reports/weekly", controllers.SendWeeklyReport)
		}
	}

	if err := router.Run(); err != nil {
		initializers.Log.Fatalw("server stopped", "error", err)
	}
}
