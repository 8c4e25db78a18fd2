package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"event_portal/internal/api/handlers"
	"event_portal/internal/middleware"
	"event_portal/internal/service"
	"event_portal/pkg/utils"
)

func SetupRoutes(r *gin.Engine, services *service.Services, tokens *utils.TokenService) {
	// 初始化 handlers
	authHandler := handlers.NewAuthHandler(services.User)
	eventHandler := handlers.NewEventHandler(services.Event, services.Registration)
	quizHandler := handlers.NewQuizHandler(services.Quiz)
	feedbackHandler := handlers.NewFeedbackHandler(services.Feedback)
	wsHandler := handlers.NewWebSocketHandler(services.WebSocket, services.Event, services.Registration, services.User)

	// 處理 404 錯誤
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "找不到該路徑",
		})
	})

	authRequired := middleware.AuthMiddleware(tokens)

	// 帳號相關
	user := r.Group("/user")
	{
		// 公開路由
		user.POST("/signup", authHandler.Signup)
		user.POST("/signin", authHandler.SignIn)

		// 需要驗證的路由
		// 原系統把 update/delete 也開在公開清單裡、再靠 handler 自行解 token，
		// 這裡統一掛在驗證中間件之後
		user.POST("/verify-token", authRequired, authHandler.VerifyToken)
		user.PUT("/update", authRequired, authHandler.Update)
		user.DELETE("/delete", authRequired, authHandler.Delete)

		// 黑名單維護，管理員限定（限定邏輯在服務層）
		user.POST("/blacklist", authRequired, authHandler.Blacklist)
		user.DELETE("/blacklist", authRequired, authHandler.Unblacklist)
	}

	// 活動相關
	event := r.Group("/event")
	{
		// 公開路由
		event.GET("/all", eventHandler.ListEvents)
		event.GET("/quiz", quizHandler.ListByEvent)

		// 需要驗證的路由
		event.POST("/add", authRequired, eventHandler.AddEvent)
		event.PUT("/update", authRequired, eventHandler.UpdateEvent)
		event.DELETE("/delete", authRequired, eventHandler.DeleteEvent)
		event.POST("/register", authRequired, eventHandler.Register)
		event.GET("/stats", authRequired, eventHandler.GetStats)
		event.POST("/feedback", authRequired, feedbackHandler.LeaveFeedback)
		event.GET("/feedback", authRequired, feedbackHandler.ListByEvent)
	}

	// 測驗相關
	quiz := r.Group("/quiz")
	quiz.Use(authRequired)
	{
		quiz.POST("/add", quizHandler.CreateQuiz)
		quiz.POST("/result", quizHandler.SubmitResult)
		quiz.GET("/results", quizHandler.ListResults)
	}

	// WebSocket 活動通知
	r.GET("/ws/event/:id", authRequired, wsHandler.HandleWebSocket)

	// 基本的健康檢查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
}
