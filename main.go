package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"event_portal/internal/api"
	"event_portal/internal/middleware"
	"event_portal/internal/models"
	"event_portal/internal/repository"
	"event_portal/internal/service"
	"event_portal/internal/storage"
	"event_portal/pkg/config"
	"event_portal/pkg/utils"
)

func main() {
	// 載入應用程式配置
	// 從配置文件中讀取設置，如數據庫連接信息、JWT secret 和服務器地址等
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化資料庫連接
	db, err := storage.NewPostgresDB(cfg.DB.Host, cfg.DB.User, cfg.DB.Password, cfg.DB.Name, cfg.DB.Port)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	// 確保在程序結束時關閉數據庫連接
	defer db.Close()

	// 自動遷移資料庫結構
	if err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Registration{},
		&models.Quiz{},
		&models.QuizQuestion{},
		&models.QuizAnswer{},
		&models.UserQuizResult{},
		&models.Feedback{},
		&models.OrganizerStats{},
		&models.BlackListUser{},
	); err != nil {
		log.Fatalf("Failed to auto migrate database: %v", err)
	}

	// 初始化 token 服務，secret 與有效期限來自配置
	tokens := utils.NewTokenService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireHours)*time.Hour)

	// 初始化 repositories 與 services
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, tokens)

	// 設置 Gin 路由
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())
	api.SetupRoutes(r, services, tokens)

	// 啟動伺服器
	if err := r.Run(cfg.Server.Address); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
