package service

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"event_portal/internal/models"
	"event_portal/internal/repository"
	"event_portal/internal/storage"
	"event_portal/pkg/utils"
)

// 測試用的環境：真實的 repository 與 service 疊在記憶體 sqlite 上
type testEnv struct {
	services *Services
	repos    *repository.Repositories
	db       *storage.Database
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// 每個測試用獨立的具名記憶體資料庫，cache=shared 讓連接池共用同一份
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	db := &storage.Database{DB: gormDB}
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
		t.Fatalf("auto migrate: %v", err)
	}

	repos := repository.NewRepositories(db)
	tokens := utils.NewTokenService("test-secret", time.Hour)
	return &testEnv{
		services: NewServices(repos, tokens),
		repos:    repos,
		db:       db,
	}
}

var phoneSeq uint64

// signup 建立一個使用者並視需要提升角色，回傳查回來的使用者
func (env *testEnv) signup(t *testing.T, name, email string, role models.UserRole) *models.User {
	t.Helper()

	phone := fmt.Sprintf("+886%09d", atomic.AddUint64(&phoneSeq, 1))
	if _, err := env.services.User.Signup(SignupInput{
		Name:        name,
		Email:       email,
		Password:    "secret123",
		PhoneNumber: phone,
	}); err != nil {
		t.Fatalf("signup %s: %v", email, err)
	}

	if role != models.RoleParticipant {
		if err := env.db.Model(&models.User{}).
			Where("email = ?", repository.NormalizeEmail(email)).
			Update("role", role).Error; err != nil {
			t.Fatalf("set role for %s: %v", email, err)
		}
	}

	user, err := env.services.User.GetByEmail(email)
	if err != nil {
		t.Fatalf("fetch %s after signup: %v", email, err)
	}
	return user
}

// createEvent 以指定主辦者建立一場活動
func (env *testEnv) createEvent(t *testing.T, organizerEmail, name string) *models.Event {
	t.Helper()

	event, err := env.services.Event.CreateEvent(organizerEmail, EventInput{
		Name:        name,
		Description: "monthly community meetup",
		Date:        "2025-07-01",
		Time:        "18:30",
		Location:    "Taipei",
	})
	if err != nil {
		t.Fatalf("create event %s: %v", name, err)
	}
	return event
}

// register 替使用者報名活動
func (env *testEnv) register(t *testing.T, email string, eventID uint) {
	t.Helper()
	if err := env.services.Registration.Register(email, eventID); err != nil {
		t.Fatalf("register %s for event %d: %v", email, eventID, err)
	}
}

// count 數某個 model 目前的列數
func (env *testEnv) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := env.db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

// stats 直接查活動的統計列
func (env *testEnv) stats(t *testing.T, eventID uint) *models.OrganizerStats {
	t.Helper()
	stats, err := env.repos.Event.FindStats(eventID)
	if err != nil {
		t.Fatalf("fetch stats for event %d: %v", eventID, err)
	}
	return stats
}
