package repository

import (
	"gorm.io/gorm"

	"event_portal/internal/models"
	"event_portal/internal/storage"
)

type EventRepository interface {
	Create(event *models.Event) error
	FindByID(id uint) (*models.Event, error)
	FindAll() ([]models.Event, error)
	Update(event *models.Event) error
	Delete(id uint) error
	FindStats(eventID uint) (*models.OrganizerStats, error)
}

type eventRepository struct {
	db *storage.Database
}

func NewEventRepository(db *storage.Database) EventRepository {
	return &eventRepository{db: db}
}

// Create 建立活動時在同一個交易內一併建立統計列
// 統計列必須與活動同時存在，之後報名的計數更新才有地方落
func (r *eventRepository) Create(event *models.Event) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		stats := models.OrganizerStats{EventID: event.ID}
		return tx.Create(&stats).Error
	})
}

func (r *eventRepository) FindByID(id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll() ([]models.Event, error) {
	var events []models.Event
	err := r.db.Order("date asc, time asc").Find(&events).Error
	return events, err
}

func (r *eventRepository) Update(event *models.Event) error {
	return r.db.Save(event).Error
}

func (r *eventRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return deleteEventTree(tx, id)
	})
}

func (r *eventRepository) FindStats(eventID uint) (*models.OrganizerStats, error) {
	var stats models.OrganizerStats
	err := r.db.Where("event_id = ?", eventID).First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// deleteEventTree 刪除一場活動與其所有附屬資料：
// 測驗（題目、選項、成績）、回饋、報名與統計列
// 必須在呼叫端的交易內執行
func deleteEventTree(tx *gorm.DB, eventID uint) error {
	var quizIDs []uint
	if err := tx.Model(&models.Quiz{}).Where("event_id = ?", eventID).Pluck("id", &quizIDs).Error; err != nil {
		return err
	}
	if len(quizIDs) > 0 {
		var questionIDs []uint
		if err := tx.Model(&models.QuizQuestion{}).Where("quiz_id IN ?", quizIDs).Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := tx.Unscoped().Where("question_id IN ?", questionIDs).Delete(&models.QuizAnswer{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("quiz_id IN ?", quizIDs).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("quiz_id IN ?", quizIDs).Delete(&models.UserQuizResult{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("id IN ?", quizIDs).Delete(&models.Quiz{}).Error; err != nil {
			return err
		}
	}

	if err := tx.Unscoped().Where("event_id = ?", eventID).Delete(&models.Feedback{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("event_id = ?", eventID).Delete(&models.Registration{}).Error; err != nil {
		return err
	}
	if err := tx.Unscoped().Where("event_id = ?", eventID).Delete(&models.OrganizerStats{}).Error; err != nil {
		return err
	}
	return tx.Unscoped().Delete(&models.Event{}, eventID).Error
}
