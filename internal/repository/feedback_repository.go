package repository

import (
	"fmt"

	"gorm.io/gorm"

	"event_portal/internal/models"
	"event_portal/internal/storage"
)

type FeedbackRepository interface {
	Create(feedback *models.Feedback) error
	Update(feedback *models.Feedback) error
	FindByEvent(eventID uint) ([]models.Feedback, error)
}

type feedbackRepository struct {
	db *storage.Database
}

func NewFeedbackRepository(db *storage.Database) FeedbackRepository {
	return &feedbackRepository{db: db}
}

// Create 寫入回饋並在同一個交易內重算活動的平均評分
func (r *feedbackRepository) Create(feedback *models.Feedback) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(feedback).Error; err != nil {
			return err
		}
		return recalculateMediumRating(tx, feedback.EventID)
	})
}

// Update 修改既有的回饋，平均評分同樣要跟著重算
func (r *feedbackRepository) Update(feedback *models.Feedback) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(feedback).Error; err != nil {
			return err
		}
		return recalculateMediumRating(tx, feedback.EventID)
	})
}

func (r *feedbackRepository) FindByEvent(eventID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := r.db.Where("event_id = ?", eventID).Order("created_at asc").Find(&feedbacks).Error
	return feedbacks, err
}

// recalculateMediumRating 以子查詢全量重算平均評分
// 整個運算是單一 UPDATE 語句，與觸發它的寫入同在一個交易內，
// 並發的寫入不會互相漏看對方的列
func recalculateMediumRating(tx *gorm.DB, eventID uint) error {
	result := tx.Model(&models.OrganizerStats{}).
		Where("event_id = ?", eventID).
		Update("medium_rating", gorm.Expr(
			"(SELECT COALESCE(AVG(rating), 0) FROM feedbacks WHERE event_id = ? AND deleted_at IS NULL)", eventID))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("organizer stats missing for event %d", eventID)
	}
	return nil
}
