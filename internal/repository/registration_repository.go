package repository

import (
	"fmt"

	"gorm.io/gorm"

	"event_portal/internal/models"
	"event_portal/internal/storage"
)

type RegistrationRepository interface {
	Create(registration *models.Registration) error
	Exists(eventID, userID uint) (bool, error)
	CountByEvent(eventID uint) (int64, error)
	FindByEvent(eventID uint) ([]models.Registration, error)
}

type registrationRepository struct {
	db *storage.Database
}

func NewRegistrationRepository(db *storage.Database) RegistrationRepository {
	return &registrationRepository{db: db}
}

// Create 寫入報名並在同一個交易內把活動統計的參加人數加一
// 計數用單一 UPDATE 語句累加，不在程式內讀取再寫回，避免並發時遺失更新
// 統計列不存在表示資料不一致，整個交易回滾，不留下沒被計數的報名
func (r *registrationRepository) Create(registration *models.Registration) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(registration).Error; err != nil {
			return err
		}

		result := tx.Model(&models.OrganizerStats{}).
			Where("event_id = ?", registration.EventID).
			Update("quantity_of_participants", gorm.Expr("quantity_of_participants + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("organizer stats missing for event %d", registration.EventID)
		}
		return nil
	})
}

func (r *registrationRepository) Exists(eventID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Registration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *registrationRepository) CountByEvent(eventID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Registration{}).Where("event_id = ?", eventID).Count(&count).Error
	return count, err
}

func (r *registrationRepository) FindByEvent(eventID uint) ([]models.Registration, error) {
	var registrations []models.Registration
	err := r.db.Where("event_id = ?", eventID).Order("created_at asc").Find(&registrations).Error
	return registrations, err
}
