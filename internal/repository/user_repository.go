package repository

import (
	"strings"

	"gorm.io/gorm"

	"event_portal/internal/models"
	"event_portal/internal/storage"
)

type UserRepository interface {
	Create(user *models.User) error
	FindByEmail(email string) (*models.User, error)
	FindByPhone(phone string) (*models.User, error)
	FindByID(id uint) (*models.User, error)
	Update(user *models.User) error
	DeleteByEmail(email string) error
	IsBlacklisted(userID uint) (bool, error)
	AddToBlacklist(entry *models.BlackListUser) error
	RemoveFromBlacklist(userID uint) error
}

type userRepository struct {
	db *storage.Database
}

func NewUserRepository(db *storage.Database) UserRepository {
	return &userRepository{db: db}
}

// NormalizeEmail 去除前後空白並轉成小寫，email 的比對一律用這個形式
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) Create(user *models.User) error {
	user.Email = NormalizeEmail(user.Email)
	return r.db.Create(user).Error
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("LOWER(email) = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByPhone(phone string) (*models.User, error) {
	var user models.User
	err := r.db.Where("phone_number = ?", phone).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// DeleteByEmail 刪除使用者並連帶清掉所有關聯資料：
// 他主辦的活動（含各活動的統計、報名、回饋與測驗）、他自己的報名、
// 回饋、測驗成績與黑名單記錄，全部在同一個交易內完成
func (r *userRepository) DeleteByEmail(email string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Where("LOWER(email) = ?", NormalizeEmail(email)).First(&user).Error; err != nil {
			return err
		}

		var events []models.Event
		if err := tx.Where("organizer_id = ?", user.ID).Find(&events).Error; err != nil {
			return err
		}
		for _, event := range events {
			if err := deleteEventTree(tx, event.ID); err != nil {
				return err
			}
		}

		// 剩下的是他報名別人活動的資料，移除時統計要跟著修正
		var registrations []models.Registration
		if err := tx.Where("user_id = ?", user.ID).Find(&registrations).Error; err != nil {
			return err
		}
		for _, registration := range registrations {
			result := tx.Model(&models.OrganizerStats{}).
				Where("event_id = ?", registration.EventID).
				Update("quantity_of_participants", gorm.Expr("quantity_of_participants - 1"))
			if result.Error != nil {
				return result.Error
			}
		}
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Registration{}).Error; err != nil {
			return err
		}

		var feedbackEventIDs []uint
		if err := tx.Model(&models.Feedback{}).Where("user_id = ?", user.ID).
			Distinct().Pluck("event_id", &feedbackEventIDs).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.Feedback{}).Error; err != nil {
			return err
		}
		for _, eventID := range feedbackEventIDs {
			if err := recalculateMediumRating(tx, eventID); err != nil {
				return err
			}
		}
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.UserQuizResult{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", user.ID).Delete(&models.BlackListUser{}).Error; err != nil {
			return err
		}

		return tx.Unscoped().Delete(&user).Error
	})
}

func (r *userRepository) IsBlacklisted(userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.BlackListUser{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *userRepository) AddToBlacklist(entry *models.BlackListUser) error {
	return r.db.Create(entry).Error
}

func (r *userRepository) RemoveFromBlacklist(userID uint) error {
	return r.db.Unscoped().Where("user_id = ?", userID).Delete(&models.BlackListUser{}).Error
}
