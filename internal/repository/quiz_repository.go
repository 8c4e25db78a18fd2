package repository

import (
	"gorm.io/gorm/clause"

	"event_portal/internal/models"
	"event_portal/internal/storage"
)

type QuizRepository interface {
	Create(quiz *models.Quiz) error
	FindByID(id uint) (*models.Quiz, error)
	FindByEvent(eventID uint) ([]models.Quiz, error)
	SaveResult(result *models.UserQuizResult) error
	FindResult(userID, quizID uint) (*models.UserQuizResult, error)
	FindResultsByQuiz(quizID uint) ([]models.UserQuizResult, error)
}

type quizRepository struct {
	db *storage.Database
}

func NewQuizRepository(db *storage.Database) QuizRepository {
	return &quizRepository{db: db}
}

// Create 建立測驗，連同掛在底下的題目與選項一起寫入
func (r *quizRepository) Create(quiz *models.Quiz) error {
	return r.db.Create(quiz).Error
}

func (r *quizRepository) FindByID(id uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := r.db.Preload("Questions.Answers").First(&quiz, id).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *quizRepository) FindByEvent(eventID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := r.db.Preload("Questions.Answers").Where("event_id = ?", eventID).Find(&quizzes).Error
	return quizzes, err
}

// SaveResult 以 (user_id, quiz_id) 為鍵做 upsert，重複提交會覆蓋原本的成績
func (r *quizRepository) SaveResult(result *models.UserQuizResult) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "quiz_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"result", "date_end", "updated_at"}),
	}).Create(result).Error
}

func (r *quizRepository) FindResult(userID, quizID uint) (*models.UserQuizResult, error) {
	var result models.UserQuizResult
	err := r.db.Where("user_id = ? AND quiz_id = ?", userID, quizID).First(&result).Error
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (r *quizRepository) FindResultsByQuiz(quizID uint) ([]models.UserQuizResult, error) {
	var results []models.UserQuizResult
	err := r.db.Where("quiz_id = ?", quizID).Order("date_end asc").Find(&results).Error
	return results, err
}
