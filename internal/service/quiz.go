package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"event_portal/internal/models"
	"event_portal/internal/repository"
)

type QuizService struct {
	quizRepo         repository.QuizRepository
	eventRepo        repository.EventRepository
	userRepo         repository.UserRepository
	registrationRepo repository.RegistrationRepository
}

func NewQuizService(
	quizRepo repository.QuizRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	registrationRepo repository.RegistrationRepository,
) *QuizService {
	return &QuizService{
		quizRepo:         quizRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
	}
}

// QuizInput 定義建立測驗的內容，題目與選項一起帶進來
type QuizInput struct {
	EventID     uint
	Description string
	TimeToPass  int
	Questions   []QuestionInput
}

type QuestionInput struct {
	Text    string
	Type    models.QuestionType
	Answers []string
}

// CreateQuiz 替活動建立測驗，只有活動主辦者或管理員能操作
func (s *QuizService) CreateQuiz(actorEmail string, input QuizInput) (*models.Quiz, error) {
	actor, err := resolveActor(s.userRepo, actorEmail)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindByID(input.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanMutateEvent(actor, event) {
		return nil, ErrForbidden
	}
	if input.TimeToPass <= 0 {
		return nil, ErrInvalidRequest
	}

	quiz := models.Quiz{
		EventID:     input.EventID,
		Description: input.Description,
		TimeToPass:  input.TimeToPass,
	}
	for _, q := range input.Questions {
		if q.Text == "" {
			return nil, ErrInvalidRequest
		}
		question := models.QuizQuestion{Text: q.Text, Type: q.Type}
		for _, a := range q.Answers {
			question.Answers = append(question.Answers, models.QuizAnswer{Text: a})
		}
		quiz.Questions = append(quiz.Questions, question)
	}

	if err := s.quizRepo.Create(&quiz); err != nil {
		return nil, err
	}
	return &quiz, nil
}

// ListByEvent 列出活動的測驗，公開路徑
func (s *QuizService) ListByEvent(eventID uint) ([]models.Quiz, error) {
	return s.quizRepo.FindByEvent(eventID)
}

// RecordResult 記錄測驗成績
// 必須先報名測驗所屬的活動，重複提交會覆蓋原本的成績而不是新增一筆
func (s *QuizService) RecordResult(actorEmail string, quizID uint, result float64) error {
	if result < 0 || result > 100 {
		return ErrInvalidRequest
	}

	actor, err := resolveActor(s.userRepo, actorEmail)
	if err != nil {
		return err
	}

	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	registered, err := s.registrationRepo.Exists(quiz.EventID, actor.ID)
	if err != nil {
		return err
	}
	if !CanRecordQuizResult(registered) {
		return ErrForbidden
	}

	return s.quizRepo.SaveResult(&models.UserQuizResult{
		UserID:  actor.ID,
		QuizID:  quizID,
		Result:  result,
		DateEnd: time.Now(),
	})
}

// ListResults 列出測驗的所有成績，只開放給活動主辦者或管理員
func (s *QuizService) ListResults(actorEmail string, quizID uint) ([]models.UserQuizResult, error) {
	actor, err := resolveActor(s.userRepo, actorEmail)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	event, err := s.eventRepo.FindByID(quiz.EventID)
	if err != nil {
		return nil, err
	}
	if !CanMutateEvent(actor, event) {
		return nil, ErrForbidden
	}

	return s.quizRepo.FindResultsByQuiz(quizID)
}
