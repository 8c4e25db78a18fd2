package service

import (
	"errors"

	"gorm.io/gorm"

	"event_portal/internal/models"
	"event_portal/internal/repository"
)

type FeedbackService struct {
	feedbackRepo     repository.FeedbackRepository
	eventRepo        repository.EventRepository
	userRepo         repository.UserRepository
	registrationRepo repository.RegistrationRepository
	notifier         *WebSocketService
}

func NewFeedbackService(
	feedbackRepo repository.FeedbackRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	registrationRepo repository.RegistrationRepository,
	notifier *WebSocketService,
) *FeedbackService {
	return &FeedbackService{
		feedbackRepo:     feedbackRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		registrationRepo: registrationRepo,
		notifier:         notifier,
	}
}

// LeaveFeedback 對活動留下評價，必須先報名過該活動
// 每次都是新增一筆，同一使用者可以留多筆
// 平均評分由 repository 在同一交易內重算
func (s *FeedbackService) LeaveFeedback(actorEmail string, eventID uint, rating int, comment string) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRequest
	}

	actor, err := resolveActor(s.userRepo, actorEmail)
	if err != nil {
		return err
	}

	if _, err := s.eventRepo.FindByID(eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	registered, err := s.registrationRepo.Exists(eventID, actor.ID)
	if err != nil {
		return err
	}
	if !CanLeaveFeedback(registered) {
		return ErrForbidden
	}

	feedback := models.Feedback{
		UserID:  actor.ID,
		EventID: eventID,
		Rating:  rating,
		Comment: comment,
	}
	if err := s.feedbackRepo.Create(&feedback); err != nil {
		return err
	}

	s.notifier.BroadcastSystemMessage(eventID, "活動收到了新的評價")
	return nil
}

// ListByEvent 列出活動的所有評價
func (s *FeedbackService) ListByEvent(eventID uint) ([]models.Feedback, error) {
	return s.feedbackRepo.FindByEvent(eventID)
}
