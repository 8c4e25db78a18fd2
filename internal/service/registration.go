package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"event_portal/internal/models"
	"event_portal/internal/repository"
)

type RegistrationService struct {
	registrationRepo repository.RegistrationRepository
	eventRepo        repository.EventRepository
	userRepo         repository.UserRepository
	notifier         *WebSocketService
}

func NewRegistrationService(
	registrationRepo repository.RegistrationRepository,
	eventRepo repository.EventRepository,
	userRepo repository.UserRepository,
	notifier *WebSocketService,
) *RegistrationService {
	return &RegistrationService{
		registrationRepo: registrationRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

// Register 替操作者報名一場活動
// 黑名單回 ErrForbidden，重複報名回 ErrAlreadyRegistered，兩者是不同的拒絕原因
// 報名與人數統計由 repository 在同一交易內完成
func (s *RegistrationService) Register(actorEmail string, eventID uint) error {
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

	blacklisted, err := s.userRepo.IsBlacklisted(actor.ID)
	if err != nil {
		return err
	}
	alreadyRegistered, err := s.registrationRepo.Exists(eventID, actor.ID)
	if err != nil {
		return err
	}
	if !CanRegister(blacklisted, alreadyRegistered) {
		if alreadyRegistered {
			return ErrAlreadyRegistered
		}
		return ErrForbidden
	}

	registration := models.Registration{EventID: eventID, UserID: actor.ID}
	if err := s.registrationRepo.Create(&registration); err != nil {
		return err
	}

	s.notifier.BroadcastSystemMessage(eventID, fmt.Sprintf("%s 報名了活動", actor.Name))
	return nil
}

// IsRegistered 查某使用者是否已報名某活動
func (s *RegistrationService) IsRegistered(eventID, userID uint) (bool, error) {
	return s.registrationRepo.Exists(eventID, userID)
}
