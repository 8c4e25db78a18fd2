package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"event_portal/internal/models"
	"event_portal/internal/repository"
)

type EventService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
	notifier  *WebSocketService
}

func NewEventService(eventRepo repository.EventRepository, userRepo repository.UserRepository, notifier *WebSocketService) *EventService {
	return &EventService{
		eventRepo: eventRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// EventInput 定義建立與更新活動的欄位，更新時是整份覆蓋
type EventInput struct {
	Name        string
	Description string
	Date        string
	Time        string
	Location    string
}

func (input EventInput) complete() bool {
	return input.Name != "" && input.Description != "" &&
		input.Date != "" && input.Time != "" && input.Location != ""
}

// resolveActor 把 middleware 放進來的 email 換成活著的使用者
// 帳號在 token 簽發後被刪除的情況在這裡擋下
func resolveActor(userRepo repository.UserRepository, email string) (*models.User, error) {
	actor, err := userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return actor, nil
}

// CreateEvent 建立活動，主辦者設為操作者本人
// 授權檢查在寫入之前完成，統計列由 repository 在同一交易內建立
func (s *EventService) CreateEvent(actorEmail string, input EventInput) (*models.Event, error) {
	actor, err := resolveActor(s.userRepo, actorEmail)
	if err != nil {
		return nil, err
	}
	if !CanCreateEvent(actor) {
		return nil, ErrForbidden
	}
	if !input.complete() {
		return nil, ErrInvalidRequest
	}

	event := models.Event{
		Name:        input.Name,
		Description: input.Description,
		Date:        input.Date,
		Time:        input.Time,
		Location:    input.Location,
		OrganizerID: actor.ID,
	}
	if err := s.eventRepo.Create(&event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent 覆蓋活動的所有可變欄位
func (s *EventService) UpdateEvent(actorEmail string, eventID uint, input EventInput) error {
	actor, err := resolveActor(s.userRepo, actorEmail)
	if err != nil {
		return err
	}

	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !CanMutateEvent(actor, event) {
		return ErrForbidden
	}
	if !input.complete() {
		return ErrInvalidRequest
	}

	event.Name = input.Name
	event.Description = input.Description
	event.Date = input.Date
	event.Time = input.Time
	event.Location = input.Location
	if err := s.eventRepo.Update(event); err != nil {
		return err
	}

	s.notifier.BroadcastSystemMessage(eventID, "活動資訊已更新")
	return nil
}

// DeleteEvent 刪除活動與其所有附屬資料
func (s *EventService) DeleteEvent(actorEmail string, eventID uint) error {
	actor, err := resolveActor(s.userRepo, actorEmail)
	if err != nil {
		return err
	}

	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if !CanMutateEvent(actor, event) {
		return ErrForbidden
	}

	if err := s.eventRepo.Delete(eventID); err != nil {
		return err
	}

	s.notifier.BroadcastSystemMessage(eventID, "活動已取消")
	return nil
}

// ListEvents 列出所有活動，公開路徑
func (s *EventService) ListEvents() ([]models.Event, error) {
	return s.eventRepo.FindAll()
}

// GetEvent 查單一活動
func (s *EventService) GetEvent(eventID uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return event, err
}

// GetStats 查活動統計，只開放給活動主辦者或管理員
func (s *EventService) GetStats(actorEmail string, eventID uint) (*models.OrganizerStats, error) {
	actor, err := resolveActor(s.userRepo, actorEmail)
	if err != nil {
		return nil, err
	}

	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !CanMutateEvent(actor, event) {
		return nil, ErrForbidden
	}

	stats, err := s.eventRepo.FindStats(eventID)
	if err != nil {
		// 統計列與活動同生共死，查不到表示資料已經不一致
		return nil, fmt.Errorf("stats missing for event %d: %w", eventID, err)
	}
	return stats, nil
}
