package service

import (
	"event_portal/internal/repository"
	"event_portal/pkg/utils"
)

type Services struct {
	User         *UserService
	Event        *EventService
	Registration *RegistrationService
	Quiz         *QuizService
	Feedback     *FeedbackService
	WebSocket    *WebSocketService
}

func NewServices(repos *repository.Repositories, tokens *utils.TokenService) *Services {
	wsService := NewWebSocketService()

	return &Services{
		User:         NewUserService(repos.User, tokens),
		Event:        NewEventService(repos.Event, repos.User, wsService),
		Registration: NewRegistrationService(repos.Registration, repos.Event, repos.User, wsService),
		Quiz:         NewQuizService(repos.Quiz, repos.Event, repos.User, repos.Registration),
		Feedback:     NewFeedbackService(repos.Feedback, repos.Event, repos.User, repos.Registration, wsService),
		WebSocket:    wsService,
	}
}
