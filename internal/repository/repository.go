package repository

import "event_portal/internal/storage"

type Repositories struct {
	User         UserRepository
	Event        EventRepository
	Registration RegistrationRepository
	Quiz         QuizRepository
	Feedback     FeedbackRepository
}

func NewRepositories(db *storage.Database) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Event:        NewEventRepository(db),
		Registration: NewRegistrationRepository(db),
		Quiz:         NewQuizRepository(db),
		Feedback:     NewFeedbackRepository(db),
	}
}
