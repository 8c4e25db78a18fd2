package service

import (
	"errors"
	"math"
	"testing"

	"event_portal/internal/models"
)

func TestLeaveFeedbackRequiresRegistration(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Olga", "olga@example.com", models.RoleOrganizer)
	env.signup(t, "Bob", "bob@example.com", models.RoleParticipant)
	event := env.createEvent(t, "olga@example.com", "Go Meetup")

	if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, 4, "good"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("unregistered feedback error = %v, want ErrForbidden", err)
	}
	if n := env.count(t, &models.Feedback{}); n != 0 {
		t.Fatalf("feedback rows = %d, want 0", n)
	}

	env.register(t, "bob@example.com", event.ID)
	if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, 4, "good"); err != nil {
		t.Fatalf("registered feedback: %v", err)
	}

	// 同一個人可以留多筆
	if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, 5, "even better"); err != nil {
		t.Fatalf("second feedback: %v", err)
	}
	if n := env.count(t, &models.Feedback{}); n != 2 {
		t.Fatalf("feedback rows = %d, want 2", n)
	}
}

func TestLeaveFeedbackRatingRange(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Olga", "olga@example.com", models.RoleOrganizer)
	env.signup(t, "Bob", "bob@example.com", models.RoleParticipant)
	event := env.createEvent(t, "olga@example.com", "Go Meetup")
	env.register(t, "bob@example.com", event.ID)

	for _, bad := range []int{0, -1, 6, 100} {
		if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, bad, ""); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("rating %d error = %v, want ErrInvalidRequest", bad, err)
		}
	}
	for _, ok := range []int{1, 5} {
		if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, ok, ""); err != nil {
			t.Fatalf("boundary rating %d: %v", ok, err)
		}
	}
}

func TestLeaveFeedbackUnknownEvent(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Bob", "bob@example.com", models.RoleParticipant)

	if err := env.services.Feedback.LeaveFeedback("bob@example.com", 9999, 3, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown event error = %v, want ErrNotFound", err)
	}
}

func TestMediumRatingTracksFeedback(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Olga", "olga@example.com", models.RoleOrganizer)
	env.signup(t, "Bob", "bob@example.com", models.RoleParticipant)
	env.signup(t, "Carol", "carol@example.com", models.RoleParticipant)
	event := env.createEvent(t, "olga@example.com", "Go Meetup")
	env.register(t, "bob@example.com", event.ID)
	env.register(t, "carol@example.com", event.ID)

	assertRating := func(want float64) {
		t.Helper()
		stats := env.stats(t, event.ID)
		if math.Abs(stats.MediumRating-want) > 1e-9 {
			t.Fatalf("medium rating = %v, want %v", stats.MediumRating, want)
		}
	}

	assertRating(0)

	if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, 2, ""); err != nil {
		t.Fatalf("bob feedback: %v", err)
	}
	assertRating(2)

	if err := env.services.Feedback.LeaveFeedback("carol@example.com", event.ID, 5, ""); err != nil {
		t.Fatalf("carol feedback: %v", err)
	}
	assertRating(3.5)

	if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, 5, "changed my mind"); err != nil {
		t.Fatalf("second bob feedback: %v", err)
	}
	assertRating(4)
}

func TestFeedbackUpdateRecalculatesRating(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Olga", "olga@example.com", models.RoleOrganizer)
	env.signup(t, "Bob", "bob@example.com", models.RoleParticipant)
	event := env.createEvent(t, "olga@example.com", "Go Meetup")
	env.register(t, "bob@example.com", event.ID)

	if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, 2, ""); err != nil {
		t.Fatalf("leave feedback: %v", err)
	}

	feedbacks, err := env.services.Feedback.ListByEvent(event.ID)
	if err != nil {
		t.Fatalf("list feedback: %v", err)
	}
	if len(feedbacks) != 1 {
		t.Fatalf("feedback count = %d, want 1", len(feedbacks))
	}

	// 直接改既有的評分，平均分要跟著動
	feedbacks[0].Rating = 4
	if err := env.repos.Feedback.Update(&feedbacks[0]); err != nil {
		t.Fatalf("update feedback: %v", err)
	}

	stats := env.stats(t, event.ID)
	if math.Abs(stats.MediumRating-4) > 1e-9 {
		t.Fatalf("medium rating after update = %v, want 4", stats.MediumRating)
	}
}
