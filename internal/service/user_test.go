package service

import (
	"errors"
	"fmt"
	"testing"

	"event_portal/internal/models"
)

func TestSignupDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Alice", "alice@example.com", models.RoleParticipant)

	// 大小寫不同也算同一個 email
	_, err := env.services.User.Signup(SignupInput{
		Name:        "Alice Again",
		Email:       "Alice@Example.com",
		Password:    "secret123",
		PhoneNumber: "+886000000001",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate signup error = %v, want ErrEmailTaken", err)
	}
}

func TestSignupMissingFields(t *testing.T) {
	env := newTestEnv(t)

	cases := []SignupInput{
		{Name: "", Email: "a@example.com", Password: "secret123"},
		{Name: "A", Email: "", Password: "secret123"},
		{Name: "A", Email: "a@example.com", Password: ""},
	}
	for _, input := range cases {
		if _, err := env.services.User.Signup(input); !errors.Is(err, ErrInvalidRequest) {
			t.Fatalf("signup %+v error = %v, want ErrInvalidRequest", input, err)
		}
	}
}

func TestSignupWithoutPhone(t *testing.T) {
	env := newTestEnv(t)

	// 電話是選填，多個不填電話的帳號不能互相衝突
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		if _, err := env.services.User.Signup(SignupInput{
			Name:     fmt.Sprintf("User %d", i),
			Email:    email,
			Password: "secret123",
		}); err != nil {
			t.Fatalf("phone-less signup %s: %v", email, err)
		}
	}

	user, err := env.services.User.GetByEmail("a@example.com")
	if err != nil {
		t.Fatalf("fetch user: %v", err)
	}
	if user.PhoneNumber != nil {
		t.Fatalf("phone number = %q, want unset", *user.PhoneNumber)
	}
}

func TestSignupDuplicatePhone(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.services.User.Signup(SignupInput{
		Name:        "Alice",
		Email:       "alice@example.com",
		Password:    "secret123",
		PhoneNumber: "+886900000000",
	}); err != nil {
		t.Fatalf("first signup: %v", err)
	}

	_, err := env.services.User.Signup(SignupInput{
		Name:        "Bob",
		Email:       "bob@example.com",
		Password:    "secret123",
		PhoneNumber: "+886900000000",
	})
	if !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("duplicate phone signup error = %v, want ErrPhoneTaken", err)
	}

	// 改資料時搶別人的電話也一樣被擋
	env.signup(t, "Carol", "carol@example.com", models.RoleParticipant)
	taken := "+886900000000"
	if err := env.services.User.UpdateUser("carol@example.com", UpdateInput{PhoneNumber: &taken}); !errors.Is(err, ErrPhoneTaken) {
		t.Fatalf("update to taken phone error = %v, want ErrPhoneTaken", err)
	}

	// 清空自己的電話是允許的
	blank := ""
	if err := env.services.User.UpdateUser("alice@example.com", UpdateInput{PhoneNumber: &blank}); err != nil {
		t.Fatalf("clear phone: %v", err)
	}
	user, err := env.services.User.GetByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("fetch user: %v", err)
	}
	if user.PhoneNumber != nil {
		t.Fatalf("phone number = %q, want cleared", *user.PhoneNumber)
	}
}

func TestSignInWrongPassword(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Alice", "alice@example.com", models.RoleParticipant)

	if _, err := env.services.User.SignIn("alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v, want ErrInvalidCredentials", err)
	}
	// 帳號不存在也回同一個錯誤
	if _, err := env.services.User.SignIn("nobody@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("unknown account error = %v, want ErrInvalidCredentials", err)
	}

	if _, err := env.services.User.SignIn("alice@example.com", "secret123"); err != nil {
		t.Fatalf("correct password should sign in: %v", err)
	}
}

func TestAuthenticateRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Alice", "alice@example.com", models.RoleParticipant)

	token, err := env.services.User.SignIn("alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	user, err := env.services.User.Authenticate(token)
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("authenticated email = %q, want alice@example.com", user.Email)
	}

	if _, err := env.services.User.Authenticate("not-a-token"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("bogus token error = %v, want ErrInvalidToken", err)
	}
}

func TestAuthenticateDeletedUser(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Alice", "alice@example.com", models.RoleParticipant)
	token, err := env.services.User.SignIn("alice@example.com", "secret123")
	if err != nil {
		t.Fatalf("sign in: %v", err)
	}

	if err := env.services.User.DeleteUser("alice@example.com"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	// token 簽名仍然有效，但帳號已經不在了
	if _, err := env.services.User.Authenticate(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("token for deleted user error = %v, want ErrInvalidToken", err)
	}
}

func TestUpdateUserPartial(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Alice", "alice@example.com", models.RoleParticipant)

	newName := "Alice Chen"
	newPassword := "changed456"
	if err := env.services.User.UpdateUser("alice@example.com", UpdateInput{
		Name:     &newName,
		Password: &newPassword,
	}); err != nil {
		t.Fatalf("update user: %v", err)
	}

	user, err := env.services.User.GetByEmail("alice@example.com")
	if err != nil {
		t.Fatalf("fetch updated user: %v", err)
	}
	if user.Name != "Alice Chen" {
		t.Fatalf("name = %q, want Alice Chen", user.Name)
	}
	// 未帶的欄位不得被清掉
	if user.PhoneNumber == nil {
		t.Fatal("phone number should be untouched by a partial update")
	}

	// 密碼已重新雜湊，舊密碼失效新密碼可登入
	if _, err := env.services.User.SignIn("alice@example.com", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("old password error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := env.services.User.SignIn("alice@example.com", "changed456"); err != nil {
		t.Fatalf("new password should sign in: %v", err)
	}
}

func TestUpdateUserEmailChecks(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Alice", "alice@example.com", models.RoleParticipant)
	env.signup(t, "Bob", "bob@example.com", models.RoleParticipant)

	// 換成別人的 email 要擋下來，大小寫不同也一樣
	taken := "Bob@Example.com"
	if err := env.services.User.UpdateUser("alice@example.com", UpdateInput{Email: &taken}); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("update to taken email error = %v, want ErrEmailTaken", err)
	}

	// 空白 email 不能接受
	blank := "   "
	if err := env.services.User.UpdateUser("alice@example.com", UpdateInput{Email: &blank}); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("update to blank email error = %v, want ErrInvalidRequest", err)
	}

	// 沒人用的 email 可以換
	fresh := "alice.new@example.com"
	if err := env.services.User.UpdateUser("alice@example.com", UpdateInput{Email: &fresh}); err != nil {
		t.Fatalf("update to fresh email: %v", err)
	}
	if _, err := env.services.User.GetByEmail("alice.new@example.com"); err != nil {
		t.Fatalf("fetch by new email: %v", err)
	}

	// 帶自己目前的 email 不算衝突
	same := "alice.new@example.com"
	if err := env.services.User.UpdateUser("alice.new@example.com", UpdateInput{Email: &same}); err != nil {
		t.Fatalf("update to own email: %v", err)
	}
}

func TestDeleteUserCascades(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Olga", "olga@example.com", models.RoleOrganizer)
	env.signup(t, "Bob", "bob@example.com", models.RoleParticipant)

	event := env.createEvent(t, "olga@example.com", "Go Meetup")
	env.register(t, "bob@example.com", event.ID)

	quiz, err := env.services.Quiz.CreateQuiz("olga@example.com", QuizInput{
		EventID:     event.ID,
		Description: "warmup",
		TimeToPass:  10,
		Questions: []QuestionInput{
			{Text: "favorite language?", Type: models.QuestionTypeText},
		},
	})
	if err != nil {
		t.Fatalf("create quiz: %v", err)
	}
	if err := env.services.Quiz.RecordResult("bob@example.com", quiz.ID, 90); err != nil {
		t.Fatalf("record result: %v", err)
	}
	if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, 5, "great"); err != nil {
		t.Fatalf("leave feedback: %v", err)
	}

	// 刪掉主辦者，整棵活動樹都要消失
	if err := env.services.User.DeleteUser("olga@example.com"); err != nil {
		t.Fatalf("delete organizer: %v", err)
	}

	for model, name := range map[interface{}]string{
		&models.Event{}:          "events",
		&models.Registration{}:   "registrations",
		&models.Quiz{}:           "quizzes",
		&models.QuizQuestion{}:   "quiz questions",
		&models.QuizAnswer{}:     "quiz answers",
		&models.UserQuizResult{}: "quiz results",
		&models.Feedback{}:       "feedbacks",
		&models.OrganizerStats{}: "stats rows",
	} {
		if n := env.count(t, model); n != 0 {
			t.Fatalf("%s remaining after organizer deletion = %d, want 0", name, n)
		}
	}

	if _, err := env.services.User.GetByEmail("olga@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleted organizer lookup error = %v, want ErrNotFound", err)
	}
	// 參加者本人不受影響
	if _, err := env.services.User.GetByEmail("bob@example.com"); err != nil {
		t.Fatalf("participant should survive organizer deletion: %v", err)
	}
}

func TestDeleteParticipantFixesStats(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Olga", "olga@example.com", models.RoleOrganizer)
	env.signup(t, "Bob", "bob@example.com", models.RoleParticipant)
	env.signup(t, "Carol", "carol@example.com", models.RoleParticipant)

	event := env.createEvent(t, "olga@example.com", "Go Meetup")
	env.register(t, "bob@example.com", event.ID)
	env.register(t, "carol@example.com", event.ID)

	if err := env.services.Feedback.LeaveFeedback("bob@example.com", event.ID, 1, "meh"); err != nil {
		t.Fatalf("bob feedback: %v", err)
	}
	if err := env.services.Feedback.LeaveFeedback("carol@example.com", event.ID, 5, "great"); err != nil {
		t.Fatalf("carol feedback: %v", err)
	}

	// 刪掉一位參加者，人數與平均分要跟著修正
	if err := env.services.User.DeleteUser("bob@example.com"); err != nil {
		t.Fatalf("delete participant: %v", err)
	}

	stats := env.stats(t, event.ID)
	if stats.QuantityOfParticipants != 1 {
		t.Fatalf("participants after deletion = %d, want 1", stats.QuantityOfParticipants)
	}
	if diff := stats.MediumRating - 5.0; diff > 1e-9 || diff < -1e-9 {
		t.Fatalf("medium rating after deletion = %v, want 5", stats.MediumRating)
	}
}

func TestBlacklistAdminOnly(t *testing.T) {
	env := newTestEnv(t)

	env.signup(t, "Root", "root@example.com", models.RoleAdmin)
	bob := env.signup(t, "Bob", "bob@example.com", models.RoleParticipant)
	env.signup(t, "Olga", "olga@example.com", models.RoleOrganizer)

	// 主辦者與一般參加者都不能操作黑名單
	if err := env.services.User.Blacklist("olga@example.com", bob.ID, "spam"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("organizer blacklist error = %v, want ErrForbidden", err)
	}
	if err := env.services.User.Blacklist("bob@example.com", bob.ID, "spam"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("participant blacklist error = %v, want ErrForbidden", err)
	}

	// 理由不能是空白
	if err := env.services.User.Blacklist("root@example.com", bob.ID, "   "); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("blank reason error = %v, want ErrInvalidRequest", err)
	}
	if err := env.services.User.Blacklist("root@example.com", 9999, "spam"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown user error = %v, want ErrNotFound", err)
	}

	if err := env.services.User.Blacklist("root@example.com", bob.ID, "spam"); err != nil {
		t.Fatalf("admin blacklist: %v", err)
	}
	blacklisted, err := env.repos.User.IsBlacklisted(bob.ID)
	if err != nil {
		t.Fatalf("check blacklist: %v", err)
	}
	if !blacklisted {
		t.Fatal("bob should be blacklisted")
	}
}
