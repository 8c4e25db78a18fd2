package service

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"event_portal/internal/models"
	"event_portal/internal/repository"
	"event_portal/pkg/utils"
)

type UserService struct {
	userRepo repository.UserRepository
	tokens   *utils.TokenService
}

func NewUserService(userRepo repository.UserRepository, tokens *utils.TokenService) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// SignupInput 定義註冊請求的內容
type SignupInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

// Signup 建立新使用者並回傳登入 token
// 角色一律是 participant，提升權限走管理員路徑，不在註冊時發生
func (s *UserService) Signup(input SignupInput) (string, error) {
	email := repository.NormalizeEmail(input.Email)
	if email == "" || input.Name == "" || input.Password == "" {
		return "", ErrInvalidRequest
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	// 電話是選填欄位，沒填就存 NULL，不會互相撞到唯一索引
	var phoneNumber *string
	if phone := strings.TrimSpace(input.PhoneNumber); phone != "" {
		if _, err := s.userRepo.FindByPhone(phone); err == nil {
			return "", ErrPhoneTaken
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		phoneNumber = &phone
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Name:        input.Name,
		Email:       email,
		PhoneNumber: phoneNumber,
		Password:    string(hashedPassword),
		Role:        models.RoleParticipant,
	}
	if err := s.userRepo.Create(&user); err != nil {
		return "", err
	}

	return s.tokens.GenerateToken(user.Email)
}

// SignIn 驗證帳號密碼並回傳 token
// 帳號不存在與密碼錯誤回同一個錯誤，不洩漏是哪一種
func (s *UserService) SignIn(email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.tokens.GenerateToken(user.Email)
}

// Authenticate 從 token 解出 email 並確認使用者仍然存在
// token 有效但帳號已被刪除時同樣視為認證失敗
func (s *UserService) Authenticate(token string) (*models.User, error) {
	email, ok := s.tokens.ExtractEmail(token)
	if !ok {
		return nil, ErrInvalidToken
	}
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}

// GetByEmail 以 email 查使用者
func (s *UserService) GetByEmail(email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// UpdateInput 是部分更新，只套用非 nil 的欄位
type UpdateInput struct {
	Name        *string
	Email       *string
	PhoneNumber *string
	Password    *string
}

// UpdateUser 更新使用者自己的資料，密碼變更時重新雜湊
func (s *UserService) UpdateUser(email string, input UpdateInput) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		// 換 email 比照註冊：不能是空白，也不能撞到別人的帳號
		newEmail := repository.NormalizeEmail(*input.Email)
		if newEmail == "" {
			return ErrInvalidRequest
		}
		if newEmail != user.Email {
			if _, err := s.userRepo.FindByEmail(newEmail); err == nil {
				return ErrEmailTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		user.Email = newEmail
	}
	if input.PhoneNumber != nil {
		phone := strings.TrimSpace(*input.PhoneNumber)
		switch {
		case phone == "":
			user.PhoneNumber = nil
		case user.PhoneNumber == nil || *user.PhoneNumber != phone:
			if _, err := s.userRepo.FindByPhone(phone); err == nil {
				return ErrPhoneTaken
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			user.PhoneNumber = &phone
		}
	}
	if input.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user.Password = string(hashedPassword)
	}

	return s.userRepo.Update(user)
}

// DeleteUser 刪除帳號，連帶清掉主辦的活動與所有關聯資料
func (s *UserService) DeleteUser(email string) error {
	err := s.userRepo.DeleteByEmail(email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Blacklist 把使用者列入黑名單，只有管理員能操作
func (s *UserService) Blacklist(actorEmail string, userID uint, reason string) error {
	actor, err := s.userRepo.FindByEmail(actorEmail)
	if err != nil {
		return ErrInvalidToken
	}
	if !CanManageBlacklist(actor) {
		return ErrForbidden
	}
	if strings.TrimSpace(reason) == "" {
		return ErrInvalidRequest
	}
	if _, err := s.userRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return s.userRepo.AddToBlacklist(&models.BlackListUser{UserID: userID, Reason: reason})
}

// Unblacklist 把使用者移出黑名單
func (s *UserService) Unblacklist(actorEmail string, userID uint) error {
	actor, err := s.userRepo.FindByEmail(actorEmail)
	if err != nil {
		return ErrInvalidToken
	}
	if !CanManageBlacklist(actor) {
		return ErrForbidden
	}
	return s.userRepo.RemoveFromBlacklist(userID)
}
