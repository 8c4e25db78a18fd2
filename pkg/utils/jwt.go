package utils

import (
	"time"

	"github.com/golang-jwt/jwt"
)

// Claims 是 token 內攜帶的內容，以 email 作為使用者的識別
type Claims struct {
	Email string `json:"email"`
	jwt.StandardClaims
}

// TokenService 負責簽發與驗證 JWT token
// secret 與有效期限在建構時由設定注入
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
}

func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	return &TokenService{
		secret:    []byte(secret),
		expiresIn: expiresIn,
	}
}

// GenerateToken 為指定 email 簽發一個新的 token
func (s *TokenService) GenerateToken(email string) (string, error) {
	nowTime := time.Now()
	expireTime := nowTime.Add(s.expiresIn)

	claims := Claims{
		Email: email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  nowTime.Unix(),
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString(s.secret)
}

// parseToken 解析並驗證 token，包含簽名與過期時間
func (s *TokenService) parseToken(token string) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := tokenClaims.Claims.(*Claims); ok && tokenClaims.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// ValidateToken 檢查 token 是否有效
// 不論是格式錯誤、簽名不符還是已過期，一律回傳 false，呼叫端無法區分原因
func (s *TokenService) ValidateToken(token string) bool {
	_, err := s.parseToken(token)
	return err == nil
}

// ExtractEmail 取出 token 內的 email，token 無效時回傳 false
func (s *TokenService) ExtractEmail(token string) (string, bool) {
	claims, err := s.parseToken(token)
	if err != nil {
		return "", false
	}
	return claims.Email, true
}
