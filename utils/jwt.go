package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims chỉ mang danh tính (email + tên Google), KHÔNG mang quyền admin.
// Quyền admin luôn tra lại bảng admins mỗi request.
type SessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// StateClaims dùng cho tham số state của luồng đăng nhập redirect.
type StateClaims struct {
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

const statePurpose = "google_oauth_state"

func jwtKey() ([]byte, error) {
	key := []byte(os.Getenv("JWT_SECRET")) // Đọc tại thời điểm gọi
	if len(key) == 0 {
		return nil, errors.New("JWT_SECRET không được thiết lập")
	}
	return key, nil
}

// GenerateSessionToken tạo JWT phiên đăng nhập từ email và tên hiển thị
func GenerateSessionToken(email, name string) (string, error) {
	key, err := jwtKey()
	if err != nil {
		return "", err
	}

	claims := SessionClaims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// VerifySessionToken xác minh và parse JWT phiên đăng nhập
func VerifySessionToken(tokenStr string) (*SessionClaims, error) {
	key, err := jwtKey()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("token không hợp lệ")
}

// GenerateStateToken tạo state ngắn hạn cho luồng redirect (10 phút).
func GenerateStateToken() (string, error) {
	key, err := jwtKey()
	if err != nil {
		return "", err
	}

	claims := StateClaims{
		Purpose: statePurpose,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(10 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}

// VerifyStateToken kiểm tra state do chính server phát ra và còn hạn.
func VerifyStateToken(tokenStr string) error {
	key, err := jwtKey()
	if err != nil {
		return err
	}

	token, err := jwt.ParseWithClaims(tokenStr, &StateClaims{}, func(token *jwt.Token) (interface{}, error) {
		return key, nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(*StateClaims)
	if !ok || !token.Valid || claims.Purpose != statePurpose {
		return errors.New("state không hợp lệ")
	}
	return nil
}
