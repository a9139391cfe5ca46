package service

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"maktabati_backend/internals/configs"
	userModel "maktabati_backend/internals/features/users/user/model"
)

const accessTTL = 7 * 24 * time.Hour

// IssueToken mints the access token the storefront stores for a week.
func IssueToken(user *userModel.UserModel) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(accessTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(configs.JWTSecret))
}
