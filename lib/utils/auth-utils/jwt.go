package authutils

import (
	"docflow-backend/config"
	"docflow-backend/models"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// GetToken issues an access token; sub carries the user id as a string, tenant is numeric.
func GetToken(userID, tenantID int64, name string, role models.UserRole) (tokenString string, err error) {
	return GetTokenWithSecret(config.Conf.Auth.JWTSecret, time.Second*time.Duration(config.Conf.Auth.JWTExpireInSec), userID, tenantID, name, role)
}

func GetTokenWithSecret(secret string, expireIn time.Duration, userID, tenantID int64, name string, role models.UserRole) (tokenString string, err error) {
	claims := jwt.MapClaims{
		"name":   name,
		"sub":    strconv.FormatInt(userID, 10),
		"tenant": tenantID,
		"role":   string(role),
		"exp":    time.Now().Add(expireIn).Unix(),
		"iat":    time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GetClaims(ctx *fiber.Ctx) jwt.MapClaims {
	token, ok := ctx.Locals("user").(*jwt.Token)
	if !ok {
		return jwt.MapClaims{}
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return jwt.MapClaims{}
	}
	return claims
}

// GetInt64Claim reads an id claim; parsed JSON numbers arrive as float64.
func GetInt64Claim(claims jwt.MapClaims, key string) int64 {
	switch value := claims[key].(type) {
	case float64:
		return int64(value)
	case int64:
		return value
	case int:
		return int64(value)
	case string:
		id, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0
		}
		return id
	}
	return 0
}
