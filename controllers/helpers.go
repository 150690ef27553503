package controllers

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/FamilyQT/models"
)

func signToken(claims jwt.MapClaims, ttl time.Duration) (string, error) {
	claims["exp"] = time.Now().Add(ttl).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("SECRET")))
}

// parseDate reads a YYYY-MM-DD calendar date as midnight UTC.
func parseDate(s string) (time.Time, error) {
	return time.ParseInLocation(models.DateLayout, s, time.UTC)
}
