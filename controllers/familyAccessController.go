package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/middlewares"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/services"
)

const leaderTokenTTL = 12 * time.Hour

func retryAfterSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

func respondLocked(c *gin.Context, remaining time.Duration) {
	seconds := retryAfterSeconds(remaining)
	c.Header("Retry-After", strconv.Itoa(seconds))
	c.JSON(http.StatusLocked, gin.H{"error": "Too many failed attempts", "retryAfter": seconds})
}

// FamilyAccess exchanges the shared family password for a leader token.
// Failures are counted per client address and lock it out for a while.
func FamilyAccess(c *gin.Context) {
	guard := services.GetFamilyAccessGuard()
	key := c.ClientIP()

	ok, remaining := guard.Begin(key)
	if !ok {
		respondLocked(c, remaining)
		return
	}

	var input models.FamilyAccessRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		guard.Release(key)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var setting models.AppSetting
	found, err := initializers.DB.From("app_settings").
		Where(goqu.C("setting_key").Eq(models.FamilyPasswordKey)).
		ScanStructContext(c, &setting)
	if err != nil {
		guard.Release(key)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify password", "details": err.Error()})
		return
	}
	if !found {
		guard.Release(key)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Family password has not been set"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(setting.Setting_Value), []byte(input.Password)); err != nil {
		failures, locked := guard.Fail(key)
		initializers.Log.Infow("family access denied", "client", key, "failures", failures)

		if locked > 0 {
			respondLocked(c, locked)
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":             "Invalid password",
			"attemptsRemaining": guard.Limit() - failures,
		})
		return
	}

	guard.Reset(key)

	token, err := signToken(jwt.MapClaims{"role": middlewares.RoleLeader}, leaderTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Family access granted.",
		"token":     token,
		"expiresIn": int(leaderTokenTTL.Seconds()),
	})
}

// SubscribeLeaderPush adds a leader's browser token to the leader topic so
// new prayer requests reach it.
func SubscribeLeaderPush(c *gin.Context) {
	var input models.PushTokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	push := services.GetPushNotificationService()
	if push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications are not configured"})
		return
	}

	if err := push.SubscribeToTopic(c, []string{input.PushToken}, services.TopicFamilyLeaders); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to subscribe", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Subscribed to family leader notifications."})
}
