package controllers

import (
	"net/http"
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

const userTokenTTL = 24 * time.Hour

func UserSignup(c *gin.Context) {
	var user models.UserProfileSignup

	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userCount, err := initializers.DB.From("user_profile").Where(goqu.C("username").Eq(user.Username)).CountContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if userCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists."})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newUser := models.UserProfile{
		Username:   user.Username,
		Password:   string(passwordHash),
		Email:      user.Email,
		First_Name: user.First_Name,
		Last_Name:  user.Last_Name,
		Admin:      user.Admin,
	}

	var userID int
	_, err = initializers.DB.Insert("user_profile").Rows(newUser).Returning("user_profile_id").Executor().ScanValContext(c, &userID)
	if err != nil {
		initializers.Log.Errorw("failed to create user", "username", user.Username, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "User created successfully.",
		"userProfileId": userID,
	})
}

func UserLogin(c *gin.Context) {
	var user models.Login

	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var dbUser models.UserProfile
	found, err := initializers.DB.From("user_profile").Where(goqu.C("username").Eq(user.Username)).ScanStructContext(c, &dbUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !found || bcrypt.CompareHashAndPassword([]byte(dbUser.Password), []byte(user.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	role := middlewares.RoleUser
	if dbUser.Admin {
		role = middlewares.RoleAdmin
	}

	token, err := signToken(jwt.MapClaims{
		"id":   dbUser.User_Profile_ID,
		"role": role,
	}, userTokenTTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User logged in successfully.",
		"token":   token,
		"user":    dbUser,
	})
}

func GetUserProfile(c *gin.Context) {
	user, _ := c.Get("currentUser")

	c.JSON(http.StatusOK, gin.H{
		"user":  user,
		"admin": c.GetBool("admin"),
		"role":  c.GetString("role"),
	})
}

// SetFamilyPassword replaces the shared family password. Only its bcrypt
// hash is stored.
func SetFamilyPassword(c *gin.Context) {
	var input models.FamilyPasswordUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := services.SetFamilyPassword(c, input.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update family password", "details": err.Error()})
		return
	}

	initializers.Log.Info("family password changed")
	c.JSON(http.StatusOK, gin.H{"message": "Family password updated."})
}

// StorePushToken registers the caller's FCM token. A token seen before is
// moved to the caller.
func StorePushToken(c *gin.Context) {
	value, exists := c.Get("currentUser")
	if !exists {
		c.JSON(http.StatusForbidden, gin.H{"error": "Leader tokens subscribe through /family/push/subscribe"})
		return
	}
	currentUser := value.(models.UserProfile)

	var input models.PushTokenRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token := models.PushToken{
		UserProfileID: currentUser.User_Profile_ID,
		PushToken:     input.PushToken,
		Platform:      input.Platform,
	}

	_, err := initializers.DB.Insert("user_push_tokens").
		Rows(token).
		OnConflict(goqu.DoUpdate("push_token", goqu.Record{
			"user_profile_id": goqu.L("EXCLUDED.user_profile_id"),
			"platform":        goqu.L("EXCLUDED.platform"),
			"updated_at":      goqu.L("NOW()"),
		})).
		Executor().ExecContext(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store push token", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push token stored successfully."})
}
