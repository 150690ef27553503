package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/FamilyQT/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetUserProfile tests the GetUserProfile endpoint
func TestGetUserProfile(t *testing.T) {
	tests := []struct {
		name      string
		mockUser  models.UserProfile
		mockAdmin bool
		wantRole  string
	}{
		{name: "returns regular user profile", mockUser: MockUser(), mockAdmin: false, wantRole: "user"},
		{name: "returns admin user profile", mockUser: MockAdminUserWithPassword(), mockAdmin: true, wantRole: "admin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := SetupTestContext()
			SetAuthenticatedUser(c, tt.mockUser, tt.mockAdmin)

			GetUserProfile(c)

			assert.Equal(t, http.StatusOK, w.Code)

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.NotNil(t, response["user"])
			assert.Equal(t, tt.mockAdmin, response["admin"])
			assert.Equal(t, tt.wantRole, response["role"])
			assert.NotContains(t, w.Body.String(), "password")
		})
	}
}

// TestUserLogin tests the UserLogin endpoint
func TestUserLogin(t *testing.T) {
	admin := MockAdminUserWithPassword()

	tests := []struct {
		name           string
		requestBody    interface{}
		mockUser       *models.UserProfile
		expectQuery    bool
		expectedStatus int
		expectRole     string
	}{
		{
			name:           "successful login - admin user",
			requestBody:    models.Login{Username: "adminuser", Password: "admin123"},
			mockUser:       &admin,
			expectQuery:    true,
			expectedStatus: http.StatusOK,
			expectRole:     "admin",
		},
		{
			name:           "invalid password",
			requestBody:    models.Login{Username: "adminuser", Password: "wrongpassword"},
			mockUser:       &admin,
			expectQuery:    true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "unknown user",
			requestBody:    models.Login{Username: "nobody", Password: "admin123"},
			expectQuery:    true,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing password",
			requestBody:    map[string]string{"username": "adminuser"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectQuery {
				if tt.mockUser != nil {
					mock.ExpectQuery("SELECT").WillReturnRows(userRows(*tt.mockUser))
				} else {
					mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows(userColumns))
				}
			}

			c, w := SetupTestContext()
			SetJSONRequest(c, "POST", "/login", tt.requestBody)

			UserLogin(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())

			if tt.expectRole == "" {
				return
			}

			var response map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			tokenString, ok := response["token"].(string)
			require.True(t, ok)

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				return []byte("test-secret-key"), nil
			})
			require.NoError(t, err)
			claims := token.Claims.(jwt.MapClaims)
			assert.Equal(t, tt.expectRole, claims["role"])
			assert.Equal(t, float64(admin.User_Profile_ID), claims["id"])
		})
	}
}

func TestUserSignup(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		existing       int64
		expectInsert   bool
		expectedStatus int
	}{
		{
			name:           "creates admin account",
			requestBody:    models.UserProfileSignup{Username: "pastor", Password: "secret99", Admin: true},
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "username taken",
			requestBody:    models.UserProfileSignup{Username: "pastor", Password: "secret99"},
			existing:       1,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "password too short",
			requestBody:    models.UserProfileSignup{Username: "pastor", Password: "abc"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			body := tt.requestBody.(models.UserProfileSignup)
			if len(body.Password) >= 6 {
				mock.ExpectQuery("SELECT COUNT").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.existing))
			}
			if tt.expectInsert {
				mock.ExpectQuery("INSERT INTO \"user_profile\"").
					WillReturnRows(sqlmock.NewRows([]string{"user_profile_id"}).AddRow(7))
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockAdminUserWithPassword(), true)
			SetJSONRequest(c, "POST", "/admin/users", tt.requestBody)

			UserSignup(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectInsert {
				assert.Contains(t, w.Body.String(), `"userProfileId":7`)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSetFamilyPassword(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectExec("INSERT INTO \"app_settings\"").
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := SetupTestContext()
	SetJSONRequest(c, "PUT", "/admin/family-password", models.FamilyPasswordUpdate{Password: "2026"})

	SetFamilyPassword(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStorePushToken(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		expectExec     bool
		expectedStatus int
	}{
		{
			name:           "stores web token",
			requestBody:    models.PushTokenRequest{PushToken: "fcm-token-1", Platform: "web"},
			expectExec:     true,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "leader token has no account",
			requestBody:    models.PushTokenRequest{PushToken: "fcm-token-1", Platform: "web"},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "rejects unknown platform",
			requestBody:    models.PushTokenRequest{PushToken: "fcm-token-1", Platform: "fax"},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectExec {
				mock.ExpectExec("INSERT INTO \"user_push_tokens\"").
					WillReturnResult(sqlmock.NewResult(1, 1))
			}

			c, w := SetupTestContext()
			if tt.expectedStatus == http.StatusForbidden {
				SetLeader(c)
			} else {
				SetAuthenticatedUser(c, MockUser(), false)
			}
			SetJSONRequest(c, "POST", "/users/push-token", tt.requestBody)

			StorePushToken(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
