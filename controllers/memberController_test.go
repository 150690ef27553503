package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMembers(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery(`"is_active" IS TRUE`).WillReturnRows(
		sqlmock.NewRows(memberColumns).
			AddRow(2, "이하나", nil, nil, true, now).
			AddRow(3, "박서준", "서울", "박가족", true, now).
			AddRow(1, "김민수", nil, nil, true, now),
	)

	c, w := SetupTestContext()
	c.Request = httptest.NewRequest("GET", "/members", nil)

	GetMembers(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Members []models.FamilyMember `json:"members"`
		Names   []string              `json:"names"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Members, 3)
	assert.Equal(t, []string{"김민수", "박서준", "이하나"}, response.Names)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateMember(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		existing       int64
		expectCount    bool
		expectInsert   bool
		expectedStatus int
	}{
		{
			name:           "creates member",
			requestBody:    models.FamilyMemberCreate{Name: "최은혜", Campus: strPtr("서울")},
			expectCount:    true,
			expectInsert:   true,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "duplicate active member",
			requestBody:    models.FamilyMemberCreate{Name: "김민수"},
			existing:       1,
			expectCount:    true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "blank name",
			requestBody:    models.FamilyMemberCreate{Name: "  "},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectCount {
				mock.ExpectQuery("SELECT COUNT").
					WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(tt.existing))
			}
			if tt.expectInsert {
				mock.ExpectQuery("INSERT INTO \"family_member\"").
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(4))
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockAdminUserWithPassword(), true)
			SetJSONRequest(c, "POST", "/admin/members", tt.requestBody)

			CreateMember(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectInsert {
				assert.Contains(t, w.Body.String(), `"memberId":4`)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeleteMemberDeactivates(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	feed := WatchTable(t, services.TableMembers)

	mock.ExpectExec(`UPDATE "family_member" SET "is_active"=FALSE`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockAdminUserWithPassword(), true)
	c.Params = gin.Params{{Key: "member_id", Value: "3"}}
	c.Request = httptest.NewRequest("DELETE", "/admin/members/3", nil)

	DeleteMember(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, feed.Messages(), 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMemberNotFound(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE "family_member"`).WillReturnResult(sqlmock.NewResult(0, 0))

	c, w := SetupTestContext()
	c.Params = gin.Params{{Key: "member_id", Value: "30"}}
	c.Request = httptest.NewRequest("DELETE", "/admin/members/30", nil)

	DeleteMember(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
