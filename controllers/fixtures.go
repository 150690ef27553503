package controllers

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/FamilyQT/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

var (
	recordColumns = []string{
		"id", "user_name", "date", "qt_count", "bible_read_count",
		"qt_done", "bible_read_done", "writing_done", "created_at", "updated_at",
	}
	prayerColumns     = []string{"id", "user_name", "content", "is_answered", "answered_at", "created_at"}
	attendanceColumns = []string{
		"id", "user_name", "date", "is_present", "note", "campus", "family_leader", "created_at", "updated_at",
	}
	memberColumns  = []string{"id", "name", "campus", "family_leader", "is_active", "created_at"}
	userColumns    = []string{"user_profile_id", "username", "password", "email", "first_name", "last_name", "admin", "datetime_create", "datetime_update"}
	settingColumns = []string{"setting_key", "setting_value", "updated_at"}
	statusColumns  = []string{"status_key", "is_active", "message", "starts_at", "ends_at", "updated_at"}
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func strPtr(s string) *string {
	return &s
}

// MockRecords covers two members over two weeks of March 2025
func MockRecords() []models.DailyRecord {
	now := time.Now()
	return []models.DailyRecord{
		{ID: 1, User_Name: "김민수", Date: day("2025-03-03"), Qt_Count: 2, Bible_Read_Count: 3, Qt_Done: true, Bible_Read_Done: true, Writing_Done: true, Created_At: now, Updated_At: now},
		{ID: 2, User_Name: "김민수", Date: day("2025-03-10"), Qt_Count: 1, Bible_Read_Count: 2, Qt_Done: true, Bible_Read_Done: true, Created_At: now, Updated_At: now},
		{ID: 3, User_Name: "이하나", Date: day("2025-03-04"), Qt_Count: 3, Bible_Read_Count: 5, Qt_Done: true, Bible_Read_Done: true, Writing_Done: true, Created_At: now, Updated_At: now},
	}
}

func recordRows(records ...models.DailyRecord) *sqlmock.Rows {
	rows := sqlmock.NewRows(recordColumns)
	for _, r := range records {
		rows.AddRow(r.ID, r.User_Name, r.Date, r.Qt_Count, r.Bible_Read_Count,
			r.Qt_Done, r.Bible_Read_Done, r.Writing_Done, r.Created_At, r.Updated_At)
	}
	return rows
}

func MockPrayers() []models.PrayerRequest {
	answeredAt := time.Now().Add(-time.Hour)
	return []models.PrayerRequest{
		{ID: 1, User_Name: "김민수", Content: "가족의 건강을 위해", Is_Answered: true, Answered_At: &answeredAt, Created_At: time.Now().Add(-48 * time.Hour)},
		{ID: 2, User_Name: "이하나", Content: "시험을 위해", Created_At: time.Now().Add(-24 * time.Hour)},
	}
}

func prayerRows(prayers ...models.PrayerRequest) *sqlmock.Rows {
	rows := sqlmock.NewRows(prayerColumns)
	for _, p := range prayers {
		var answeredAt interface{}
		if p.Answered_At != nil {
			answeredAt = *p.Answered_At
		}
		rows.AddRow(p.ID, p.User_Name, p.Content, p.Is_Answered, answeredAt, p.Created_At)
	}
	return rows
}

// MockUser creates a sample user profile for testing
func MockUser() models.UserProfile {
	return models.UserProfile{
		User_Profile_ID: 1,
		Username:        "testuser",
		First_Name:      "Test",
		Last_Name:       "User",
		Email:           "test@example.com",
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

// MockAdminUserWithPassword creates an admin with a bcrypt hashed password
// Password is "admin123" - use this in tests
func MockAdminUserWithPassword() models.UserProfile {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	return models.UserProfile{
		User_Profile_ID: 2,
		Username:        "adminuser",
		Password:        string(hashedPassword),
		First_Name:      "Admin",
		Last_Name:       "User",
		Email:           "admin@example.com",
		Admin:           true,
		Datetime_Create: time.Now(),
		Datetime_Update: time.Now(),
	}
}

func userRows(users ...models.UserProfile) *sqlmock.Rows {
	rows := sqlmock.NewRows(userColumns)
	for _, u := range users {
		rows.AddRow(u.User_Profile_ID, u.Username, u.Password, u.Email, u.First_Name, u.Last_Name, u.Admin, u.Datetime_Create, u.Datetime_Update)
	}
	return rows
}

// familyPasswordRows returns the settings row for "2025"
func familyPasswordRows() *sqlmock.Rows {
	hash, _ := bcrypt.GenerateFromPassword([]byte("2025"), bcrypt.MinCost)
	return sqlmock.NewRows(settingColumns).AddRow("family_access_password", string(hash), time.Now())
}
