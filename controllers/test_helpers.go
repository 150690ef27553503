package controllers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/FamilyQT/initializers"
	"github.com/FamilyQT/middlewares"
	"github.com/FamilyQT/models"
	"github.com/FamilyQT/services"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// SetupTestDB creates a mock database and sets it as the global DB for testing
func SetupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}

	originalDB := initializers.DB
	initializers.DB = goqu.New("postgres", db)

	cleanup := func() {
		// Small delay to allow goroutines (like push notifications) to complete
		time.Sleep(10 * time.Millisecond)
		db.Close()
		initializers.DB = originalDB
	}

	return db, mock, cleanup
}

// SetupTestContext creates a test Gin context with a response recorder
func SetupTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

// SetJSONRequest attaches body as a JSON request to the context
func SetJSONRequest(c *gin.Context, method, target string, body interface{}) {
	raw, _ := json.Marshal(body)
	c.Request = httptest.NewRequest(method, target, bytes.NewBuffer(raw))
	c.Request.Header.Set("Content-Type", "application/json")
}

// SetAuthenticatedUser sets what CheckAuth leaves behind for a profile token
func SetAuthenticatedUser(c *gin.Context, user models.UserProfile, isAdmin bool) {
	c.Set("currentUser", user)
	c.Set("admin", isAdmin)
	if isAdmin {
		c.Set("role", middlewares.RoleAdmin)
	} else {
		c.Set("role", middlewares.RoleUser)
	}
}

// SetLeader sets what CheckAuth leaves behind for a family leader token
func SetLeader(c *gin.Context) {
	c.Set("admin", false)
	c.Set("role", middlewares.RoleLeader)
}

// recordingConn captures realtime messages sent to a registered client
type recordingConn struct {
	mu    sync.Mutex
	msgs  []string
	flush func()
}

func (r *recordingConn) WriteMessage(_ int, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, string(data))
	return nil
}

func (r *recordingConn) Close() error { return nil }

// Messages unsubscribes the client, waits for queued events, and returns
// everything delivered so far.
func (r *recordingConn) Messages() []string {
	r.flush()
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

// WatchTable subscribes a recording client to table changes for the test
func WatchTable(t *testing.T, table string) *recordingConn {
	conn := &recordingConn{}
	client := services.NewWSClient(table, conn)
	hub := services.GetRealtimeHub()
	hub.Register(client)
	conn.flush = func() { hub.Unregister(client) }
	t.Cleanup(conn.flush)
	return conn
}
