package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"Scribbler/models"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var testIPCounter uint32

type testServer struct {
	*Server
	ip string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to in-memory database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Follow{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	server := &Server{DB: db, Router: gin.New()}
	server.initializeRoutes()

	// Each test server gets its own client IP so the login limiter's
	// per-IP state never bleeds between tests.
	n := atomic.AddUint32(&testIPCounter, 1)
	return &testServer{Server: server, ip: fmt.Sprintf("192.0.2.%d:4321", n%250+1)}
}

func (ts *testServer) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("Failed to marshal payload: %v", err)
		}
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, body)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.RemoteAddr = ts.ip
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	ts.Router.ServeHTTP(w, req)
	return w
}

func itoa(id uint) string {
	return fmt.Sprintf("%d", id)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode response body %q: %v", w.Body.String(), err)
	}
	return body
}

// registerAndLogin creates a user through the API and returns its id and a
// live token.
func (ts *testServer) registerAndLogin(t *testing.T, username, email string) (uint, string) {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/v1/users", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to register %s: status %d body %s", username, w.Code, w.Body.String())
	}
	response := decodeBody(t, w)["response"].(map[string]interface{})
	userID := uint(response["id"].(float64))

	loginW := ts.do(t, http.MethodPost, "/api/v1/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	if loginW.Code != http.StatusOK {
		t.Fatalf("Failed to log in %s: status %d body %s", username, loginW.Code, loginW.Body.String())
	}
	token, ok := decodeBody(t, loginW)["response"].(map[string]interface{})["token"].(string)
	if !ok {
		t.Fatalf("Token not found in login response")
	}

	return userID, token
}

// createPost inserts a post through the API and returns its id.
func (ts *testServer) createPost(t *testing.T, token, contents string) uint {
	t.Helper()

	w := ts.do(t, http.MethodPost, "/api/v1/posts", token, map[string]string{
		"contents": contents,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("Failed to create post: status %d body %s", w.Code, w.Body.String())
	}
	response := decodeBody(t, w)["response"].(map[string]interface{})
	return uint(response["id"].(float64))
}
