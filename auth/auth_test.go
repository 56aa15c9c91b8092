package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"campuschat/db"
	"campuschat/store"
	"campuschat/types"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/bcrypt"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	database, err := db.InitSQLite(filepath.Join(t.TempDir(), "auth_test.sqlite"))
	if err != nil {
		t.Fatalf("init sqlite: %v", err)
	}

	prev := db.ChatDB
	db.ChatDB = database
	if err := db.EnsureSchema(); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}

	t.Cleanup(func() {
		database.Close()
		db.ChatDB = prev
	})
}

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	setupTestDB(t)

	r := gin.New()
	r.POST("/register", HandleRegister)
	r.POST("/login", HandleLogin)
	r.GET("/me", HandleMe)
	r.GET("/protected", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(200, gin.H{
			"userID":  c.GetInt("userID"),
			"faculty": c.GetString("userFaculty"),
		})
	})
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("encode request: %v", err)
	}
	req := httptest.NewRequest("POST", path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func correctAnswers() []QuestionResponse {
	return []QuestionResponse{
		{ID: 2, Answer: "main"},
		{ID: 8, Answer: "1"},
		{ID: 12, Answer: "2"},
	}
}

func registerPayload() map[string]interface{} {
	return map[string]interface{}{
		"full_name": "Test Student",
		"email":     "student@bsu.edu.az",
		"phone":     "+994501234567",
		"password":  "sekret123",
		"faculty":   "Physics",
		"degree":    "bachelor",
		"course":    2,
		"answers":   correctAnswers(),
	}
}

func TestVerifyAnswers(t *testing.T) {
	cases := []struct {
		name    string
		answers []QuestionResponse
		want    bool
	}{
		{"all correct", correctAnswers(), true},
		{"two of three correct", []QuestionResponse{
			{ID: 2, Answer: "main"},
			{ID: 8, Answer: "1"},
			{ID: 12, Answer: "wrong"},
		}, true},
		{"one correct", []QuestionResponse{
			{ID: 2, Answer: "main"},
			{ID: 8, Answer: "wrong"},
			{ID: 12, Answer: "wrong"},
		}, false},
		{"too few answers", []QuestionResponse{
			{ID: 2, Answer: "main"},
			{ID: 8, Answer: "1"},
		}, false},
		{"too many answers", []QuestionResponse{
			{ID: 2, Answer: "main"},
			{ID: 8, Answer: "1"},
			{ID: 12, Answer: "2"},
			{ID: 3, Answer: "main"},
		}, false},
		{"out of range ids", []QuestionResponse{
			{ID: -1, Answer: "main"},
			{ID: 99, Answer: "1"},
			{ID: 12, Answer: "2"},
		}, false},
		{"no answers", nil, false},
	}

	for _, tc := range cases {
		if got := verifyAnswers(tc.answers); got != tc.want {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestVerificationQuestionsShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/questions", HandleVerificationQuestions)

	req := httptest.NewRequest("GET", "/questions", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Questions []struct {
			ID       int      `json:"id"`
			Question string   `json:"question"`
			Options  []string `json:"options"`
		} `json:"questions"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(body.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(body.Questions))
	}
	seen := map[int]bool{}
	for _, q := range body.Questions {
		if q.ID < 0 || q.ID >= len(verificationQuestions) {
			t.Fatalf("question id %d out of range", q.ID)
		}
		if seen[q.ID] {
			t.Fatalf("duplicate question id %d", q.ID)
		}
		seen[q.ID] = true
		if q.Question == "" || len(q.Options) != len(questionOptions) {
			t.Fatalf("malformed question: %+v", q)
		}
	}
}

func TestRegisterValidation(t *testing.T) {
	r := setupAuthTest(t)

	cases := []struct {
		name   string
		mutate func(map[string]interface{})
		errTxt string
	}{
		{"wrong email domain", func(p map[string]interface{}) {
			p["email"] = "student@gmail.com"
		}, "Email must end with"},
		{"bad phone prefix", func(p map[string]interface{}) {
			p["phone"] = "+1234567890"
		}, "Phone must match"},
		{"phone too short", func(p map[string]interface{}) {
			p["phone"] = "+99450123456"
		}, "Phone must match"},
		{"failed verification", func(p map[string]interface{}) {
			p["answers"] = []QuestionResponse{
				{ID: 2, Answer: "wrong"},
				{ID: 8, Answer: "wrong"},
				{ID: 12, Answer: "2"},
			}
		}, "verification answers"},
		{"missing fields", func(p map[string]interface{}) {
			delete(p, "full_name")
		}, "Invalid request data"},
	}

	for _, tc := range cases {
		payload := registerPayload()
		tc.mutate(payload)
		w := postJSON(t, r, "/register", payload)
		if w.Code != 400 {
			t.Errorf("%s: expected 400, got %d", tc.name, w.Code)
			continue
		}
		if !strings.Contains(w.Body.String(), tc.errTxt) {
			t.Errorf("%s: expected error containing %q, got %s", tc.name, tc.errTxt, w.Body.String())
		}
	}

	// Nothing above reached the user store.
	if _, err := store.UserByEmail("student@bsu.edu.az"); err != store.ErrNotFound {
		t.Fatalf("expected no user created, got %v", err)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	r := setupAuthTest(t)

	w := postJSON(t, r, "/register", registerPayload())
	if w.Code != 201 {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// Same email again is rejected.
	dup := registerPayload()
	dup["phone"] = "+994507654321"
	if w := postJSON(t, r, "/register", dup); w.Code != 400 ||
		!strings.Contains(w.Body.String(), "email is already registered") {
		t.Fatalf("expected duplicate email rejection, got %d: %s", w.Code, w.Body.String())
	}

	// Same phone, new email.
	dup = registerPayload()
	dup["email"] = "another@bsu.edu.az"
	if w := postJSON(t, r, "/register", dup); w.Code != 400 ||
		!strings.Contains(w.Body.String(), "phone number is already registered") {
		t.Fatalf("expected duplicate phone rejection, got %d: %s", w.Code, w.Body.String())
	}

	w = postJSON(t, r, "/login", map[string]string{
		"email": "student@bsu.edu.az", "password": "sekret123",
	})
	if w.Code != 200 {
		t.Fatalf("expected login 200, got %d: %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string         `json:"token"`
		User  types.UserData `json:"user"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if login.Token == "" || login.User.Email != "student@bsu.edu.az" {
		t.Fatalf("unexpected login response: %+v", login)
	}

	// Wrong password.
	w = postJSON(t, r, "/login", map[string]string{
		"email": "student@bsu.edu.az", "password": "nope",
	})
	if w.Code != 401 {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}

	// The issued token clears the middleware.
	req := httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("expected protected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var identity struct {
		UserID  int    `json:"userID"`
		Faculty string `json:"faculty"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &identity); err != nil {
		t.Fatalf("decode identity: %v", err)
	}
	if identity.UserID != login.User.ID || identity.Faculty != "Physics" {
		t.Fatalf("unexpected identity context: %+v", identity)
	}
}

func TestLoginDeactivatedAccount(t *testing.T) {
	r := setupAuthTest(t)

	hashed, err := bcrypt.GenerateFromPassword([]byte("sekret123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	userID, err := store.CreateUser(types.UserData{
		FullName: "Banned Student",
		Email:    "banned@bsu.edu.az",
		Phone:    "+994509999999",
		Password: string(hashed),
		Faculty:  "Physics",
		Degree:   "bachelor",
		Course:   1,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := store.UpdateUserStatus(int(userID), false); err != nil {
		t.Fatalf("deactivate user: %v", err)
	}

	w := postJSON(t, r, "/login", map[string]string{
		"email": "banned@bsu.edu.az", "password": "sekret123",
	})
	if w.Code != 403 {
		t.Fatalf("expected 403 for deactivated account, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAuthMiddlewareRejections(t *testing.T) {
	r := setupAuthTest(t)

	req := httptest.NewRequest("GET", "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 401 {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 403 {
		t.Fatalf("expected 403 for garbage token, got %d", rec.Code)
	}

	// A token signed with a different secret fails verification.
	t.Setenv("JWT_SECRET", "other-secret")
	token, err := generateUserJWT(types.UserData{ID: 1, Email: "x@bsu.edu.az", Faculty: "Physics"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	t.Setenv("JWT_SECRET", "test-secret")

	req = httptest.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 403 {
		t.Fatalf("expected 403 for wrong-secret token, got %d", rec.Code)
	}
}

func TestTokenFromCookie(t *testing.T) {
	r := setupAuthTest(t)

	token, err := generateUserJWT(types.UserData{ID: 7, Email: "c@bsu.edu.az", Faculty: "Law"})
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != 200 {
		t.Fatalf("expected 200 with cookie token, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"userID":7`) {
		t.Fatalf("expected identity from cookie token, got %s", rec.Body.String())
	}
}
