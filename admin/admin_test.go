package admin

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"campuschat/db"
	"campuschat/store"
	"campuschat/types"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	database, err := db.InitSQLite(filepath.Join(t.TempDir(), "admin_test.sqlite"))
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

func setupAdminRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	setupTestDB(t)

	if err := db.SeedSuperAdmin("root", "rootpass"); err != nil {
		t.Fatalf("seed super admin: %v", err)
	}

	r := gin.New()
	r.POST("/login", HandleAdminLogin)
	protected := r.Group("/", AdminMiddleware())
	protected.GET("/users", HandleListUsers)
	protected.PUT("/users/:userId/status", HandleUpdateUserStatus)
	protected.PUT("/settings/auto-delete", HandleUpdateAutoDelete)
	protected.PUT("/settings/filter-words", HandleUpdateFilterWords)
	protected.POST("/admins", HandleCreateAdmin)
	protected.GET("/admins", HandleListAdmins)
	protected.DELETE("/admins/:adminId", HandleDeleteAdmin)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func loginAdmin(t *testing.T, r *gin.Engine, username, password string) string {
	t.Helper()
	w := doJSON(t, r, "POST", "/login", "", map[string]string{
		"username": username, "password": password,
	})
	if w.Code != 200 {
		t.Fatalf("admin login failed: %d %s", w.Code, w.Body.String())
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return body.Token
}

func TestAdminLoginAndMiddleware(t *testing.T) {
	r := setupAdminRouter(t)

	w := doJSON(t, r, "POST", "/login", "", map[string]string{
		"username": "root", "password": "wrong",
	})
	if w.Code != 401 {
		t.Fatalf("expected 401 for wrong password, got %d", w.Code)
	}

	token := loginAdmin(t, r, "root", "rootpass")

	if w := doJSON(t, r, "GET", "/users", "", nil); w.Code != 401 {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
	if w := doJSON(t, r, "GET", "/users", "garbage", nil); w.Code != 403 {
		t.Fatalf("expected 403 for bad token, got %d", w.Code)
	}
	if w := doJSON(t, r, "GET", "/users", token, nil); w.Code != 200 {
		t.Fatalf("expected 200 with admin token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateUserStatus(t *testing.T) {
	r := setupAdminRouter(t)
	token := loginAdmin(t, r, "root", "rootpass")

	userID, err := store.CreateUser(types.UserData{
		FullName: "Student", Email: "s@bsu.edu.az", Phone: "+994501112233",
		Password: "x", Faculty: "Physics", Degree: "bachelor", Course: 1,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	inactive := false
	w := doJSON(t, r, "PUT", "/users/"+strconv.Itoa(int(userID))+"/status", token,
		map[string]*bool{"is_active": &inactive})
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	user, err := store.UserByID(int(userID))
	if err != nil {
		t.Fatalf("reread user: %v", err)
	}
	if user.IsActive {
		t.Fatal("expected user deactivated")
	}

	if w := doJSON(t, r, "PUT", "/users/notanumber/status", token,
		map[string]*bool{"is_active": &inactive}); w.Code != 400 {
		t.Fatalf("expected 400 for bad user id, got %d", w.Code)
	}
	if w := doJSON(t, r, "PUT", "/users/"+strconv.Itoa(int(userID))+"/status", token,
		map[string]string{}); w.Code != 400 {
		t.Fatalf("expected 400 for missing is_active, got %d", w.Code)
	}
}

func TestAutoDeleteRejectsNegativeHours(t *testing.T) {
	r := setupAdminRouter(t)
	token := loginAdmin(t, r, "root", "rootpass")

	w := doJSON(t, r, "PUT", "/settings/auto-delete", token,
		map[string]int{"groupHours": -1, "privateHours": 24})
	if w.Code != 400 || !strings.Contains(w.Body.String(), "cannot be negative") {
		t.Fatalf("expected negative hours rejection, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "PUT", "/settings/auto-delete", token,
		map[string]int{"groupHours": 24, "privateHours": 0})
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if settings.AutoDeleteGroupHours != 24 || settings.AutoDeletePrivateHours != 0 {
		t.Fatalf("unexpected retention windows: %+v", settings)
	}
}

func TestFilterWordsUpdate(t *testing.T) {
	r := setupAdminRouter(t)
	token := loginAdmin(t, r, "root", "rootpass")

	w := doJSON(t, r, "PUT", "/settings/filter-words", token,
		map[string][]string{"words": {"word1", "word2"}})
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	settings, err := store.GetSettings()
	if err != nil {
		t.Fatalf("read settings: %v", err)
	}
	if len(settings.FilterWords) != 2 || settings.FilterWords[1] != "word2" {
		t.Fatalf("unexpected filter words: %v", settings.FilterWords)
	}
}

func TestAdminHierarchy(t *testing.T) {
	r := setupAdminRouter(t)
	superToken := loginAdmin(t, r, "root", "rootpass")

	// The super admin creates a regular admin.
	w := doJSON(t, r, "POST", "/admins", superToken,
		map[string]string{"username": "moderator", "password": "modpass"})
	if w.Code != 200 {
		t.Fatalf("expected admin created, got %d: %s", w.Code, w.Body.String())
	}

	// Duplicate username is rejected.
	w = doJSON(t, r, "POST", "/admins", superToken,
		map[string]string{"username": "moderator", "password": "other"})
	if w.Code != 400 {
		t.Fatalf("expected duplicate username rejection, got %d", w.Code)
	}

	modToken := loginAdmin(t, r, "moderator", "modpass")

	// A regular admin clears the middleware but not the super-admin gates.
	if w := doJSON(t, r, "GET", "/users", modToken, nil); w.Code != 200 {
		t.Fatalf("expected regular admin to list users, got %d", w.Code)
	}
	if w := doJSON(t, r, "POST", "/admins", modToken,
		map[string]string{"username": "sneaky", "password": "x"}); w.Code != 403 {
		t.Fatalf("expected 403 for regular admin creating admins, got %d", w.Code)
	}
	if w := doJSON(t, r, "GET", "/admins", modToken, nil); w.Code != 403 {
		t.Fatalf("expected 403 for regular admin listing admins, got %d", w.Code)
	}

	admins, err := store.AllAdmins()
	if err != nil {
		t.Fatalf("list admins: %v", err)
	}
	if len(admins) != 2 {
		t.Fatalf("expected 2 admins, got %d", len(admins))
	}

	var modID int
	for _, a := range admins {
		if a.Username == "moderator" {
			modID = a.ID
		}
	}

	// Deleting the moderator works; deleting the super admin is a no-op.
	if w := doJSON(t, r, "DELETE", "/admins/"+strconv.Itoa(modID), superToken, nil); w.Code != 200 {
		t.Fatalf("expected moderator deleted, got %d", w.Code)
	}
	mod, err := store.AdminByUsername("moderator")
	if err != store.ErrNotFound {
		t.Fatalf("expected moderator gone, got %+v (%v)", mod, err)
	}

	root, err := store.AdminByUsername("root")
	if err != nil {
		t.Fatalf("lookup super admin: %v", err)
	}
	if w := doJSON(t, r, "DELETE", "/admins/"+strconv.Itoa(root.ID), superToken, nil); w.Code != 200 {
		t.Fatalf("expected delete call to succeed, got %d", w.Code)
	}
	if _, err := store.AdminByUsername("root"); err != nil {
		t.Fatalf("expected super admin to survive deletion, got %v", err)
	}
}
