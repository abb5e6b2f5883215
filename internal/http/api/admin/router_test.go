package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/yokinanya/omega-miya/internal/config"
	dbutil "github.com/yokinanya/omega-miya/internal/db"
	"github.com/yokinanya/omega-miya/internal/entity"
	"github.com/yokinanya/omega-miya/internal/omega"
	"github.com/yokinanya/omega-miya/internal/security"
	"gorm.io/gorm"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *omega.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open db: %v", errOpen)
	}
	if errMigrate := dbutil.Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate db: %v", errMigrate)
	}

	hash, errHash := security.HashPassword("secret")
	if errHash != nil {
		t.Fatalf("hash password: %v", errHash)
	}
	adminCfg := config.AdminConfig{Username: "admin", PasswordHash: hash}
	jwtCfg := config.JWTConfig{Secret: "test-secret", Expiry: config.Duration(time.Hour)}

	svc := omega.NewService(conn)
	r := gin.New()
	RegisterRoutes(r, conn, svc, adminCfg, jwtCfg)
	return r, svc
}

func loginToken(t *testing.T, r *gin.Engine, username, password string) (string, int) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"username": username, "password": password})
	req := httptest.NewRequest(http.MethodPost, "/admin/api/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		return "", rec.Code
	}
	var parsed struct {
		Token string `json:"token"`
	}
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &parsed); errDecode != nil {
		t.Fatalf("decode login response: %v", errDecode)
	}
	return parsed.Token, rec.Code
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _ := setupTestRouter(t)

	if _, code := loginToken(t, r, "admin", "wrong"); code != http.StatusUnauthorized {
		t.Fatalf("login code = %d, want 401", code)
	}
	if _, code := loginToken(t, r, "someone", "secret"); code != http.StatusUnauthorized {
		t.Fatalf("login code = %d, want 401", code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _ := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/entities", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("code without token = %d, want 401", rec.Code)
	}
}

func TestEntityEndpointsRoundTrip(t *testing.T) {
	r, svc := setupTestRouter(t)

	token, code := loginToken(t, r, "admin", "secret")
	if code != http.StatusOK {
		t.Fatalf("login code = %d, want 200", code)
	}

	ident := entity.Identity{
		BotIndexID: 1,
		EntityID:   "10001",
		EntityType: entity.TypeOneBotV11User,
		ParentID:   "group_1",
	}
	handle, errAcquire := svc.Acquire(context.Background(), ident, "alice", "")
	if errAcquire != nil {
		t.Fatalf("acquire: %v", errAcquire)
	}
	if errSignIn := handle.SignIn(context.Background()); errSignIn != nil {
		t.Fatalf("sign in: %v", errSignIn)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/entities?type=onebot_v11_user", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list code = %d, body %s", rec.Code, rec.Body.String())
	}
	var listResp struct {
		Entities []struct {
			ID         uint64 `json:"id"`
			EntityName string `json:"entity_name"`
		} `json:"entities"`
	}
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &listResp); errDecode != nil {
		t.Fatalf("decode list: %v", errDecode)
	}
	if len(listResp.Entities) != 1 || listResp.Entities[0].EntityName != "alice" {
		t.Fatalf("list = %+v, want one entity named alice", listResp.Entities)
	}

	statsPath := "/admin/api/entities/" + strconv.FormatUint(listResp.Entities[0].ID, 10) + "/sign-ins"
	req = httptest.NewRequest(http.MethodGet, statsPath, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("stats code = %d, body %s", rec.Code, rec.Body.String())
	}
	var statsResp struct {
		TotalDays      int  `json:"total_days"`
		ContinuousDays int  `json:"continuous_days"`
		SignedToday    bool `json:"signed_today"`
	}
	if errDecode := json.Unmarshal(rec.Body.Bytes(), &statsResp); errDecode != nil {
		t.Fatalf("decode stats: %v", errDecode)
	}
	if statsResp.TotalDays != 1 || statsResp.ContinuousDays != 1 || !statsResp.SignedToday {
		t.Fatalf("stats = %+v, want one signed day", statsResp)
	}
}

func TestUnknownEntityReturns404(t *testing.T) {
	r, _ := setupTestRouter(t)

	token, code := loginToken(t, r, "admin", "secret")
	if code != http.StatusOK {
		t.Fatalf("login code = %d, want 200", code)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/api/entities/424242", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("code = %d, want 404", rec.Code)
	}
}
