package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUsers map[uint]*model.User

func (s stubUsers) CurrentUser(ctx context.Context, id uint) (*model.User, error) {
	if u, ok := s[id]; ok && u.Status {
		return u, nil
	}
	return nil, errors.New("rejected")
}

func tokenFor(t *testing.T, u *model.User) string {
	t.Helper()
	token, err := util.GenerateJWT(u, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func newRouter(users UserChecker, roles ...model.UserRole) *gin.Engine {
	r := gin.New()
	r.GET("/p", AuthMiddleware(testSecret, users), RoleMiddleware(roles...), func(c *gin.Context) {
		c.String(http.StatusOK, string(util.GetUserFromContext(c).Role))
	})
	return r
}

func serve(r *gin.Engine, header, value string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/p", nil)
	if header != "" {
		req.Header.Set(header, value)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	psych := &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.Psychologist, Status: true}
	gone := &model.User{BaseModel: model.BaseModel{ID: 2}, Role: model.Psychologist, Status: false}
	users := stubUsers{1: psych, 2: gone}
	r := newRouter(users, model.Psychologist)

	tests := []struct {
		name   string
		header string
		value  string
		code   int
	}{
		{"bearer", "Authorization", "Bearer " + tokenFor(t, psych), http.StatusOK},
		{"x-token", util.TokenHeader, tokenFor(t, psych), http.StatusOK},
		{"missing", "", "", http.StatusUnauthorized},
		{"garbage", "Authorization", "Bearer abc.def.ghi", http.StatusUnauthorized},
		{"no bearer prefix", "Authorization", tokenFor(t, psych), http.StatusUnauthorized},
		{"inactive user", "Authorization", "Bearer " + tokenFor(t, gone), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(r, tt.header, tt.value)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestAuthMiddleware_RoleFromStore(t *testing.T) {
	// 令牌签发后被降级为心理师
	stale := &model.User{BaseModel: model.BaseModel{ID: 3}, Role: model.Admin, Status: true}
	token := tokenFor(t, stale)
	users := stubUsers{3: {BaseModel: model.BaseModel{ID: 3}, Role: model.Psychologist, Status: true}}

	w := serve(newRouter(users, model.Admin), "Authorization", "Bearer "+token)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleMiddleware_AdminBypass(t *testing.T) {
	admin := &model.User{BaseModel: model.BaseModel{ID: 1}, Role: model.Admin, Status: true}

	w := serve(newRouter(stubUsers{1: admin}, model.Psychologist), "Authorization", "Bearer "+tokenFor(t, admin))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", w.Body.String())
}

type lastSeenRecorder struct{ ids chan uint }

func (r lastSeenRecorder) UpdateLastSeen(id uint) error {
	r.ids <- id
	return nil
}

func TestActivityMiddleware(t *testing.T) {
	rec := lastSeenRecorder{ids: make(chan uint, 1)}
	psych := &model.User{BaseModel: model.BaseModel{ID: 7}, Role: model.Psychologist, Status: true}
	r := gin.New()
	r.GET("/p", AuthMiddleware(testSecret, stubUsers{7: psych}), ActivityMiddleware(rec), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := serve(r, "Authorization", "Bearer "+tokenFor(t, psych))

	assert.Equal(t, http.StatusNoContent, w.Code)
	select {
	case id := <-rec.ids:
		assert.Equal(t, uint(7), id)
	case <-time.After(time.Second):
		t.Fatal("last seen not updated")
	}
}
