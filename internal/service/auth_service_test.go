package service

import (
	"context"
	"testing"
	"time"

	"risk_assessment_backend/internal/config"
	"risk_assessment_backend/internal/model"
	"risk_assessment_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-with-enough-entropy-0123456789"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func newUser(t *testing.T, email, password string, role model.UserRole, active bool) *model.User {
	t.Helper()
	hashed, err := HashPassword(password)
	require.NoError(t, err)
	return &model.User{FirstName: "Luis", LastName: "Soto", Email: email, Password: hashed, Role: role, Status: active}
}

func TestAuthService_Login(t *testing.T) {
	users := newFakeUserStore(newUser(t, "lsoto@colegio.cl", "clave-segura", model.Psychologist, true))
	svc := NewAuthService(users, testConfig())

	res, err := svc.Login(context.Background(), "lsoto@colegio.cl", "clave-segura")

	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	require.NotNil(t, res.User.LastLogin)
	assert.Contains(t, users.logins, res.User.ID)

	claims, err := util.ParseJWT(res.Token, testConfig().JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, model.Psychologist, claims.Role)
}

func TestAuthService_Login_Rejects(t *testing.T) {
	users := newFakeUserStore(
		newUser(t, "lsoto@colegio.cl", "clave-segura", model.Psychologist, true),
		newUser(t, "baja@colegio.cl", "clave-segura", model.Psychologist, false),
	)
	svc := NewAuthService(users, testConfig())
	ctx := context.Background()

	_, err := svc.Login(ctx, "lsoto@colegio.cl", "otra-clave")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nadie@colegio.cl", "clave-segura")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "baja@colegio.cl", "clave-segura")
	assert.ErrorIs(t, err, util.ErrUserInactive)
}

func TestAuthService_CurrentUser(t *testing.T) {
	active := newUser(t, "a@colegio.cl", "clave-segura", model.Admin, true)
	inactive := newUser(t, "b@colegio.cl", "clave-segura", model.Admin, false)
	svc := NewAuthService(newFakeUserStore(active, inactive), testConfig())
	ctx := context.Background()

	u, err := svc.CurrentUser(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@colegio.cl", u.Email)

	_, err = svc.CurrentUser(ctx, inactive.ID)
	assert.ErrorIs(t, err, util.ErrUserInactive)

	_, err = svc.CurrentUser(ctx, 99)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	users := newFakeUserStore()
	svc := NewAuthService(users, testConfig())
	admin := config.AdminConfig{Email: "admin@colegio.cl", Password: "cambiar-pronto"}

	created, err := svc.EnsureAdmin(context.Background(), admin)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = svc.EnsureAdmin(context.Background(), admin)
	require.NoError(t, err)
	assert.False(t, created)

	n, _ := users.CountActive(context.Background(), model.Admin)
	assert.Equal(t, int64(1), n)

	res, err := svc.Login(context.Background(), admin.Email, admin.Password)
	require.NoError(t, err)
	assert.Equal(t, "Administrador", res.User.FirstName)
}

func TestAuthService_EnsureAdmin_NotConfigured(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), testConfig())

	created, err := svc.EnsureAdmin(context.Background(), config.AdminConfig{})

	require.NoError(t, err)
	assert.False(t, created)
}

func TestUserService_Create(t *testing.T) {
	users := newFakeUserStore()
	svc := NewUserService(users)
	req := CreateUserRequest{
		FirstName: "Marta",
		LastName:  "Ríos",
		Email:     "mrios@colegio.cl",
		Password:  "clave-segura",
		Role:      "psychologist",
	}

	u, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, req.Password, u.Password)
	assert.True(t, u.Status)

	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	req.Email = "otro@colegio.cl"
	req.Role = "superuser"
	_, err = svc.Create(context.Background(), req)
	assert.Error(t, err)
}

func TestStudentService(t *testing.T) {
	svc := NewStudentService(newFakeStudentStore())
	ctx := context.Background()

	s, err := svc.Create(ctx, CreateStudentRequest{FirstName: "Ana", LastName: "Pérez", Grade: "2° Medio"})
	require.NoError(t, err)
	assert.True(t, s.Status)

	got, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", got.FullName())

	_, err = svc.Get(ctx, 404)
	assert.ErrorIs(t, err, util.ErrStudentNotFound)
}
