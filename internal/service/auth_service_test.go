package service

import (
	"context"
	"edu_testing_backend/internal/config"
	"edu_testing_backend/internal/model"
	"edu_testing_backend/internal/service/servicetest"
	"edu_testing_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*AuthService, *servicetest.DB) {
	db := servicetest.NewDB()
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "unit-test-secret", ExpireTime: time.Hour}}
	return NewAuthService(db.Users(), cfg), db
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthService()

	user, err := svc.Register(ctx, RegisterReq{Name: " Ada ", Email: "Ada@Example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, model.Student, user.Role)
	assert.NotEqual(t, "secret1", user.Password)

	_, err = svc.Register(ctx, RegisterReq{Name: "Ada 2", Email: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)

	teacher, err := svc.Register(ctx, RegisterReq{Name: "Grace", Email: "grace@example.com", Password: "secret1", Role: model.Teacher})
	require.NoError(t, err)
	assert.Equal(t, model.Teacher, teacher.Role)
}

func TestRegister_Violations(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register(context.Background(), RegisterReq{Email: "not-an-email", Password: "123", Role: model.Admin})
	fields := violationFields(t, err)
	assert.ElementsMatch(t, []string{"name", "email", "password", "role"}, fields)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, db := newAuthService()
	fixed := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }

	user, err := svc.Register(ctx, RegisterReq{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	res, err := svc.Login(ctx, " ADA@example.com ", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	claims, err := util.ParseJWT(res.Token, "unit-test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Student, claims.Role)

	stored, err := db.Users().FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLogin)
	assert.Equal(t, fixed, *stored.LastLogin)

	_, err = svc.Login(ctx, "ada@example.com", "wrong")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "secret1")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLogin_DisabledUser(t *testing.T) {
	ctx := context.Background()
	svc, db := newAuthService()

	user, err := svc.Register(ctx, RegisterReq{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)

	disabled := &model.User{Name: "Off", Email: "off@example.com", Password: user.Password, Role: model.Student, Disabled: true}
	require.NoError(t, db.Users().Create(ctx, disabled))

	_, err = svc.Login(ctx, "off@example.com", "secret1")
	assert.ErrorIs(t, err, util.ErrUserDisabled)
}
