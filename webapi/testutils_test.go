package webapi

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/unknownhumanoid/pelicoin/internal/fixtures/mocks"
	"github.com/unknownhumanoid/pelicoin/pkg/app"
	"github.com/unknownhumanoid/pelicoin/pkg/config"
	"github.com/unknownhumanoid/pelicoin/pkg/domain/user"
	"github.com/unknownhumanoid/pelicoin/pkg/repository"
	"github.com/unknownhumanoid/pelicoin/pkg/service/auth"
)

// testEnv bundles the app under test with its repository mocks.
type testEnv struct {
	app       *fiber.App
	userRepo  *mocks.MockUserRepository
	adminRepo *mocks.MockAdminRepository
	txRepo    *mocks.MockTransactionRepository
	auth      *auth.Service
}

func setupTestApp(t *testing.T) *testEnv {
	t.Helper()
	userRepo := mocks.NewMockUserRepository(t)
	adminRepo := mocks.NewMockAdminRepository(t)
	txRepo := mocks.NewMockTransactionRepository(t)
	uow := mocks.NewMockUnitOfWork(t)
	uow.EXPECT().UserRepository().Return(userRepo, nil).Maybe()
	uow.EXPECT().AdminRepository().Return(adminRepo, nil).Maybe()
	uow.EXPECT().TransactionRepository().Return(txRepo, nil).Maybe()
	uow.EXPECT().Do(mock.Anything, mock.Anything).RunAndReturn(
		func(ctx context.Context, fn func(repository.UnitOfWork) error) error {
			return fn(uow)
		},
	).Maybe()

	cfg := &config.App{
		Env:    "test",
		Auth:   &config.Auth{Jwt: &config.Jwt{Secret: "secret", Expiry: time.Hour}},
		SignUp: &config.SignUp{EmailDomain: "loomis.org"},
		// no rate limiting for tests
	}
	a := app.New(&app.Deps{Uow: uow, Logger: discardLogger()}, cfg)
	return &testEnv{
		app:       NewApp(a),
		userRepo:  userRepo,
		adminRepo: adminRepo,
		txRepo:    txRepo,
		auth:      a.AuthService,
	}
}

func (e *testEnv) makeRequest(
	t *testing.T,
	method, path, body, token string,
) *http.Response {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) userToken(t *testing.T, email, name string) string {
	t.Helper()
	token, err := e.auth.GenerateToken(email, name, auth.RoleUser)
	require.NoError(t, err)
	return token
}

func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()
	token, err := e.auth.GenerateToken("admin@loomis.org", "", auth.RoleAdmin)
	require.NoError(t, err)
	return token
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestUser(t *testing.T, email string) *user.User {
	t.Helper()
	u, err := user.New(email, "password123", "Test User", 2026, "Batchelder")
	require.NoError(t, err)
	return u
}
