package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/storefront-backend/internal/users"
	pkgAuth "github.com/angelmondragon/storefront-backend/pkg/auth"
	"github.com/angelmondragon/storefront-backend/pkg/auth/session"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "storefront-test",
		ExpirationMinutes: 15,
	}
}

type stubSessionManager struct {
	sessions map[string]uuid.UUID
	tokens   map[string]string
	counter  int
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: map[string]uuid.UUID{}, tokens: map[string]string{}}
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string, userID uuid.UUID) (string, error) {
	s.counter++
	token := "refresh-" + uuid.NewString()
	s.sessions[accessID] = userID
	s.tokens[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID string, userID uuid.UUID, provided string) (string, string, error) {
	owner, ok := s.sessions[oldAccessID]
	if !ok || owner != userID || s.tokens[oldAccessID] != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.sessions, oldAccessID)
	delete(s.tokens, oldAccessID)
	newID := session.NewAccessID()
	token, err := s.Generate(ctx, newID, userID)
	return newID, token, err
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(s.sessions, accessID)
	delete(s.tokens, accessID)
	return nil
}

func buildTestService(t *testing.T) (Service, *users.Repository, *stubSessionManager) {
	t.Helper()
	conn := dbtest.Open(t)
	repo := users.NewRepository(conn)
	sessions := newStubSessionManager()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		TxRunner:       db.Wrap(conn),
		JWTConfig:      testJWTConfig(),
		PasswordConfig: config.PasswordConfig{MinLength: 8},
	})
	require.NoError(t, err)
	return svc, repo, sessions
}

func parseClaims(t *testing.T, token string) *pkgAuth.AccessTokenClaims {
	t.Helper()
	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), token)
	require.NoError(t, err)
	return claims
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
}

func TestRegisterCreatesUserAndSession(t *testing.T) {
	svc, repo, sessions := buildTestService(t)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Name:     "Ana Souza",
		Email:    "  Ana@Example.com ",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.User)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.Equal(t, enums.UserRoleUser, resp.User.Role)
	assert.NotEmpty(t, resp.RefreshToken)

	claims := parseClaims(t, resp.AccessToken)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Contains(t, sessions.sessions, claims.ID)

	stored, err := repo.FindByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := buildTestService(t)
	req := RegisterRequest{Name: "Bruno", Email: "bruno@example.com", Password: "password123"}

	_, err := svc.Register(context.Background(), req)
	require.NoError(t, err)

	req.Email = "BRUNO@example.com"
	_, err = svc.Register(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.As(err).Code())
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	svc, _, _ := buildTestService(t)

	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Caio", Email: "caio@example.com", Password: "short"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.As(err).Code())
}

func TestLoginSuccess(t *testing.T) {
	svc, _, _ := buildTestService(t)
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Dora", Email: "dora@example.com", Password: "password123"})
	require.NoError(t, err)

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "DORA@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotNil(t, resp.User.LastLoginAt)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _, _ := buildTestService(t)
	_, err := svc.Register(context.Background(), RegisterRequest{Name: "Eva", Email: "eva@example.com", Password: "password123"})
	require.NoError(t, err)

	cases := []LoginRequest{
		{Email: "eva@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "password123"},
		{Email: "   ", Password: "password123"},
	}
	for _, req := range cases {
		_, err := svc.Login(context.Background(), req)
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
		assert.Equal(t, invalidCredentialsMessage, typed.Message())
	}
}

func TestRefreshRotatesSessionAndPicksUpRoleChange(t *testing.T) {
	svc, repo, sessions := buildTestService(t)
	resp, err := svc.Register(context.Background(), RegisterRequest{Name: "Fabio", Email: "fabio@example.com", Password: "password123"})
	require.NoError(t, err)
	claims := parseClaims(t, resp.AccessToken)

	_, err = repo.UpdateRole(context.Background(), resp.User.ID, enums.UserRoleAdmin)
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), claims, resp.RefreshToken)
	require.NoError(t, err)
	newClaims := parseClaims(t, refreshed.AccessToken)
	assert.Equal(t, enums.UserRoleAdmin, newClaims.Role)
	assert.NotEqual(t, claims.ID, newClaims.ID)
	assert.NotContains(t, sessions.sessions, claims.ID)

	_, err = svc.Refresh(context.Background(), claims, resp.RefreshToken)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := buildTestService(t)
	resp, err := svc.Register(context.Background(), RegisterRequest{Name: "Gil", Email: "gil@example.com", Password: "password123"})
	require.NoError(t, err)
	claims := parseClaims(t, resp.AccessToken)

	require.NoError(t, svc.Logout(context.Background(), claims))
	assert.NotContains(t, sessions.sessions, claims.ID)

	err = svc.Logout(context.Background(), &pkgAuth.AccessTokenClaims{})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}
