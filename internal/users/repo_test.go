package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/pagination"
)

func seedUser(t *testing.T, repo *Repository, email string) uuid.UUID {
	t.Helper()
	user, err := repo.Create(context.Background(), CreateUserDTO{
		Name:         "Ana",
		Email:        email,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return user.ID
}

func TestRepositoryCreateAndFind(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()

	id := seedUser(t, repo, "ana@example.com")

	byEmail, err := repo.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, id, byEmail.ID)
	assert.Equal(t, enums.UserRoleUser, byEmail.Role)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	now := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, id, now))
	byID, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, byID.LastLoginAt)
	assert.True(t, byID.LastLoginAt.Equal(now))
}

func TestRepositoryUpdateFields(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	id := seedUser(t, repo, "bia@example.com")

	updated, err := repo.UpdateFields(ctx, id, map[string]any{"name": "Bia", "phone": "+55 11 99999-0000"})
	require.NoError(t, err)
	assert.Equal(t, "Bia", updated.Name)
	require.NotNil(t, updated.Phone)

	_, err = repo.UpdateFields(ctx, uuid.New(), map[string]any{"name": "Nobody"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	promoted, err := repo.UpdateRole(ctx, id, enums.UserRoleModerator)
	require.NoError(t, err)
	assert.Equal(t, enums.UserRoleModerator, promoted.Role)
}

func TestRepositoryListPaginates(t *testing.T) {
	repo := NewRepository(dbtest.Open(t))
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		seedUser(t, repo, email)
	}

	rows, total, err := repo.List(ctx, pagination.Params{Limit: 2, Offset: 0})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 2)

	rows, _, err = repo.List(ctx, pagination.Params{Limit: 2, Offset: 2})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
