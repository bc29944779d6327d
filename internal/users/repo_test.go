package users

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/campuskit/campus-backend/pkg/db/models"
	"github.com/campuskit/campus-backend/pkg/enums"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  full_name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  phone TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  is_approved INTEGER NOT NULL DEFAULT 1,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_by TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func seedAccount(t *testing.T, db *gorm.DB, email string, role enums.Role, active bool) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		FullName:     "Seed User",
		Email:        email,
		Phone:        "5550001111",
		PasswordHash: "argon2id-placeholder",
		Role:         role,
		IsApproved:   true,
		IsActive:     active,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestRepositoryFindByEmail_exactMatch(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	seeded := seedAccount(t, db, "Jamie@Example.com", enums.RoleStudent, true)

	found, err := repo.FindByEmail(context.Background(), "Jamie@Example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)

	_, err = repo.FindByEmail(context.Background(), "jamie@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositorySetActive(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	seeded := seedAccount(t, db, "active@example.com", enums.RoleAdmin, true)

	require.NoError(t, repo.SetActive(context.Background(), seeded.ID, false))

	reloaded, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.False(t, reloaded.IsActive)
}

func TestRepositoryExistsWithRole(t *testing.T) {
	db := setupUsersTestDB(t)
	repo := NewRepository(db)

	exists, err := repo.ExistsWithRole(context.Background(), enums.RoleSuperAdmin.String())
	require.NoError(t, err)
	assert.False(t, exists)

	seedAccount(t, db, "root@example.com", enums.RoleSuperAdmin, true)

	exists, err = repo.ExistsWithRole(context.Background(), enums.RoleSuperAdmin.String())
	require.NoError(t, err)
	assert.True(t, exists)
}
