package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/master-scheduler/internal/models"
)

func TestCreateMaster_SuffixesTakenSlug(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery(`SELECT .* FROM "master_profiles" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT .* FROM "master_profiles" WHERE slug = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`INSERT INTO "master_profiles"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectCommit()

	user := &models.User{Name: "Anna", Email: "anna@example.com", PasswordHash: "x", Role: models.RoleMaster}
	profile := &models.MasterProfile{DisplayName: "Anna", Slug: "anna", Timezone: "UTC"}

	require.NoError(t, repo.CreateMaster(context.Background(), user, profile))
	assert.Equal(t, "anna-1", profile.Slug)
	assert.Equal(t, uint(7), profile.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmailExists(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAccountGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "users" WHERE email = \$1`).
		WithArgs("anna@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.EmailExists(context.Background(), "anna@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
