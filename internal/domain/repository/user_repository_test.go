package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillpath/internal/common"
	"skillpath/internal/domain/model"
)

func newRepoWithMock(t *testing.T) (UserRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return NewPgUserRepository(db), mock, db
}

var userColumnNames = []string{
	"id", "name", "email", "hashed_password", "role", "profile_picture",
	"progress_css", "progress_html", "progress_js_challenges", "progress_js_theory",
	"created_at", "updated_at",
}

func userRow(id, name, email, hash, role string, p model.Progress) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userColumnNames).
		AddRow(id, name, email, hash, role, "", p.CSS, p.HTML, p.JSChallenges, p.JSTheory, now, now)
}

func TestCreate_Success(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^INSERT\s+INTO\s+users\s*\(id,\s*name,\s*email,\s*hashed_password,\s*role,\s*profile_picture\)`

	mock.ExpectExec(q).
		WithArgs("u-1", "Alice", "alice@example.com", "hashed", "user", "").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), &model.User{
		ID: "u-1", Name: "Alice", Email: "alice@example.com", HashedPassword: "hashed", Role: "user",
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateEmailIsConflict(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WithArgs("u-2", "Bob", "alice@example.com", "hashed", "user", "").
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})

	err := repo.Create(context.Background(), &model.User{
		ID: "u-2", Name: "Bob", Email: "alice@example.com", HashedPassword: "hashed", Role: "user",
	})
	require.ErrorIs(t, err, common.ErrConflict)
}

func TestCreate_DBError(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`(?s)^INSERT\s+INTO\s+users`).
		WillReturnError(errors.New("db down"))

	err := repo.Create(context.Background(), &model.User{ID: "u-1"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrConflict)
}

func TestFindByEmail_Found(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^SELECT\s+.*\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`
	mock.ExpectQuery(q).
		WithArgs("alice@example.com").
		WillReturnRows(userRow("u-1", "Alice", "alice@example.com", "hashed", "provider",
			model.Progress{CSS: 5, HTML: 3, JSChallenges: 2, JSTheory: 1}))

	user, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u-1", user.ID)
	assert.Equal(t, "provider", user.Role)
	assert.Equal(t, "hashed", user.HashedPassword)
	assert.Equal(t, model.Progress{CSS: 5, HTML: 3, JSChallenges: 2, JSTheory: 1}, user.Progress)
}

func TestFindByEmail_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+users\s+WHERE\s+email\s*=\s*\$1\s*$`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestFindByID_NotFound(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^SELECT\s+.*\s+FROM\s+users\s+WHERE\s+id\s*=\s*\$1\s*$`).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestUpdateProgress_ReplacesWholesale(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	q := `(?s)^UPDATE\s+users\s+SET\s+progress_css\s*=\s*\$2.*WHERE\s+id\s*=\s*\$1.*RETURNING`
	rows := sqlmock.NewRows([]string{"progress_css", "progress_html", "progress_js_challenges", "progress_js_theory"}).
		AddRow(50, 10, 10, 10)
	mock.ExpectQuery(q).
		WithArgs("u-1", 50, 10, 10, 10).
		WillReturnRows(rows)

	updated, err := repo.UpdateProgress(context.Background(), "u-1",
		model.Progress{CSS: 50, HTML: 10, JSChallenges: 10, JSTheory: 10})
	require.NoError(t, err)
	assert.Equal(t, &model.Progress{CSS: 50, HTML: 10, JSChallenges: 10, JSTheory: 10}, updated)
}

func TestUpdateProgress_UnknownUser(t *testing.T) {
	repo, mock, db := newRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)^UPDATE\s+users\s+SET\s+progress_css`).
		WithArgs("missing", 1, 2, 3, 4).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.UpdateProgress(context.Background(), "missing",
		model.Progress{CSS: 1, HTML: 2, JSChallenges: 3, JSTheory: 4})
	require.ErrorIs(t, err, common.ErrNotFound)
}
