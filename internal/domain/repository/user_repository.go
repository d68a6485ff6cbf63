package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"skillpath/internal/common"
	"skillpath/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	// UpdateProgress replaces the user's progress record wholesale and
	// returns the stored result.
	UpdateProgress(ctx context.Context, id string, progress model.Progress) (*model.Progress, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, name, email, hashed_password, role, profile_picture,
	          progress_css, progress_html, progress_js_challenges, progress_js_theory,
	          created_at, updated_at`

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (id, name, email, hashed_password, role, profile_picture)
	          VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.HashedPassword, user.Role, user.ProfilePicture)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
			return fmt.Errorf("email is already in use: %w", common.ErrConflict)
		}
		return fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	return nil
}

func (r *pgUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email), "FindByEmail")
}

func (r *pgUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id), "FindByID")
}

func (r *pgUserRepository) UpdateProgress(ctx context.Context, id string, progress model.Progress) (*model.Progress, error) {
	query := `UPDATE users
	          SET progress_css = $2, progress_html = $3,
	              progress_js_challenges = $4, progress_js_theory = $5,
	              updated_at = now()
	          WHERE id = $1
	          RETURNING progress_css, progress_html, progress_js_challenges, progress_js_theory`
	updated := &model.Progress{}
	err := r.db.QueryRowContext(ctx, query,
		id, progress.CSS, progress.HTML, progress.JSChallenges, progress.JSTheory,
	).Scan(&updated.CSS, &updated.HTML, &updated.JSChallenges, &updated.JSTheory)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.UpdateProgress: %w", err)
	}
	return updated, nil
}

func (r *pgUserRepository) scanUser(row *sql.Row, op string) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Name, &user.Email, &user.HashedPassword, &user.Role, &user.ProfilePicture,
		&user.Progress.CSS, &user.Progress.HTML, &user.Progress.JSChallenges, &user.Progress.JSTheory,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.%s: %w", op, err)
	}
	return user, nil
}
