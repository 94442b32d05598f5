package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/templui/devlens/internal/model"
)

var ErrGitHubUserNotFound = errors.New("github user not found")

type GitHubUserRepository interface {
	ByUsername(ctx context.Context, username string) (*model.GitHubUser, error)
	Upsert(ctx context.Context, user *model.GitHubUser) (*model.GitHubUser, error)
}

type githubUserRepository struct {
	db *sqlx.DB
}

func NewGitHubUserRepository(db *sqlx.DB) GitHubUserRepository {
	return &githubUserRepository{db: db}
}

func (r *githubUserRepository) ByUsername(ctx context.Context, username string) (*model.GitHubUser, error) {
	user := &model.GitHubUser{}
	query := `SELECT * FROM github_users WHERE username = $1`

	err := r.db.GetContext(ctx, user, query, username)
	if err == sql.ErrNoRows {
		return nil, ErrGitHubUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Upsert inserts the user or overwrites every column of the existing row with
// the same username. id and fetched_at keep the values from the first insert.
// The stored row is returned.
func (r *githubUserRepository) Upsert(ctx context.Context, user *model.GitHubUser) (*model.GitHubUser, error) {
	id := user.ID
	if id == "" {
		id = uuid.New().String()
	}
	fetchedAt := user.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO github_users (id, username, name, public_repos, followers, following, created_at, fetched_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (username) DO UPDATE SET
			name = excluded.name,
			public_repos = excluded.public_repos,
			followers = excluded.followers,
			following = excluded.following,
			created_at = excluded.created_at
	`, id, user.Username, user.Name, user.PublicRepos, user.Followers, user.Following, user.CreatedAt.UTC(), fetchedAt)
	if err != nil {
		return nil, err
	}

	return r.ByUsername(ctx, user.Username)
}
