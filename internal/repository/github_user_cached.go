package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/templui/devlens/internal/cache"
	"github.com/templui/devlens/internal/model"
)

// CachedGitHubUserRepository serves ByUsername from a cache and falls back to
// the wrapped repository on a miss. Cache failures are logged, never returned.
type CachedGitHubUserRepository struct {
	repo  GitHubUserRepository
	cache cache.Cache
	ttl   time.Duration
}

func NewCachedGitHubUserRepository(repo GitHubUserRepository, c cache.Cache, ttl time.Duration) *CachedGitHubUserRepository {
	return &CachedGitHubUserRepository{
		repo:  repo,
		cache: c,
		ttl:   ttl,
	}
}

func githubUserCacheKey(username string) string {
	return "github_user:" + username
}

func (r *CachedGitHubUserRepository) ByUsername(ctx context.Context, username string) (*model.GitHubUser, error) {
	key := githubUserCacheKey(username)

	var cached model.GitHubUser
	err := r.cache.Get(ctx, key, &cached)
	if err == nil {
		slog.Debug("cache hit", "key", key)
		return &cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		slog.Warn("cache read failed", "error", err, "key", key)
	}

	user, err := r.repo.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	r.store(ctx, user)
	return user, nil
}

func (r *CachedGitHubUserRepository) Upsert(ctx context.Context, user *model.GitHubUser) (*model.GitHubUser, error) {
	stored, err := r.repo.Upsert(ctx, user)
	if err != nil {
		return nil, err
	}

	r.store(ctx, stored)
	return stored, nil
}

func (r *CachedGitHubUserRepository) store(ctx context.Context, user *model.GitHubUser) {
	key := githubUserCacheKey(user.Username)
	err := r.cache.Set(ctx, key, user, r.ttl)
	if err != nil {
		slog.Warn("cache write failed", "error", err, "key", key)
	}
}
