package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/templui/devlens/internal/github"
	"github.com/templui/devlens/internal/model"
	"github.com/templui/devlens/internal/repository"
	"github.com/templui/devlens/internal/storage"
)

var ErrReposUnavailable = errors.New("repositories unavailable")

// GitHubProvider is the upstream profile source
type GitHubProvider interface {
	User(ctx context.Context, username string) (*github.User, error)
	Repos(ctx context.Context, reposURL string) ([]github.Repo, error)
}

// Snapshot is everything the detail page shows for one user.
// Profile and Repos are nil when the page is served from the database.
type Snapshot struct {
	Profile *github.User
	Repos   []model.Repo
	Stored  *model.GitHubUser
}

func (s *Snapshot) FromDB() bool {
	return s.Profile == nil
}

type GitHubService struct {
	provider GitHubProvider
	userRepo repository.GitHubUserRepository
	archive  storage.Storage // Optional
	now      func() time.Time
}

func NewGitHubService(provider GitHubProvider, userRepo repository.GitHubUserRepository, archive storage.Storage) *GitHubService {
	return &GitHubService{
		provider: provider,
		userRepo: userRepo,
		archive:  archive,
		now:      time.Now,
	}
}

// Fetch pulls the profile from GitHub, upserts it, then lists the repos.
// When the repo listing fails the upsert stays committed and the returned
// error wraps ErrReposUnavailable.
func (s *GitHubService) Fetch(ctx context.Context, username string) (*Snapshot, error) {
	profile, err := s.provider.User(ctx, username)
	if err != nil {
		return nil, err
	}

	s.archiveProfile(ctx, profile)

	stored, err := s.userRepo.Upsert(ctx, toGitHubUser(profile))
	if err != nil {
		return nil, fmt.Errorf("failed to store github user: %w", err)
	}

	repos, err := s.provider.Repos(ctx, profile.ReposURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReposUnavailable, err)
	}

	slog.Info("github user fetched", "username", stored.Username, "repos", len(repos))

	return &Snapshot{
		Profile: profile,
		Repos:   toRepos(repos),
		Stored:  stored,
	}, nil
}

// Stored returns the snapshot kept in the database for an exact username
func (s *GitHubService) Stored(ctx context.Context, username string) (*Snapshot, error) {
	stored, err := s.userRepo.ByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Stored: stored}, nil
}

func (s *GitHubService) archiveProfile(ctx context.Context, profile *github.User) {
	if s.archive == nil || len(profile.Raw) == 0 {
		return
	}

	path := fmt.Sprintf("github/users/%s/%d.json", profile.Login, s.now().Unix())
	err := s.archive.Save(ctx, path, "application/json", bytes.NewReader(profile.Raw))
	if err != nil {
		slog.Warn("failed to archive github payload", "error", err, "username", profile.Login)
	}
}

func toGitHubUser(p *github.User) *model.GitHubUser {
	return &model.GitHubUser{
		Username:    p.Login,
		Name:        p.Name,
		PublicRepos: p.PublicRepos,
		Followers:   p.Followers,
		Following:   p.Following,
		CreatedAt:   p.CreatedAt,
	}
}

func toRepos(repos []github.Repo) []model.Repo {
	out := make([]model.Repo, 0, len(repos))
	for _, r := range repos {
		out = append(out, model.Repo{
			Name:      r.Name,
			Language:  r.Language,
			Stars:     r.StargazersCount,
			Forks:     r.ForksCount,
			UpdatedAt: r.UpdatedAt,
		})
	}
	return out
}
