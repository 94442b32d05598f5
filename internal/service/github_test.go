package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templui/devlens/internal/github"
	"github.com/templui/devlens/internal/model"
	"github.com/templui/devlens/internal/repository"
)

type fakeProvider struct {
	user     *github.User
	userErr  error
	repos    []github.Repo
	reposErr error

	reposURL string
}

func (p *fakeProvider) User(_ context.Context, _ string) (*github.User, error) {
	return p.user, p.userErr
}

func (p *fakeProvider) Repos(_ context.Context, reposURL string) ([]github.Repo, error) {
	p.reposURL = reposURL
	return p.repos, p.reposErr
}

type fakeUserRepo struct {
	users   map[string]*model.GitHubUser
	upserts int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.GitHubUser{}}
}

func (r *fakeUserRepo) ByUsername(_ context.Context, username string) (*model.GitHubUser, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, repository.ErrGitHubUserNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) Upsert(_ context.Context, user *model.GitHubUser) (*model.GitHubUser, error) {
	r.upserts++
	stored := *user
	stored.ID = "id-" + user.Username
	r.users[user.Username] = &stored
	return &stored, nil
}

type fakeArchive struct {
	paths []string
	err   error
}

func (a *fakeArchive) Save(_ context.Context, path, _ string, body io.Reader) error {
	_, _ = io.ReadAll(body)
	a.paths = append(a.paths, path)
	return a.err
}

func octocat() *github.User {
	name := "The Octocat"
	return &github.User{
		Login:       "octocat",
		Name:        &name,
		PublicRepos: 8,
		Followers:   100,
		Following:   9,
		CreatedAt:   time.Date(2011, 1, 25, 18, 44, 36, 0, time.UTC),
		ReposURL:    "https://api.github.com/users/octocat/repos",
		Raw:         []byte(`{"login":"octocat"}`),
	}
}

func TestGitHubFetch(t *testing.T) {
	lang := "Go"
	provider := &fakeProvider{
		user: octocat(),
		repos: []github.Repo{
			{Name: "hello-world", Language: &lang, StargazersCount: 5, ForksCount: 2},
			{Name: "spoon-knife"},
		},
	}
	repo := newFakeUserRepo()
	archive := &fakeArchive{}
	s := NewGitHubService(provider, repo, archive)
	s.now = func() time.Time { return time.Unix(1700000000, 0) }

	snap, err := s.Fetch(context.Background(), "octocat")
	require.NoError(t, err)
	require.False(t, snap.FromDB())
	require.Equal(t, "octocat", snap.Stored.Username)
	require.Equal(t, "The Octocat", *snap.Stored.Name)
	require.Equal(t, 8, snap.Stored.PublicRepos)
	require.Equal(t, 100, snap.Stored.Followers)
	require.Equal(t, 9, snap.Stored.Following)
	require.Len(t, snap.Repos, 2)
	require.Equal(t, model.Repo{Name: "hello-world", Language: &lang, Stars: 5, Forks: 2}, snap.Repos[0])
	require.Nil(t, snap.Repos[1].Language)
	require.Equal(t, "https://api.github.com/users/octocat/repos", provider.reposURL)
	require.Equal(t, []string{"github/users/octocat/1700000000.json"}, archive.paths)
}

func TestGitHubFetchUserNotFound(t *testing.T) {
	provider := &fakeProvider{userErr: github.ErrUserNotFound}
	repo := newFakeUserRepo()
	s := NewGitHubService(provider, repo, nil)

	_, err := s.Fetch(context.Background(), "ghost")
	require.ErrorIs(t, err, github.ErrUserNotFound)
	require.Zero(t, repo.upserts)
}

func TestGitHubFetchReposFailureKeepsUpsert(t *testing.T) {
	statusErr := &github.StatusError{StatusCode: 502}
	provider := &fakeProvider{user: octocat(), reposErr: statusErr}
	repo := newFakeUserRepo()
	s := NewGitHubService(provider, repo, nil)

	_, err := s.Fetch(context.Background(), "octocat")
	require.ErrorIs(t, err, ErrReposUnavailable)

	var got *github.StatusError
	require.True(t, errors.As(err, &got))
	require.Equal(t, 502, got.StatusCode)

	_, err = repo.ByUsername(context.Background(), "octocat")
	require.NoError(t, err)
}

func TestGitHubFetchArchiveFailureIgnored(t *testing.T) {
	provider := &fakeProvider{user: octocat()}
	archive := &fakeArchive{err: errors.New("bucket gone")}
	s := NewGitHubService(provider, newFakeUserRepo(), archive)

	snap, err := s.Fetch(context.Background(), "octocat")
	require.NoError(t, err)
	require.Empty(t, snap.Repos)
	require.Len(t, archive.paths, 1)
}

func TestGitHubStored(t *testing.T) {
	repo := newFakeUserRepo()
	s := NewGitHubService(&fakeProvider{}, repo, nil)

	_, err := s.Stored(context.Background(), "octocat")
	require.ErrorIs(t, err, repository.ErrGitHubUserNotFound)

	_, err = repo.Upsert(context.Background(), &model.GitHubUser{Username: "octocat"})
	require.NoError(t, err)

	snap, err := s.Stored(context.Background(), "octocat")
	require.NoError(t, err)
	require.True(t, snap.FromDB())
	require.Empty(t, snap.Repos)
	require.Equal(t, "id-octocat", snap.Stored.ID)
}
