package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/templui/devlens/internal/github"
	"github.com/templui/devlens/internal/repository"
	"github.com/templui/devlens/internal/service"
	"github.com/templui/devlens/internal/ui"
	"github.com/templui/devlens/internal/ui/pages"
	"github.com/templui/devlens/internal/validation"
)

const genericFetchError = "Something went wrong. Please try again."

type snapshotSource interface {
	Fetch(ctx context.Context, username string) (*service.Snapshot, error)
	Stored(ctx context.Context, username string) (*service.Snapshot, error)
}

type githubHandler struct {
	githubService snapshotSource
}

func NewGitHubHandler(githubService snapshotSource) *githubHandler {
	return &githubHandler{
		githubService: githubService,
	}
}

// FetchUser pulls a profile live from GitHub, stores it and renders it
func (h *githubHandler) FetchUser(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	err := validation.ValidateUsername(username)
	if err != nil {
		redirectWithFlash(w, r, capitalize(err.Error())+".")
		return
	}

	snap, err := h.githubService.Fetch(r.Context(), username)
	if err != nil {
		redirectWithFlash(w, r, fetchErrorMessage(username, err))
		return
	}

	ui.Render(w, r, http.StatusOK, pages.UserDetails(snap))
}

// FetchFromDB renders the stored snapshot without calling GitHub
func (h *githubHandler) FetchFromDB(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	username := strings.TrimSpace(r.PostFormValue("username"))
	if username == "" {
		redirectWithFlash(w, r, "Username is required.")
		return
	}

	snap, err := h.githubService.Stored(r.Context(), username)
	if errors.Is(err, repository.ErrGitHubUserNotFound) {
		redirectWithFlash(w, r, fmt.Sprintf(`User "%s" not found in database.`, username))
		return
	}
	if err != nil {
		slog.Error("failed to load stored github user", "error", err, "username", username)
		redirectWithFlash(w, r, genericFetchError)
		return
	}

	ui.Render(w, r, http.StatusOK, pages.UserDetails(snap))
}

func fetchErrorMessage(username string, err error) string {
	var statusErr *github.StatusError

	switch {
	case errors.Is(err, github.ErrUserNotFound):
		return fmt.Sprintf(`User "%s" not found on GitHub.`, username)
	case errors.Is(err, service.ErrReposUnavailable):
		slog.Warn("github repos unavailable", "error", err, "username", username)
		return fmt.Sprintf("Error fetching repositories: %d", upstreamStatus(err))
	case errors.As(err, &statusErr):
		slog.Warn("github user fetch failed", "error", err, "username", username)
		return fmt.Sprintf("Error fetching data: %d", statusErr.StatusCode)
	default:
		slog.Error("github fetch failed", "error", err, "username", username)
		return genericFetchError
	}
}

// upstreamStatus is the GitHub status code behind err, or 502 when the
// request never produced one
func upstreamStatus(err error) int {
	var statusErr *github.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode
	}
	return http.StatusBadGateway
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
