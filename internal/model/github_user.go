package model

import "time"

// GitHubUser is the stored snapshot of a GitHub profile, keyed by Username.
type GitHubUser struct {
	ID          string    `db:"id"`
	Username    string    `db:"username"`
	Name        *string   `db:"name"` // Nullable: many accounts never set a display name
	PublicRepos int       `db:"public_repos"`
	Followers   int       `db:"followers"`
	Following   int       `db:"following"`
	CreatedAt   time.Time `db:"created_at"` // Account creation on GitHub
	FetchedAt   time.Time `db:"fetched_at"` // First time we stored this user, never updated
}

func (u *GitHubUser) DisplayName() string {
	if u.Name != nil && *u.Name != "" {
		return *u.Name
	}
	return u.Username
}
