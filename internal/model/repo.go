package model

import "time"

// Repo is the display tuple for one repository of a fetched user.
// Repos are never persisted.
type Repo struct {
	Name      string
	Language  *string
	Stars     int
	Forks     int
	UpdatedAt time.Time
}
