package models

// RepoStats is the view model of the GitHub star counter island
type RepoStats struct {
	Stars   *int
	Loading bool
}
