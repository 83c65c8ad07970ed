package ports

// RepoIndex reports whether a package repository is already configured on the host.
type RepoIndex interface {
	HasRepo(url string) (bool, error)
}

// NoRepoIndex treats every repository as unconfigured.
type NoRepoIndex struct{}

// HasRepo always returns false.
func (NoRepoIndex) HasRepo(_ string) (bool, error) {
	return false, nil
}

// Ensure NoRepoIndex implements RepoIndex.
var _ RepoIndex = NoRepoIndex{}
