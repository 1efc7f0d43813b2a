package store

// LoadStatus is the catalog load lifecycle. A single tagged status instead
// of loading/error booleans, so impossible combinations cannot be
// represented.
type LoadStatus string

const (
	StatusIdle      LoadStatus = "idle"
	StatusLoading   LoadStatus = "loading"
	StatusSucceeded LoadStatus = "succeeded"
	StatusFailed    LoadStatus = "failed"
)
