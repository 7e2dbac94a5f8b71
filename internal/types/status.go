package types

// Status is a type for the lifecycle status of a stored row.
// It tracks whether a row should be included in queries, independent of
// any domain-level state the row carries.
type Status string

const (
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
	StatusDeleted   Status = "deleted"
)
