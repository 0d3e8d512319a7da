// Package catalog provides the Redmine resource lists that completion
// candidates are computed from.
package catalog

import "context"

// Project is a Redmine project.
type Project struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Issue is an open Redmine issue.
type Issue struct {
	ID        int    `json:"id"`
	Subject   string `json:"subject"`
	ProjectID int    `json:"project_id"`
}

// Activity is a time-entry activity enumeration value.
type Activity struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Source supplies catalog data. Implementations must be cheap enough to
// consult on every completion keystroke, so anything remote sits behind
// Cached.
type Source interface {
	// Projects returns all projects visible to the configured user.
	Projects(ctx context.Context) ([]Project, error)
	// Issues returns open issues, scoped to a project when projectID > 0.
	Issues(ctx context.Context, projectID int) ([]Issue, error)
	// Activities returns time-entry activities, project-specific when
	// projectID > 0, the global enumeration otherwise.
	Activities(ctx context.Context, projectID int) ([]Activity, error)
}
