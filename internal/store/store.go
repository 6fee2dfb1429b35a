// Package store persists projects and their bill lines. The calculation
// core is stateless; this is the session state that accumulates lines
// across calculator invocations.
package store

import (
	"context"
	"time"

	"github.com/Karanja-eng/jengacost/internal/model"
)

// Project is a named container for one bill under preparation.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Store defines the persistence interface for bills.
type Store interface {
	// Projects
	CreateProject(ctx context.Context, name string) (*Project, error)
	GetProject(ctx context.Context, name string) (*Project, error)
	ListProjects(ctx context.Context) ([]Project, error)

	// Bill lines, kept in insertion order per project.
	AppendLine(ctx context.Context, projectID string, line model.Line) error
	GetLines(ctx context.Context, projectID string) ([]model.Line, error)
	ReplaceLines(ctx context.Context, projectID string, lines []model.Line) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
