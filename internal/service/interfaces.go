// Package service aggregates a team's Linear issues into a run summary.
package service

import (
	"context"

	"github.com/spiffcs/linear-stats/internal/linear"
	"github.com/spiffcs/linear-stats/internal/model"
)

// Source is the remote API the aggregator reads from.
type Source interface {
	Viewer(ctx context.Context) (model.Viewer, error)
	Organization(ctx context.Context) (model.Organization, error)
	Team(ctx context.Context, teamID string) (model.Team, error)
	// IssuePage returns one page of a team's issues. An empty after cursor
	// requests the first page.
	IssuePage(ctx context.Context, teamID string, first int, after string) (model.IssuePage, error)
}

// Ensure the Linear client implements Source.
var _ Source = (*linear.Client)(nil)
