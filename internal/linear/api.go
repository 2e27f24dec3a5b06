package linear

import (
	"context"
	"fmt"

	"github.com/spiffcs/linear-stats/internal/apperr"
	"github.com/spiffcs/linear-stats/internal/model"
)

// Viewer returns the user the API key belongs to.
func (c *Client) Viewer(ctx context.Context) (model.Viewer, error) {
	var data struct {
		Viewer *model.Viewer `json:"viewer"`
	}
	if err := c.execute(ctx, "Viewer", viewerQuery, nil, &data); err != nil {
		return model.Viewer{}, err
	}
	if data.Viewer == nil {
		return model.Viewer{}, apperr.Authentication("no viewer for this API key", nil)
	}
	return *data.Viewer, nil
}

// Organization returns the workspace the API key is scoped to.
func (c *Client) Organization(ctx context.Context) (model.Organization, error) {
	var data struct {
		Organization *model.Organization `json:"organization"`
	}
	if err := c.execute(ctx, "Organization", organizationQuery, nil, &data); err != nil {
		return model.Organization{}, err
	}
	if data.Organization == nil {
		return model.Organization{}, apperr.Transport("no organization in response", nil)
	}
	return *data.Organization, nil
}

// Team looks up a team by id or key.
func (c *Client) Team(ctx context.Context, teamID string) (model.Team, error) {
	var data struct {
		Team *model.Team `json:"team"`
	}
	vars := map[string]any{"teamId": teamID}
	if err := c.execute(ctx, "Team", teamQuery, vars, &data); err != nil {
		return model.Team{}, err
	}
	if data.Team == nil {
		return model.Team{}, apperr.NotFound(fmt.Sprintf("team %q not found", teamID), nil)
	}
	return *data.Team, nil
}

// IssuePage fetches one page of a team's issues. An empty after cursor
// requests the first page.
func (c *Client) IssuePage(ctx context.Context, teamID string, first int, after string) (model.IssuePage, error) {
	vars := map[string]any{
		"teamId": teamID,
		"first":  first,
		"after":  nil,
	}
	if after != "" {
		vars["after"] = after
	}

	var data struct {
		Team *struct {
			Issues *model.IssuePage `json:"issues"`
		} `json:"team"`
	}
	if err := c.execute(ctx, "GetTeamIssues", teamIssuesQuery, vars, &data); err != nil {
		return model.IssuePage{}, err
	}
	if data.Team == nil {
		return model.IssuePage{}, apperr.NotFound(fmt.Sprintf("team %q not found", teamID), nil)
	}
	if data.Team.Issues == nil {
		return model.IssuePage{}, apperr.Transport("no issues connection in GetTeamIssues response", nil)
	}
	return *data.Team.Issues, nil
}
