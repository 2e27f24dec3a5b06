package service

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/spiffcs/linear-stats/internal/apperr"
	"github.com/spiffcs/linear-stats/internal/constants"
	"github.com/spiffcs/linear-stats/internal/log"
	"github.com/spiffcs/linear-stats/internal/model"
	"github.com/spiffcs/linear-stats/internal/stats"
)

// Stage is a step of a run, reported through ProgressFunc.
type Stage int

const (
	StageIdentity Stage = iota // Resolving viewer and organization
	StageTeam                  // Resolving the team
	StageIssues                // Paginating issues
	StageClassify              // Counting issues into buckets
)

// Progress describes how far a run has got.
type Progress struct {
	Stage  Stage
	Done   bool   // the stage finished
	Label  string // viewer or team name once resolved
	Page   int    // pages fetched so far
	Issues int    // issues fetched so far
}

// ProgressFunc is called as a run advances. It must not block.
type ProgressFunc func(Progress)

// Identity is who the credential belongs to.
type Identity struct {
	ViewerName       string
	OrganizationName string
	OrganizationID   string
}

// RunOptions selects what a run aggregates.
type RunOptions struct {
	TeamID   string
	Schedule string
}

// Result is everything a successful run produced.
type Result struct {
	Identity Identity
	Team     model.Team
	Summary  model.RunSummary
}

// Aggregator fetches all issues of a team and tallies them by status.
// Page requests are strictly sequential.
type Aggregator struct {
	src        Source
	onProgress ProgressFunc
	now        func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(a *Aggregator) {
		a.onProgress = fn
	}
}

// WithClock overrides the time source used for summary timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) {
		a.now = now
	}
}

// New creates an Aggregator reading from src.
func New(src Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		src: src,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Aggregator) report(p Progress) {
	if a.onProgress != nil {
		a.onProgress(p)
	}
}

// ResolveIdentity looks up the viewer and organization of the credential.
func (a *Aggregator) ResolveIdentity(ctx context.Context) (Identity, error) {
	a.report(Progress{Stage: StageIdentity})

	viewer, err := a.src.Viewer(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to fetch viewer: %w", err)
	}

	org, err := a.src.Organization(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("failed to fetch organization: %w", err)
	}

	identity := Identity{
		ViewerName:       viewer.Label(),
		OrganizationName: org.Name,
		OrganizationID:   org.ID,
	}
	log.Info("authenticated", "viewer", identity.ViewerName, "organization", org.Name, "organization_id", org.ID)
	a.report(Progress{Stage: StageIdentity, Done: true, Label: identity.ViewerName})

	return identity, nil
}

// ResolveTeam looks up the team whose issues are aggregated.
func (a *Aggregator) ResolveTeam(ctx context.Context, teamID string) (model.Team, error) {
	if err := validateTeamID(teamID); err != nil {
		return model.Team{}, err
	}

	a.report(Progress{Stage: StageTeam})

	team, err := a.src.Team(ctx, teamID)
	if err != nil {
		return model.Team{}, fmt.Errorf("failed to fetch team %s: %w", teamID, err)
	}

	log.Info("analyzing team", "team", team.Name, "team_id", team.ID)
	a.report(Progress{Stage: StageTeam, Done: true, Label: team.Name})

	return team, nil
}

// Pages yields a team's issue pages in order. The first request carries no
// cursor; each following request carries the previous page's end cursor.
// Iteration stops after the first page that reports no next page, or after
// the first error, which is yielded.
func (a *Aggregator) Pages(ctx context.Context, teamID string) iter.Seq2[model.IssuePage, error] {
	return func(yield func(model.IssuePage, error) bool) {
		cursor := ""
		for page := 1; ; page++ {
			log.Debug("fetching issues page", "page", page, "after", cursor)

			p, err := a.src.IssuePage(ctx, teamID, constants.IssuePageSize, cursor)
			if err != nil {
				yield(model.IssuePage{}, fmt.Errorf("failed to fetch issues page %d: %w", page, err))
				return
			}
			if !yield(p, nil) {
				return
			}

			if !p.PageInfo.HasNextPage {
				return
			}
			if p.PageInfo.EndCursor == "" {
				yield(model.IssuePage{}, apperr.Transport(
					fmt.Sprintf("issues page %d reported more pages without an end cursor", page), nil))
				return
			}
			cursor = p.PageInfo.EndCursor
		}
	}
}

// FetchAllIssues paginates through every issue of a team and returns them
// in API order.
func (a *Aggregator) FetchAllIssues(ctx context.Context, teamID string) ([]model.Issue, error) {
	var issues []model.Issue
	err := a.eachPage(ctx, teamID, func(page model.IssuePage) {
		issues = append(issues, page.Issues...)
	})
	if err != nil {
		return nil, err
	}
	return issues, nil
}

// eachPage walks every issue page of a team, calling fn per page and
// reporting StageIssues progress.
func (a *Aggregator) eachPage(ctx context.Context, teamID string, fn func(model.IssuePage)) error {
	a.report(Progress{Stage: StageIssues})

	var pages, issues int
	for page, err := range a.Pages(ctx, teamID) {
		if err != nil {
			log.ProgressDone()
			return err
		}
		pages++
		issues += len(page.Issues)
		fn(page)

		log.Progress("Fetching issues: page %d (%d issues)", pages, issues)
		a.report(Progress{Stage: StageIssues, Page: pages, Issues: issues})
	}
	log.ProgressDone()

	log.Info("fetched issues", "pages", pages, "issues", issues)
	a.report(Progress{Stage: StageIssues, Done: true, Page: pages, Issues: issues})
	return nil
}

// BuildSummary assembles the run record. It performs no I/O.
func BuildSummary(tally model.StatusTally, total int, team model.Team, identity Identity, timestamp time.Time, schedule string) model.RunSummary {
	return model.RunSummary{
		Metadata: model.Metadata{
			TeamName:         team.Name,
			TeamID:           team.ID,
			OrganizationName: identity.OrganizationName,
			OrganizationID:   identity.OrganizationID,
			Timestamp:        timestamp.UTC(),
			TotalIssues:      total,
			Schedule:         schedule,
		},
		Statistics: tally,
	}
}

// Run authenticates, resolves the team, then pages through every issue and
// tallies each page as it arrives. Any failure aborts the run; nothing
// partial is returned.
func (a *Aggregator) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	if err := validateTeamID(opts.TeamID); err != nil {
		return nil, err
	}

	identity, err := a.ResolveIdentity(ctx)
	if err != nil {
		return nil, err
	}

	team, err := a.ResolveTeam(ctx, opts.TeamID)
	if err != nil {
		return nil, err
	}

	// Each page is tallied as it arrives; only the counts are kept.
	var (
		tally model.StatusTally
		total int
		other = make(map[string]int)
	)
	err = a.eachPage(ctx, opts.TeamID, func(page model.IssuePage) {
		tally.Merge(stats.Classify(page.Issues))
		total += len(page.Issues)
		if log.IsDebug() {
			for status, n := range stats.OtherStatuses(page.Issues) {
				other[status] += n
			}
		}
	})
	if err != nil {
		return nil, err
	}

	a.report(Progress{Stage: StageClassify})
	log.Debug("classified issues", "total", total, "other", tally.Other)
	for status, n := range other {
		log.Debug("counted as Other", "status", status, "issues", n)
	}
	a.report(Progress{Stage: StageClassify, Done: true, Issues: total})

	return &Result{
		Identity: identity,
		Team:     team,
		Summary:  BuildSummary(tally, total, team, identity, a.now(), opts.Schedule),
	}, nil
}

func validateTeamID(teamID string) error {
	if strings.TrimSpace(teamID) == "" {
		return apperr.Configuration("team id is required").
			WithSuggestion("Set LINEAR_TEAM_ID or pass --team")
	}
	return nil
}
