// Package constants provides a centralized location for the configuration
// defaults and fixed values used throughout linear-stats.
package constants

import "time"

// Linear API constants
const (
	// DefaultEndpoint is Linear's public GraphQL endpoint.
	DefaultEndpoint = "https://api.linear.app/graphql"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	// IssuePageSize is the number of issues requested per page.
	IssuePageSize = 100

	// RateLimitLowWatermark is the remaining-request count below which a
	// warning is logged.
	RateLimitLowWatermark = 100

	// OAuthTokenPrefix marks OAuth access tokens, which are sent as Bearer
	// tokens. Personal API keys are sent verbatim.
	OAuthTokenPrefix = "lin_oauth_"
)

// Run input defaults
const (
	// DefaultOutputPath is where the persisted summary is written.
	DefaultOutputPath = "linear-statistics/issue-statistics.json"

	// DefaultSchedule is copied into summary metadata when none is configured.
	DefaultSchedule = "0 0 * * *"

	// DefaultFormat is the console format for the summary.
	DefaultFormat = "table"
)

// History constants
const (
	// MaxHistoryRecords is the number of past runs retained in the history file.
	MaxHistoryRecords = 1000

	// DefaultHistoryLimit is how many runs `history` shows by default.
	DefaultHistoryLimit = 10
)

// File permission constants
const (
	// DirPermissions for created output and config directories.
	DirPermissions = 0o755

	// OutputFilePermissions for the summary file, which CI steps read.
	OutputFilePermissions = 0o644

	// ConfigFilePermissions for config files.
	ConfigFilePermissions = 0o600
)
