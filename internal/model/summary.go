package model

import "time"

// Metadata describes the run that produced a summary.
type Metadata struct {
	TeamName         string    `json:"teamName"`
	TeamID           string    `json:"teamId"`
	OrganizationName string    `json:"organizationName"`
	OrganizationID   string    `json:"organizationId"`
	Timestamp        time.Time `json:"timestamp"`
	TotalIssues      int       `json:"totalIssues"`
	Schedule         string    `json:"schedule"`
}

// RunSummary is the single record a run emits. It is created once and never
// mutated afterwards.
type RunSummary struct {
	Metadata   Metadata    `json:"metadata"`
	Statistics StatusTally `json:"statistics"`
}
