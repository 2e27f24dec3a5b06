package model

// WorkflowState is the named stage of an issue's lifecycle (e.g. Todo, In Progress).
type WorkflowState struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Issue is a single Linear issue as returned by the team issues query.
// Issues are transient: they live for one run and are discarded after
// classification.
type Issue struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	State *WorkflowState `json:"state"`
}

// StatusName returns the workflow state name, or "" if the issue has no state.
func (i Issue) StatusName() string {
	if i.State == nil {
		return ""
	}
	return i.State.Name
}

// PageInfo is the continuation information returned with every page.
// An empty EndCursor means "start from the beginning" when passed back.
type PageInfo struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// IssuePage is one page of a team's issues.
type IssuePage struct {
	Issues   []Issue  `json:"nodes"`
	PageInfo PageInfo `json:"pageInfo"`
}
