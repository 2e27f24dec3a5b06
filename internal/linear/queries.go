package linear

import (
	"embed"
	"fmt"
)

//go:embed queries/*.graphql
var queryFiles embed.FS

// Query documents loaded at init time
var (
	viewerQuery       string
	organizationQuery string
	teamQuery         string
	teamIssuesQuery   string
)

func init() {
	viewerQuery = mustLoadQuery("viewer.graphql")
	organizationQuery = mustLoadQuery("organization.graphql")
	teamQuery = mustLoadQuery("team.graphql")
	teamIssuesQuery = mustLoadQuery("team_issues.graphql")
}

func mustLoadQuery(name string) string {
	data, err := queryFiles.ReadFile("queries/" + name)
	if err != nil {
		panic(fmt.Sprintf("failed to load %s: %v", name, err))
	}
	return string(data)
}
