package model

// Viewer is the user the API credential belongs to.
type Viewer struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Label returns the most human-friendly name available for the viewer.
func (v Viewer) Label() string {
	switch {
	case v.DisplayName != "":
		return v.DisplayName
	case v.Name != "":
		return v.Name
	default:
		return v.Email
	}
}

// Organization is the Linear workspace the credential is scoped to.
type Organization struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	URLKey string `json:"urlKey"`
}

// Team is an organizational grouping of issues.
type Team struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}
