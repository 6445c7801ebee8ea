package domain

// WorkspaceSpec describes where to scaffold a new aerogrid project.
type WorkspaceSpec struct {
	Root string
}

// AirfoilRef points at an upper/lower coordinate file pair.
type AirfoilRef struct {
	Name  string `json:"name"`
	Upper string `json:"upper"`
	Lower string `json:"lower"`
}
