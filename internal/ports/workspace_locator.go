package ports

// WorkspaceLocator finds an aerogrid workspace root starting from an arbitrary directory.
type WorkspaceLocator interface {
	FindRoot(startDir string) (string, error)
}
