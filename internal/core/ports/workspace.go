package ports

// Workspace manages the scratch directories of a build.
//
//go:generate go run go.uber.org/mock/mockgen -source=workspace.go -destination=mocks/mock_workspace.go -package=mocks
type Workspace interface {
	// EnsureFresh removes root/name if it exists and recreates it empty.
	// It returns the absolute path of the directory.
	EnsureFresh(root, name string) (string, error)
}
