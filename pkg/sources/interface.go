package sources

import "context"

// Source provides the remote menu.
type Source interface {
	FetchMenu(ctx context.Context) ([]MenuItem, error)
}
