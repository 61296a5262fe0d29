package homework

import "context"

// Source fetches raw homework statuses updated since the given unix timestamp.
// The returned value is the decoded body and must be passed to ValidateResponse.
type Source interface {
	FetchStatuses(ctx context.Context, fromDate int64) (any, error)
}
