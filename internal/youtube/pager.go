package youtube

import (
	"context"
)

// pageFetch fetches one page of a collection. It is given the continuation
// token from the previous page ("" for the first) and returns the page's
// items plus the token for the next page, or "" when the collection is
// drained.
type pageFetch[T any] func(ctx context.Context, pageToken string) ([]T, string, error)

// drainPages walks a paginated collection to exhaustion, following
// continuation tokens until a response carries none. An empty intermediate
// page does not terminate the walk. A max of zero means unbounded; a
// positive max truncates the result once reached. Any error mid-walk
// discards everything collected so far and is surfaced to the caller.
func drainPages[T any](ctx context.Context, fetch pageFetch[T], max int) ([]T, error) {
	var all []T
	token := ""
	for {
		items, next, err := fetch(ctx, token)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if max > 0 && len(all) >= max {
			return all[:max], nil
		}
		if next == "" {
			return all, nil
		}
		token = next
	}
}
