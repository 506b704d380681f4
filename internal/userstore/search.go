package userstore

import (
	"context"
	"fmt"

	"github.com/dusk-indust/useradmin/internal/userapi"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SearchRemote fetches every page of the remote collection and returns the
// users matching query, in page order. Pages after the first are fetched
// in parallel, bounded by the store's search concurrency; the first
// failure cancels the remaining requests.
//
// SetSearchQuery only filters the loaded page. SearchRemote covers the
// whole collection and never changes the store's state.
func (s *Store) SearchRemote(ctx context.Context, query string) ([]userapi.User, error) {
	first, err := s.client.ListUsers(ctx, 1)
	if err != nil {
		return nil, &FetchError{Page: 1, Err: err}
	}

	pages := make([][]userapi.User, max(first.TotalPages, 1))
	pages[0] = first.Data

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.searchConcurrency)

	for page := 2; page <= first.TotalPages; page++ {
		g.Go(func() error {
			resp, err := s.client.ListUsers(gctx, page)
			if err != nil {
				return &FetchError{Page: page, Err: err}
			}
			pages[page-1] = resp.Data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Warn("remote search failed", zap.String("query", query), zap.Error(err))
		return nil, fmt.Errorf("search users: %w", err)
	}

	var matched []userapi.User
	for _, data := range pages {
		matched = append(matched, Filter(data, query)...)
	}
	if matched == nil {
		matched = []userapi.User{}
	}
	s.logger.Debug("remote search complete",
		zap.String("query", query),
		zap.Int("pages", len(pages)),
		zap.Int("matches", len(matched)),
	)
	return matched, nil
}
