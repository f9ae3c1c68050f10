package services

import (
	"context"

	"go.uber.org/zap"

	"github.com/aakfoundation/sevak-registry/pkg/core/model"
	"github.com/aakfoundation/sevak-registry/pkg/core/view"
)

// ListProvider is the read side of the volunteer cache.
type ListProvider interface {
	List() []model.Volunteer
	Degraded() bool
}

// ListResult is one derived page plus a degraded flag when the cache is
// serving fallback data.
type ListResult struct {
	view.Result
	Degraded bool
}

// ListVolunteers derives the requested page from the cached authoritative
// list. It never touches the network; freshness is the cache's job.
func ListVolunteers(ctx context.Context, provider ListProvider, logger *zap.Logger, q view.Query) *ListResult {
	records := provider.List()
	result := view.Derive(records, q)

	logger.Debug("Derived volunteer list",
		zap.String("search", q.Search),
		zap.String("role", string(q.Role)),
		zap.String("sort", string(q.Sort)),
		zap.Int("page", result.Page),
		zap.Int("total_pages", result.TotalPages),
		zap.Int("matched", result.TotalCount),
		zap.Int("authoritative", len(records)))

	return &ListResult{Result: result, Degraded: provider.Degraded()}
}
