package region

import (
	"context"
	"fmt"

	"github.com/unkn0wn-root/asidecache"
)

type Service struct {
	lookup asidecache.Lookup[Region]
	source Source
}

func NewService(lookup asidecache.Lookup[Region], source Source) (*Service, error) {
	if lookup == nil {
		return nil, fmt.Errorf("region: lookup is required")
	}
	if source == nil {
		return nil, fmt.Errorf("region: source is required")
	}
	return &Service{lookup: lookup, source: source}, nil
}

// Children returns the direct children of parentID, cache first.
// An empty result is ErrNotFound; a source outage matches
// asidecache.ErrSourceUnavailable so callers can tell the two apart.
func (s *Service) Children(ctx context.Context, parentID int64) ([]Region, error) {
	if parentID < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidParent, parentID)
	}
	out, err := s.lookup.Fetch(ctx, Key(parentID), func(ctx context.Context) ([]Region, error) {
		return s.source.ChildrenOf(ctx, parentID)
	})
	if err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: children of %d", ErrNotFound, parentID)
	}
	return out, nil
}

func (s *Service) Close(ctx context.Context) error {
	return s.lookup.Close(ctx)
}
