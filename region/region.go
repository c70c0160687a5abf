// Package region serves child regions of a parent through an asidecache lookup
// backed by an authoritative Source.
package region

import (
	"context"
	"errors"
	"strconv"
)

// KeyPrefix namespaces child-list entries in the shared store.
const KeyPrefix = "region:"

var (
	// ErrNotFound is returned when the parent has no children.
	ErrNotFound = errors.New("region: not found")
	// ErrInvalidParent is returned for a negative parent id.
	ErrInvalidParent = errors.New("region: invalid parent id")
)

// Region is a flattened region descriptor.
type Region struct {
	ID       int64  `json:"id" db:"id"`
	ParentID int64  `json:"parentId" db:"parent_id"`
	Code     string `json:"code,omitempty" db:"code"`
	Name     string `json:"name" db:"name"`
	FullName string `json:"fullName,omitempty" db:"full_name"`
	Depth    int    `json:"depth,omitempty" db:"depth"`
}

// Source is the system of record for regions.
type Source interface {
	ChildrenOf(ctx context.Context, parentID int64) ([]Region, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, parentID int64) ([]Region, error)

func (f SourceFunc) ChildrenOf(ctx context.Context, parentID int64) ([]Region, error) {
	return f(ctx, parentID)
}

// Key returns the cache key for the children of parentID.
func Key(parentID int64) string {
	return KeyPrefix + strconv.FormatInt(parentID, 10)
}
