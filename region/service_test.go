package region

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/unkn0wn-root/asidecache"
	"github.com/unkn0wn-root/asidecache/provider/ttlcache"
)

var gangnamSeocho = []Region{
	{ID: 1, ParentID: 42, Code: "11680", Name: "Gangnam", FullName: "서울특별시 강남구", Depth: 2},
	{ID: 2, ParentID: 42, Code: "11650", Name: "Seocho", FullName: "서울특별시 서초구", Depth: 2},
}

type fakeSource struct {
	byParent map[int64][]Region
	err      error
	calls    int
}

func (s *fakeSource) ChildrenOf(_ context.Context, parentID int64) ([]Region, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.byParent[parentID], nil
}

func newTestService(t *testing.T, src Source) *Service {
	t.Helper()
	lk, err := asidecache.New[Region](asidecache.Options[Region]{Provider: ttlcache.New(ttlcache.Config{})})
	if err != nil {
		t.Fatalf("asidecache.New: %v", err)
	}
	svc, err := NewService(lk, src)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	t.Cleanup(func() { _ = svc.Close(context.Background()) })
	return svc
}

func TestKey(t *testing.T) {
	if got := Key(42); got != "region:42" {
		t.Fatalf("Key(42)=%q", got)
	}
}

func TestChildrenCachesSourceResult(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{byParent: map[int64][]Region{42: gangnamSeocho}}
	svc := newTestService(t, src)

	for i := 0; i < 3; i++ {
		got, err := svc.Children(ctx, 42)
		if err != nil {
			t.Fatalf("Children #%d: %v", i, err)
		}
		if !reflect.DeepEqual(got, gangnamSeocho) {
			t.Fatalf("Children #%d: got %v", i, got)
		}
	}
	if src.calls != 1 {
		t.Fatalf("source calls=%d want 1", src.calls)
	}

	// cached value survives a source outage
	src.err = errors.New("connection refused")
	if _, err := svc.Children(ctx, 42); err != nil {
		t.Fatalf("cached Children during outage: %v", err)
	}
}

func TestChildrenEmptyIsNotFound(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{byParent: map[int64][]Region{}}
	svc := newTestService(t, src)

	for i := 0; i < 2; i++ {
		if _, err := svc.Children(ctx, 7); !errors.Is(err, ErrNotFound) {
			t.Fatalf("err=%v want ErrNotFound", err)
		}
	}
	if src.calls != 2 {
		t.Fatalf("not-found must not be cached, source calls=%d", src.calls)
	}
}

func TestChildrenSourceOutage(t *testing.T) {
	ctx := context.Background()
	src := &fakeSource{err: errors.New("connection refused")}
	svc := newTestService(t, src)

	_, err := svc.Children(ctx, 42)
	if !errors.Is(err, asidecache.ErrSourceUnavailable) {
		t.Fatalf("err=%v want ErrSourceUnavailable", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("outage must not read as not found")
	}
}

func TestChildrenInvalidParent(t *testing.T) {
	src := &fakeSource{}
	svc := newTestService(t, src)
	if _, err := svc.Children(context.Background(), -1); !errors.Is(err, ErrInvalidParent) {
		t.Fatalf("err=%v want ErrInvalidParent", err)
	}
	if src.calls != 0 {
		t.Fatalf("source called for invalid parent")
	}
}

func TestNewServiceRequiresDeps(t *testing.T) {
	if _, err := NewService(nil, &fakeSource{}); err == nil {
		t.Fatalf("expected error for nil lookup")
	}
	lk, _ := asidecache.New[Region](asidecache.Options[Region]{Provider: ttlcache.New(ttlcache.Config{})})
	defer lk.Close(context.Background())
	if _, err := NewService(lk, nil); err == nil {
		t.Fatalf("expected error for nil source")
	}
}

func TestSourceFunc(t *testing.T) {
	var src Source = SourceFunc(func(_ context.Context, parentID int64) ([]Region, error) {
		return []Region{{ID: 5, ParentID: parentID, Name: "x"}}, nil
	})
	got, err := src.ChildrenOf(context.Background(), 3)
	if err != nil || len(got) != 1 || got[0].ParentID != 3 {
		t.Fatalf("got %v err %v", got, err)
	}
}
