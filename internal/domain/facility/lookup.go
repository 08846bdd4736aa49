package facility

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedLookup serves facility and resource metadata to the booking engine.
// Entries expire after the configured TTL and are flushed when hours change.
type CachedLookup struct {
	repo  Repository
	cache *gocache.Cache
}

func NewCachedLookup(repo Repository, ttl time.Duration) *CachedLookup {
	return &CachedLookup{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (l *CachedLookup) GetResource(ctx context.Context, resourceID int64) (*ResourceInfo, error) {
	key := resourceKey(resourceID)
	if v, ok := l.cache.Get(key); ok {
		return v.(*ResourceInfo), nil
	}

	res, err := l.repo.GetResource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	f, err := l.GetFacility(ctx, res.FacilityID)
	if err != nil {
		return nil, err
	}
	hours, err := f.Hours()
	if err != nil {
		return nil, fmt.Errorf("facility %d: %w", f.ID, err)
	}

	info := &ResourceInfo{
		ResourceID:   res.ID,
		Name:         res.Name,
		OwnerID:      res.OwnerID,
		FacilityID:   f.ID,
		FacilityName: f.Name,
		Hours:        hours,
	}
	l.cache.SetDefault(key, info)
	return info, nil
}

func (l *CachedLookup) GetFacility(ctx context.Context, id int64) (*Facility, error) {
	key := facilityKey(id)
	if v, ok := l.cache.Get(key); ok {
		f := *v.(*Facility)
		return &f, nil
	}

	f, err := l.repo.GetFacility(ctx, id)
	if err != nil {
		return nil, err
	}
	cp := *f
	l.cache.SetDefault(key, &cp)
	return f, nil
}

// ListResources is not cached; resources are added at any time.
func (l *CachedLookup) ListResources(ctx context.Context, facilityID int64) ([]Resource, error) {
	return l.repo.ListResources(ctx, facilityID)
}

// Invalidate drops the cached facility and every cached resource that belongs to it.
func (l *CachedLookup) Invalidate(facilityID int64) {
	l.cache.Delete(facilityKey(facilityID))
	for key, item := range l.cache.Items() {
		if info, ok := item.Object.(*ResourceInfo); ok && info.FacilityID == facilityID {
			l.cache.Delete(key)
		}
	}
}

func resourceKey(id int64) string { return fmt.Sprintf("resource:%d", id) }
func facilityKey(id int64) string { return fmt.Sprintf("facility:%d", id) }
