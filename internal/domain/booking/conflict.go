package booking

import (
	"context"
	"time"
)

// Overlaps reports whether two half-open windows share any instant.
// Touching windows (a.End == b.Start) do not overlap.
func Overlaps(a, b Window) bool {
	return a.Start.Before(b.End) && a.End.After(b.Start)
}

type OverlapFinder interface {
	FindOverlapping(ctx context.Context, resourceID int64, start, end time.Time, status Status, excludeID int64) ([]Booking, error)
}

// HasConflict reports whether an accepted booking other than excludeID overlaps w
// on the resource. excludeID is 0 for new bookings.
func HasConflict(ctx context.Context, store OverlapFinder, resourceID int64, w Window, excludeID int64) (bool, error) {
	found, err := store.FindOverlapping(ctx, resourceID, w.Start, w.End, StatusAccepted, excludeID)
	if err != nil {
		return false, err
	}
	for i := range found {
		if found[i].ID != excludeID && Overlaps(w, found[i].Window()) {
			return true, nil
		}
	}
	return false, nil
}
