package notification

import (
	"context"
	"fmt"
	"time"

	"bookinghub/internal/domain/booking"

	"github.com/rs/zerolog/log"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Publisher pushes events to live subscribers. Implemented by Hub and RedisRelay.
type Publisher interface {
	Publish(ctx context.Context, recipientID int64, ev Event)
}

type Service struct {
	repo Repository
	pub  Publisher
}

func NewService(repo Repository, pub Publisher) *Service {
	return &Service{repo: repo, pub: pub}
}

// Create stores the notification and then pushes it to the recipient's live
// connections. Push is best effort; a stored notification is never rolled back.
func (s *Service) Create(ctx context.Context, n *Notification) error {
	if err := s.repo.Create(ctx, n); err != nil {
		return fmt.Errorf("store notification: %w", err)
	}
	s.pub.Publish(ctx, n.RecipientID, Event{Type: EventNotificationCreated, Notification: n})
	return nil
}

func (s *Service) List(ctx context.Context, recipientID int64, filter ReadFilter, page, pageSize int) (*Page, error) {
	if filter == "" {
		filter = FilterAll
	}
	if !filter.Valid() {
		return nil, ErrInvalidFilter
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	items, total, err := s.repo.List(ctx, recipientID, filter, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, recipientID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Notification{}
	}

	return &Page{
		Items:       items,
		Total:       total,
		UnreadCount: unread,
		Page:        page,
		PageSize:    pageSize,
	}, nil
}

func (s *Service) MarkRead(ctx context.Context, recipientID int64, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}
	return s.repo.MarkRead(ctx, recipientID, ids)
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	return s.repo.MarkAllRead(ctx, recipientID)
}

func (s *Service) UnreadCount(ctx context.Context, recipientID int64) (int64, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

// NotifyBookingDecision tells the booking's creator that it was accepted or rejected.
func (s *Service) NotifyBookingDecision(ctx context.Context, d booking.Decision) error {
	var title string
	switch d.Status {
	case booking.StatusAccepted:
		title = "Booking accepted"
	case booking.StatusRejected:
		title = "Booking rejected"
	default:
		return fmt.Errorf("no notification for status %q", d.Status)
	}

	href := fmt.Sprintf("/facilities/%d/reservations", d.FacilityID)
	n := &Notification{
		RecipientID: d.RecipientID,
		Title:       title,
		Description: describeBooking(d),
		Metadata: map[string]any{
			"booking_id":  d.BookingID,
			"facility_id": d.FacilityID,
			"resource_id": d.ResourceID,
			"title_href":  href,
			"desc_href":   href,
		},
	}
	if err := s.Create(ctx, n); err != nil {
		return err
	}

	log.Debug().
		Int64("notification_id", n.ID).
		Int64("booking_id", d.BookingID).
		Int64("recipient_id", d.RecipientID).
		Msg("booking decision notification sent")
	return nil
}

// describeBooking renders e.g. "Arena 2030-06-02 10:00 - 11:00 Court 1" in the facility zone.
func describeBooking(d booking.Decision) string {
	loc := d.Location
	if loc == nil {
		loc = time.UTC
	}
	start := d.Start.In(loc)
	end := d.End.In(loc)
	return fmt.Sprintf("%s %s %s - %s %s",
		d.FacilityName,
		start.Format(time.DateOnly),
		start.Format("15:04"),
		end.Format("15:04"),
		d.ResourceName,
	)
}
