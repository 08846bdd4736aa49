package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bookinghub/internal/domain/auth"
	"bookinghub/internal/domain/facility"
	"bookinghub/internal/pkg/metrics"

	"github.com/rs/zerolog/log"
)

type FacilityLookup interface {
	GetResource(ctx context.Context, resourceID int64) (*facility.ResourceInfo, error)
	GetFacility(ctx context.Context, id int64) (*facility.Facility, error)
	ListResources(ctx context.Context, facilityID int64) ([]facility.Resource, error)
}

type UserDirectory interface {
	GetByID(ctx context.Context, id int64) (*auth.User, error)
}

type Notifier interface {
	NotifyBookingDecision(ctx context.Context, d Decision) error
}

type CreateInput struct {
	ResourceID int64
	Start      time.Time
	End        time.Time
	Notes      string
}

type OperatorCreateInput struct {
	ResourceID  int64
	Start       time.Time
	End         time.Time
	FullName    string
	PhoneNumber string
	Notes       string
	// Status is pending or accepted; empty means pending.
	Status Status
}

type Service struct {
	repo       Repository
	facilities FacilityLookup
	users      UserDirectory
	notifier   Notifier
	metrics    *metrics.Metrics
	now        func() time.Time
}

func NewService(
	repo Repository,
	facilities FacilityLookup,
	users UserDirectory,
	notifier Notifier,
	m *metrics.Metrics,
) *Service {
	return &Service{
		repo:       repo,
		facilities: facilities,
		users:      users,
		notifier:   notifier,
		metrics:    m,
		now:        time.Now,
	}
}

// Validate runs the same checks as Create without persisting anything.
func (s *Service) Validate(ctx context.Context, resourceID int64, w Window) error {
	info, err := s.resource(ctx, resourceID)
	if err != nil {
		return err
	}
	return s.checkWindow(ctx, s.repo, info, w.UTC(), 0)
}

func (s *Service) Create(ctx context.Context, actorID int64, in CreateInput) (*Booking, error) {
	info, err := s.resource(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	b := &Booking{
		ResourceID:  in.ResourceID,
		StartTime:   in.Start.UTC(),
		EndTime:     in.End.UTC(),
		Status:      StatusPending,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
		FullName:    user.Name,
		PhoneNumber: user.Phone,
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.insert(ctx, info, b); err != nil {
		return nil, err
	}

	log.Info().
		Int64("booking_id", b.ID).
		Int64("resource_id", b.ResourceID).
		Int64("created_by", actorID).
		Msg("booking created")
	return b, nil
}

// CreateByOperator books the operator's own resource for a walk-in customer.
func (s *Service) CreateByOperator(ctx context.Context, actorID int64, in OperatorCreateInput) (*Booking, error) {
	status := in.Status
	if status == "" {
		status = StatusPending
	}
	if status != StatusPending && status != StatusAccepted {
		return nil, fmt.Errorf("%w: initial status must be pending or accepted", ErrValidation)
	}
	if strings.TrimSpace(in.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrValidation)
	}

	info, err := s.resource(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if info.OwnerID != actorID {
		return nil, ErrForbidden
	}

	b := &Booking{
		ResourceID:  in.ResourceID,
		StartTime:   in.Start.UTC(),
		EndTime:     in.End.UTC(),
		Status:      status,
		CreatedBy:   actorID,
		UpdatedBy:   actorID,
		FullName:    strings.TrimSpace(in.FullName),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Notes:       strings.TrimSpace(in.Notes),
	}
	if err := s.insert(ctx, info, b); err != nil {
		return nil, err
	}

	log.Info().
		Int64("booking_id", b.ID).
		Int64("resource_id", b.ResourceID).
		Str("status", string(status)).
		Msg("booking created by operator")
	return b, nil
}

func (s *Service) insert(ctx context.Context, info *facility.ResourceInfo, b *Booking) error {
	err := s.repo.Transaction(ctx, b.ResourceID, func(tx Repository) error {
		if err := s.checkWindow(ctx, tx, info, b.Window(), 0); err != nil {
			return err
		}
		return tx.Save(ctx, b)
	})
	if err != nil {
		if errors.Is(err, ErrTimeConflict) {
			s.metrics.BookingConflict()
		}
		return err
	}
	s.metrics.BookingCreated(string(b.Status))
	return nil
}

// checkWindow runs the availability checks in order and stops at the first failure:
// operating hours, then conflicts with accepted bookings, then start in the past.
func (s *Service) checkWindow(ctx context.Context, store OverlapFinder, info *facility.ResourceInfo, w Window, excludeID int64) error {
	if err := ValidateTimeWindow(info.Hours, w.Start, w.End); err != nil {
		return err
	}

	conflict, err := HasConflict(ctx, store, info.ResourceID, w, excludeID)
	if err != nil {
		return err
	}
	if conflict {
		return ErrTimeConflict
	}

	if w.Start.Before(s.now()) {
		return ErrInThePast
	}
	return nil
}

func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, to Status, actorID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	info, err := s.resource(ctx, b.ResourceID)
	if err != nil {
		return nil, err
	}
	if info.OwnerID != actorID {
		return nil, ErrForbidden
	}

	from := b.Status
	if !CanTransition(from, to) {
		return nil, ErrInvalidTransition
	}
	now := s.now()
	if to == StatusDisabled && b.EndTime.Before(now) {
		return nil, ErrBookingExpired
	}

	err = s.repo.Transaction(ctx, b.ResourceID, func(tx Repository) error {
		if to == StatusAccepted {
			conflict, err := HasConflict(ctx, tx, b.ResourceID, b.Window(), b.ID)
			if err != nil {
				return err
			}
			if conflict {
				return ErrTimeConflict
			}
		}

		ok, err := tx.UpdateStatus(ctx, b.ID, from, to, actorID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTransition
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrTimeConflict) {
			s.metrics.BookingConflict()
		}
		return nil, err
	}

	b.Status = to
	b.UpdatedBy = actorID
	b.UpdatedAt = now.UTC()
	s.metrics.BookingTransitioned(string(from), string(to))

	log.Info().
		Int64("booking_id", b.ID).
		Str("from", string(from)).
		Str("to", string(to)).
		Int64("actor_id", actorID).
		Msg("booking status changed")

	if from == StatusPending && (to == StatusAccepted || to == StatusRejected) {
		s.notifyDecision(ctx, b, info)
	}
	return b, nil
}

// notifyDecision runs after the transition is committed; failures are logged only.
func (s *Service) notifyDecision(ctx context.Context, b *Booking, info *facility.ResourceInfo) {
	if s.notifier == nil {
		return
	}
	d := Decision{
		BookingID:    b.ID,
		RecipientID:  b.CreatedBy,
		FacilityID:   info.FacilityID,
		FacilityName: info.FacilityName,
		ResourceID:   info.ResourceID,
		ResourceName: info.Name,
		Status:       b.Status,
		Start:        b.StartTime,
		End:          b.EndTime,
		Location:     info.Hours.Location,
	}
	if err := s.notifier.NotifyBookingDecision(ctx, d); err != nil {
		log.Warn().Err(err).Int64("booking_id", b.ID).Msg("booking decision notification failed")
	}
}

func (s *Service) Delete(ctx context.Context, bookingID, actorID int64) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	info, err := s.resource(ctx, b.ResourceID)
	if err != nil {
		return err
	}
	if info.OwnerID != actorID {
		return ErrForbidden
	}

	if err := s.repo.SoftDelete(ctx, bookingID, actorID); err != nil {
		return err
	}
	log.Info().Int64("booking_id", bookingID).Int64("deleted_by", actorID).Msg("booking deleted")
	return nil
}

// BulkDeleteByResourceGroup soft-deletes every booking on every resource of the facility.
// The actor must own all of them.
func (s *Service) BulkDeleteByResourceGroup(ctx context.Context, facilityID, actorID int64) (int64, error) {
	resources, err := s.facilities.ListResources(ctx, facilityID)
	if err != nil {
		return 0, err
	}
	if len(resources) == 0 {
		return 0, ErrNotFound
	}

	ids := make([]int64, 0, len(resources))
	for _, r := range resources {
		if r.OwnerID != actorID {
			return 0, ErrForbidden
		}
		ids = append(ids, r.ID)
	}

	n, err := s.repo.BulkSoftDeleteByResourceIDs(ctx, ids, actorID)
	if err != nil {
		return 0, err
	}
	log.Info().Int64("facility_id", facilityID).Int64("deleted", n).Msg("facility bookings deleted")
	return n, nil
}

// GetByID returns the booking to its creator or to the owner of its resource.
func (s *Service) GetByID(ctx context.Context, bookingID, actorID int64) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.CreatedBy == actorID {
		return b, nil
	}

	info, err := s.resource(ctx, b.ResourceID)
	if err != nil {
		return nil, err
	}
	if info.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return b, nil
}

func (s *Service) ListByCreator(ctx context.Context, actorID int64, f ListFilter) (*Page, error) {
	return s.query(ctx, Query{CreatedBy: actorID, Filter: f, OrderBy: "updated_at DESC"})
}

// ListByOwnerFacility lists bookings on resources the actor owns, optionally
// limited to one facility (facilityID 0 means all).
func (s *Service) ListByOwnerFacility(ctx context.Context, actorID, facilityID int64, f ListFilter) (*Page, error) {
	return s.query(ctx, Query{OwnerID: actorID, FacilityID: facilityID, Filter: f, OrderBy: "start_time DESC"})
}

func (s *Service) ListByResource(ctx context.Context, actorID, resourceID int64, f ListFilter) (*Page, error) {
	info, err := s.resource(ctx, resourceID)
	if err != nil {
		return nil, err
	}
	if info.OwnerID != actorID {
		return nil, ErrForbidden
	}
	return s.query(ctx, Query{ResourceID: resourceID, Filter: f, OrderBy: "start_time DESC"})
}

func (s *Service) query(ctx context.Context, q Query) (*Page, error) {
	for _, st := range q.Filter.Statuses {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, st)
		}
	}

	items, total, err := s.repo.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Booking{}
	}
	return &Page{
		Items:    items,
		Total:    total,
		Page:     q.Filter.page(),
		PageSize: PageSize,
	}, nil
}

// CalendarWeek builds the slot grid for a facility between two calendar dates
// (inclusive) interpreted in the facility zone.
func (s *Service) CalendarWeek(ctx context.Context, facilityID int64, startDate, endDate time.Time) ([][]Slot, error) {
	days := calendarDays(startDate, endDate)
	if days < 1 || days > MaxCalendarDays {
		return nil, fmt.Errorf("%w: range must cover 1 to %d days", ErrValidation, MaxCalendarDays)
	}

	f, err := s.facilities.GetFacility(ctx, facilityID)
	if err != nil {
		if errors.Is(err, facility.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	hours, err := f.Hours()
	if err != nil {
		return nil, err
	}

	resources, err := s.facilities.ListResources(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(resources))
	for _, r := range resources {
		ids = append(ids, r.ID)
	}

	from := localDate(startDate, hours.Location)
	to := localDate(endDate, hours.Location).AddDate(0, 0, 1)
	accepted, err := s.repo.ListAcceptedInRange(ctx, ids, from, to)
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, len(accepted))
	for i := range accepted {
		windows = append(windows, accepted[i].Window())
	}

	return BuildCalendar(CalendarInput{
		Hours:         hours,
		StartDate:     startDate,
		EndDate:       endDate,
		ResourceCount: len(resources),
		Accepted:      windows,
	}), nil
}

func (s *Service) resource(ctx context.Context, resourceID int64) (*facility.ResourceInfo, error) {
	info, err := s.facilities.GetResource(ctx, resourceID)
	if err != nil {
		if errors.Is(err, facility.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return info, nil
}
