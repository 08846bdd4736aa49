package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"bookinghub/internal/domain/auth"
	"bookinghub/internal/domain/facility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock repositories
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Transaction(ctx context.Context, resourceID int64, fn func(tx Repository) error) error {
	args := m.Called(ctx, resourceID)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockRepository) FindOverlapping(ctx context.Context, resourceID int64, start, end time.Time, status Status, excludeID int64) ([]Booking, error) {
	args := m.Called(ctx, resourceID, start, end, status, excludeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepository) Save(ctx context.Context, b *Booking) error {
	args := m.Called(ctx, b)
	if args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Booking), args.Error(1)
}

func (m *MockRepository) UpdateStatus(ctx context.Context, id int64, from, to Status, actorID int64) (bool, error) {
	args := m.Called(ctx, id, from, to, actorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) SoftDelete(ctx context.Context, id, actorID int64) error {
	return m.Called(ctx, id, actorID).Error(0)
}

func (m *MockRepository) BulkSoftDeleteByResourceIDs(ctx context.Context, resourceIDs []int64, actorID int64) (int64, error) {
	args := m.Called(ctx, resourceIDs, actorID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRepository) ListAcceptedInRange(ctx context.Context, resourceIDs []int64, from, to time.Time) ([]Booking, error) {
	args := m.Called(ctx, resourceIDs, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Booking), args.Error(1)
}

func (m *MockRepository) Query(ctx context.Context, q Query) ([]Booking, int64, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]Booking), args.Get(1).(int64), args.Error(2)
}

type MockFacilityLookup struct {
	mock.Mock
}

func (m *MockFacilityLookup) GetResource(ctx context.Context, resourceID int64) (*facility.ResourceInfo, error) {
	args := m.Called(ctx, resourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.ResourceInfo), args.Error(1)
}

func (m *MockFacilityLookup) GetFacility(ctx context.Context, id int64) (*facility.Facility, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*facility.Facility), args.Error(1)
}

func (m *MockFacilityLookup) ListResources(ctx context.Context, facilityID int64) ([]facility.Resource, error) {
	args := m.Called(ctx, facilityID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]facility.Resource), args.Error(1)
}

type MockUserDirectory struct {
	mock.Mock
}

func (m *MockUserDirectory) GetByID(ctx context.Context, id int64) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingDecision(ctx context.Context, d Decision) error {
	return m.Called(ctx, d).Error(0)
}

const (
	ownerID    int64 = 1
	clientID   int64 = 2
	resourceID int64 = 10
)

var now = time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC)

type deps struct {
	svc      *Service
	repo     *MockRepository
	lookup   *MockFacilityLookup
	users    *MockUserDirectory
	notifier *MockNotifier
	info     *facility.ResourceInfo
}

func newDeps(t *testing.T) *deps {
	t.Helper()
	d := &deps{
		repo:     new(MockRepository),
		lookup:   new(MockFacilityLookup),
		users:    new(MockUserDirectory),
		notifier: new(MockNotifier),
		info: &facility.ResourceInfo{
			ResourceID:   resourceID,
			Name:         "Court 1",
			OwnerID:      ownerID,
			FacilityID:   3,
			FacilityName: "Arena",
			Hours:        hoursAt(t, "08:00", "22:00", 0),
		},
	}
	d.svc = NewService(d.repo, d.lookup, d.users, d.notifier, nil)
	d.svc.now = func() time.Time { return now }
	return d
}

// window on the day after now, in hours from midnight.
func window(fromH, toH int) Window {
	day := time.Date(2030, 6, 2, 0, 0, 0, 0, time.UTC)
	return Window{Start: day.Add(time.Duration(fromH) * time.Hour), End: day.Add(time.Duration(toH) * time.Hour)}
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	w := window(10, 12)

	d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
	d.users.On("GetByID", ctx, clientID).Return(&auth.User{ID: clientID, Name: "Aida", Phone: "+77010000000"}, nil)
	d.repo.On("Transaction", ctx, resourceID).Return(nil)
	d.repo.On("FindOverlapping", ctx, resourceID, w.Start, w.End, StatusAccepted, int64(0)).Return(nil, nil)
	d.repo.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)

	b, err := d.svc.Create(ctx, clientID, CreateInput{ResourceID: resourceID, Start: w.Start, End: w.End, Notes: " hi "})
	require.NoError(t, err)
	assert.Equal(t, int64(999), b.ID)
	assert.Equal(t, StatusPending, b.Status)
	assert.Equal(t, "Aida", b.FullName)
	assert.Equal(t, "+77010000000", b.PhoneNumber)
	assert.Equal(t, "hi", b.Notes)
	assert.Equal(t, clientID, b.CreatedBy)
	d.repo.AssertExpectations(t)
}

func TestCreate_CheckOrder(t *testing.T) {
	ctx := context.Background()
	past := Window{Start: now.Add(-2 * time.Hour), End: now.Add(-time.Hour)}

	t.Run("out of hours wins over everything", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
		d.users.On("GetByID", ctx, clientID).Return(&auth.User{ID: clientID}, nil)
		d.repo.On("Transaction", ctx, resourceID).Return(nil)

		w := window(6, 9)
		_, err := d.svc.Create(ctx, clientID, CreateInput{ResourceID: resourceID, Start: w.Start, End: w.End})
		assert.ErrorIs(t, err, ErrOutOfOperatingHours)
		d.repo.AssertNotCalled(t, "FindOverlapping", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		d.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("conflict is reported before past", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
		d.users.On("GetByID", ctx, clientID).Return(&auth.User{ID: clientID}, nil)
		d.repo.On("Transaction", ctx, resourceID).Return(nil)
		d.repo.On("FindOverlapping", ctx, resourceID, past.Start, past.End, StatusAccepted, int64(0)).
			Return([]Booking{{ID: 5, StartTime: past.Start, EndTime: past.End, Status: StatusAccepted}}, nil)

		_, err := d.svc.Create(ctx, clientID, CreateInput{ResourceID: resourceID, Start: past.Start, End: past.End})
		assert.ErrorIs(t, err, ErrTimeConflict)
		d.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("past", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
		d.users.On("GetByID", ctx, clientID).Return(&auth.User{ID: clientID}, nil)
		d.repo.On("Transaction", ctx, resourceID).Return(nil)
		d.repo.On("FindOverlapping", ctx, resourceID, past.Start, past.End, StatusAccepted, int64(0)).Return(nil, nil)

		_, err := d.svc.Create(ctx, clientID, CreateInput{ResourceID: resourceID, Start: past.Start, End: past.End})
		assert.ErrorIs(t, err, ErrInThePast)
	})

	t.Run("invalid window", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
		d.users.On("GetByID", ctx, clientID).Return(&auth.User{ID: clientID}, nil)
		d.repo.On("Transaction", ctx, resourceID).Return(nil)

		w := window(12, 10)
		_, err := d.svc.Create(ctx, clientID, CreateInput{ResourceID: resourceID, Start: w.Start, End: w.End})
		assert.ErrorIs(t, err, ErrInvalidWindow)
	})
}

func TestCreate_PastBoundary(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name    string
		start   time.Time
		wantErr error
	}{
		{"one second ago", now.Add(-time.Second), ErrInThePast},
		{"one second ahead", now.Add(time.Second), nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := newDeps(t)
			w := Window{Start: tc.start, End: tc.start.Add(time.Hour)}
			d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
			d.users.On("GetByID", ctx, clientID).Return(&auth.User{ID: clientID}, nil)
			d.repo.On("Transaction", ctx, resourceID).Return(nil)
			d.repo.On("FindOverlapping", ctx, resourceID, w.Start, w.End, StatusAccepted, int64(0)).Return(nil, nil)
			d.repo.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil).Maybe()

			b, err := d.svc.Create(ctx, clientID, CreateInput{ResourceID: resourceID, Start: w.Start, End: w.End})
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				d.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, w.Start, b.StartTime)
		})
	}
}

func TestCreate_UnknownResource(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	d.lookup.On("GetResource", ctx, int64(404)).Return(nil, facility.ErrNotFound)

	w := window(10, 11)
	_, err := d.svc.Create(ctx, clientID, CreateInput{ResourceID: 404, Start: w.Start, End: w.End})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestValidate_DoesNotPersist(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	w := window(10, 11)

	d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
	d.repo.On("FindOverlapping", ctx, resourceID, w.Start, w.End, StatusAccepted, int64(0)).Return(nil, nil)

	require.NoError(t, d.svc.Validate(ctx, resourceID, w))
	d.repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	d.repo.AssertNotCalled(t, "Transaction", mock.Anything, mock.Anything)
}

func TestCreateByOperator(t *testing.T) {
	ctx := context.Background()
	w := window(10, 11)

	t.Run("accepted walk-in", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
		d.repo.On("Transaction", ctx, resourceID).Return(nil)
		d.repo.On("FindOverlapping", ctx, resourceID, w.Start, w.End, StatusAccepted, int64(0)).Return(nil, nil)
		d.repo.On("Save", ctx, mock.AnythingOfType("*booking.Booking")).Return(nil)

		b, err := d.svc.CreateByOperator(ctx, ownerID, OperatorCreateInput{
			ResourceID: resourceID, Start: w.Start, End: w.End, FullName: "Walk In", Status: StatusAccepted,
		})
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, b.Status)
		assert.Equal(t, "Walk In", b.FullName)
		d.users.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("not the owner", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)

		_, err := d.svc.CreateByOperator(ctx, 77, OperatorCreateInput{ResourceID: resourceID, Start: w.Start, End: w.End, FullName: "X"})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("bad initial status", func(t *testing.T) {
		d := newDeps(t)
		_, err := d.svc.CreateByOperator(ctx, ownerID, OperatorCreateInput{ResourceID: resourceID, Start: w.Start, End: w.End, FullName: "X", Status: StatusDisabled})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func pendingBooking() *Booking {
	w := window(10, 11)
	return &Booking{ID: 50, ResourceID: resourceID, StartTime: w.Start, EndTime: w.End, Status: StatusPending, CreatedBy: clientID}
}

func TestUpdateStatus_AcceptNotifiesCreator(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	b := pendingBooking()

	d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
	d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
	d.repo.On("Transaction", ctx, resourceID).Return(nil)
	d.repo.On("FindOverlapping", ctx, resourceID, b.StartTime, b.EndTime, StatusAccepted, b.ID).Return(nil, nil)
	d.repo.On("UpdateStatus", ctx, b.ID, StatusPending, StatusAccepted, ownerID).Return(true, nil)
	d.notifier.On("NotifyBookingDecision", ctx, mock.MatchedBy(func(dec Decision) bool {
		return dec.BookingID == b.ID &&
			dec.RecipientID == clientID &&
			dec.Status == StatusAccepted &&
			dec.FacilityName == "Arena" &&
			dec.ResourceName == "Court 1"
	})).Return(nil)

	got, err := d.svc.UpdateStatus(ctx, b.ID, StatusAccepted, ownerID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, got.Status)
	assert.Equal(t, ownerID, got.UpdatedBy)
	d.notifier.AssertExpectations(t)
}

func TestUpdateStatus_NotificationFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	b := pendingBooking()

	d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
	d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
	d.repo.On("Transaction", ctx, resourceID).Return(nil)
	d.repo.On("UpdateStatus", ctx, b.ID, StatusPending, StatusRejected, ownerID).Return(true, nil)
	d.notifier.On("NotifyBookingDecision", ctx, mock.Anything).Return(errors.New("db down"))

	got, err := d.svc.UpdateStatus(ctx, b.ID, StatusRejected, ownerID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status)
}

func TestUpdateStatus_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		d := newDeps(t)
		d.repo.On("GetByID", ctx, int64(1)).Return(nil, ErrNotFound)
		_, err := d.svc.UpdateStatus(ctx, 1, StatusAccepted, ownerID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("forbidden is checked before transition", func(t *testing.T) {
		d := newDeps(t)
		b := pendingBooking()
		b.Status = StatusRejected
		d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)

		_, err := d.svc.UpdateStatus(ctx, b.ID, StatusAccepted, clientID)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("same state is invalid", func(t *testing.T) {
		d := newDeps(t)
		b := pendingBooking()
		b.Status = StatusAccepted
		d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)

		_, err := d.svc.UpdateStatus(ctx, b.ID, StatusAccepted, ownerID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("terminal state", func(t *testing.T) {
		d := newDeps(t)
		b := pendingBooking()
		b.Status = StatusDisabled
		d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)

		_, err := d.svc.UpdateStatus(ctx, b.ID, StatusPending, ownerID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("disable after end", func(t *testing.T) {
		d := newDeps(t)
		b := pendingBooking()
		b.Status = StatusAccepted
		b.StartTime = now.Add(-3 * time.Hour)
		b.EndTime = now.Add(-time.Hour)
		d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)

		_, err := d.svc.UpdateStatus(ctx, b.ID, StatusDisabled, ownerID)
		assert.ErrorIs(t, err, ErrBookingExpired)
		d.repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("accept over an accepted overlap", func(t *testing.T) {
		d := newDeps(t)
		b := pendingBooking()
		d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
		d.repo.On("Transaction", ctx, resourceID).Return(nil)
		d.repo.On("FindOverlapping", ctx, resourceID, b.StartTime, b.EndTime, StatusAccepted, b.ID).
			Return([]Booking{{ID: 51, StartTime: b.StartTime, EndTime: b.EndTime, Status: StatusAccepted}}, nil)

		_, err := d.svc.UpdateStatus(ctx, b.ID, StatusAccepted, ownerID)
		assert.ErrorIs(t, err, ErrTimeConflict)
		d.notifier.AssertNotCalled(t, "NotifyBookingDecision", mock.Anything, mock.Anything)
	})

	t.Run("lost race", func(t *testing.T) {
		d := newDeps(t)
		b := pendingBooking()
		d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
		d.repo.On("Transaction", ctx, resourceID).Return(nil)
		d.repo.On("UpdateStatus", ctx, b.ID, StatusPending, StatusRejected, ownerID).Return(false, nil)

		_, err := d.svc.UpdateStatus(ctx, b.ID, StatusRejected, ownerID)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})
}

func TestUpdateStatus_DisableDoesNotNotify(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	b := pendingBooking()
	b.Status = StatusAccepted

	d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
	d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
	d.repo.On("Transaction", ctx, resourceID).Return(nil)
	d.repo.On("UpdateStatus", ctx, b.ID, StatusAccepted, StatusDisabled, ownerID).Return(true, nil)

	got, err := d.svc.UpdateStatus(ctx, b.ID, StatusDisabled, ownerID)
	require.NoError(t, err)
	assert.Equal(t, StatusDisabled, got.Status)
	d.notifier.AssertNotCalled(t, "NotifyBookingDecision", mock.Anything, mock.Anything)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	b := pendingBooking()
	d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
	d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
	d.repo.On("SoftDelete", ctx, b.ID, ownerID).Return(nil)

	assert.ErrorIs(t, d.svc.Delete(ctx, b.ID, clientID), ErrForbidden)
	require.NoError(t, d.svc.Delete(ctx, b.ID, ownerID))
	d.repo.AssertNumberOfCalls(t, "SoftDelete", 1)
}

func TestBulkDeleteByResourceGroup(t *testing.T) {
	ctx := context.Background()

	t.Run("empty group", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("ListResources", ctx, int64(3)).Return([]facility.Resource{}, nil)
		_, err := d.svc.BulkDeleteByResourceGroup(ctx, 3, ownerID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("one foreign resource", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("ListResources", ctx, int64(3)).Return([]facility.Resource{
			{ID: 10, OwnerID: ownerID}, {ID: 11, OwnerID: 99},
		}, nil)
		_, err := d.svc.BulkDeleteByResourceGroup(ctx, 3, ownerID)
		assert.ErrorIs(t, err, ErrForbidden)
		d.repo.AssertNotCalled(t, "BulkSoftDeleteByResourceIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ok", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("ListResources", ctx, int64(3)).Return([]facility.Resource{
			{ID: 10, OwnerID: ownerID}, {ID: 11, OwnerID: ownerID},
		}, nil)
		d.repo.On("BulkSoftDeleteByResourceIDs", ctx, []int64{10, 11}, ownerID).Return(int64(4), nil)

		n, err := d.svc.BulkDeleteByResourceGroup(ctx, 3, ownerID)
		require.NoError(t, err)
		assert.Equal(t, int64(4), n)
	})
}

func TestGetByID_Access(t *testing.T) {
	ctx := context.Background()
	d := newDeps(t)
	b := pendingBooking()
	d.repo.On("GetByID", ctx, b.ID).Return(b, nil)
	d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)

	_, err := d.svc.GetByID(ctx, b.ID, clientID)
	assert.NoError(t, err)
	_, err = d.svc.GetByID(ctx, b.ID, ownerID)
	assert.NoError(t, err)
	_, err = d.svc.GetByID(ctx, b.ID, 1234)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListQueries(t *testing.T) {
	ctx := context.Background()

	t.Run("by creator orders by updated_at", func(t *testing.T) {
		d := newDeps(t)
		f := ListFilter{Page: 2}
		d.repo.On("Query", ctx, Query{CreatedBy: clientID, Filter: f, OrderBy: "updated_at DESC"}).
			Return([]Booking{{ID: 1}}, int64(16), nil)

		page, err := d.svc.ListByCreator(ctx, clientID, f)
		require.NoError(t, err)
		assert.Equal(t, int64(16), page.Total)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, PageSize, page.PageSize)
	})

	t.Run("by resource requires ownership", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("GetResource", ctx, resourceID).Return(d.info, nil)
		_, err := d.svc.ListByResource(ctx, clientID, resourceID, ListFilter{})
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown status", func(t *testing.T) {
		d := newDeps(t)
		_, err := d.svc.ListByOwnerFacility(ctx, ownerID, 0, ListFilter{Statuses: []Status{"cancelled"}})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("empty page has items", func(t *testing.T) {
		d := newDeps(t)
		d.repo.On("Query", ctx, Query{OwnerID: ownerID, FacilityID: 3, OrderBy: "start_time DESC"}).
			Return([]Booking(nil), int64(0), nil)

		page, err := d.svc.ListByOwnerFacility(ctx, ownerID, 3, ListFilter{})
		require.NoError(t, err)
		assert.NotNil(t, page.Items)
		assert.Equal(t, 1, page.Page)
	})
}

func TestCalendarWeek(t *testing.T) {
	ctx := context.Background()
	start := time.Date(2030, 6, 3, 0, 0, 0, 0, time.UTC)

	t.Run("range too long", func(t *testing.T) {
		d := newDeps(t)
		_, err := d.svc.CalendarWeek(ctx, 3, start, start.AddDate(0, 0, 31))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("reversed range", func(t *testing.T) {
		d := newDeps(t)
		_, err := d.svc.CalendarWeek(ctx, 3, start, start.AddDate(0, 0, -1))
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown facility", func(t *testing.T) {
		d := newDeps(t)
		d.lookup.On("GetFacility", ctx, int64(3)).Return(nil, facility.ErrNotFound)
		_, err := d.svc.CalendarWeek(ctx, 3, start, start)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("one query for the whole range", func(t *testing.T) {
		d := newDeps(t)
		f := &facility.Facility{ID: 3, DailyStart: "09:00", DailyEnd: "10:00"}
		d.lookup.On("GetFacility", ctx, int64(3)).Return(f, nil)
		d.lookup.On("ListResources", ctx, int64(3)).Return([]facility.Resource{{ID: 10}}, nil)
		d.repo.On("ListAcceptedInRange", ctx, []int64{10}, mock.Anything, mock.Anything).Return([]Booking{
			{ID: 1, StartTime: start.Add(9 * time.Hour), EndTime: start.Add(9*time.Hour + 30*time.Minute), Status: StatusAccepted},
		}, nil).Once()

		days, err := d.svc.CalendarWeek(ctx, 3, start, start.AddDate(0, 0, 6))
		require.NoError(t, err)
		require.Len(t, days, 7)
		assert.False(t, days[0][0].IsEmpty)
		assert.True(t, days[0][1].IsEmpty)
		assert.True(t, days[1][0].IsEmpty)
		d.repo.AssertNumberOfCalls(t, "ListAcceptedInRange", 1)
	})
}
