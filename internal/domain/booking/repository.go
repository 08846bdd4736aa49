package booking

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	pgSerializationFailure = "40001"
	pgExclusionViolation   = "23P01"
)

type Repository interface {
	OverlapFinder

	// Transaction runs fn in one database transaction scoped to the resource.
	// On PostgreSQL the transaction is serializable and holds a row lock on the resource.
	Transaction(ctx context.Context, resourceID int64, fn func(tx Repository) error) error
	Save(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	// UpdateStatus moves a booking from one status to another and reports false
	// when the booking was no longer in the from status.
	UpdateStatus(ctx context.Context, id int64, from, to Status, actorID int64) (bool, error)
	SoftDelete(ctx context.Context, id, actorID int64) error
	BulkSoftDeleteByResourceIDs(ctx context.Context, resourceIDs []int64, actorID int64) (int64, error)
	ListAcceptedInRange(ctx context.Context, resourceIDs []int64, from, to time.Time) ([]Booking, error)
	Query(ctx context.Context, q Query) ([]Booking, int64, error)
}

// Query selects one of the three list scopes. Exactly one of CreatedBy, OwnerID
// or ResourceID is set; FacilityID narrows the owner scope.
type Query struct {
	CreatedBy  int64
	OwnerID    int64
	FacilityID int64
	ResourceID int64
	Filter     ListFilter
	OrderBy    string
}

type bookingRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) isPostgres() bool {
	return r.db.Dialector.Name() == "postgres"
}

func (r *bookingRepository) Transaction(ctx context.Context, resourceID int64, fn func(tx Repository) error) error {
	var opts []*sql.TxOptions
	if r.isPostgres() {
		opts = append(opts, &sql.TxOptions{Isolation: sql.LevelSerializable})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if r.isPostgres() {
			var lockedID int64
			res := tx.Table("resources").
				Clauses(clause.Locking{Strength: "UPDATE"}).
				Select("id").
				Where("id = ?", resourceID).
				Scan(&lockedID)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrNotFound
			}
		}
		return fn(&bookingRepository{db: tx})
	}, opts...)

	return mapConflict(err)
}

// mapConflict turns the PostgreSQL errors raised by concurrent writers on the
// same resource into ErrTimeConflict.
func mapConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == pgSerializationFailure || pgErr.Code == pgExclusionViolation {
			return ErrTimeConflict
		}
	}
	return err
}

func (r *bookingRepository) FindOverlapping(ctx context.Context, resourceID int64, start, end time.Time, status Status, excludeID int64) ([]Booking, error) {
	q := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Where("status = ?", status).
		Where("start_time < ? AND end_time > ?", end.UTC(), start.UTC())
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var out []Booking
	err := q.Find(&out).Error
	return out, err
}

func (r *bookingRepository) Save(ctx context.Context, b *Booking) error {
	b.StartTime = b.StartTime.UTC()
	b.EndTime = b.EndTime.UTC()
	return mapConflict(r.db.WithContext(ctx).Create(b).Error)
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, from, to Status, actorID int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]any{
			"status":     to,
			"updated_by": actorID,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, mapConflict(res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (r *bookingRepository) SoftDelete(ctx context.Context, id, actorID int64) error {
	res := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"deleted_by": actorID,
			"deleted_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *bookingRepository) BulkSoftDeleteByResourceIDs(ctx context.Context, resourceIDs []int64, actorID int64) (int64, error) {
	if len(resourceIDs) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("resource_id IN ?", resourceIDs).
		Updates(map[string]any{
			"deleted_by": actorID,
			"deleted_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *bookingRepository) ListAcceptedInRange(ctx context.Context, resourceIDs []int64, from, to time.Time) ([]Booking, error) {
	if len(resourceIDs) == 0 {
		return nil, nil
	}
	var out []Booking
	err := r.db.WithContext(ctx).
		Where("resource_id IN ?", resourceIDs).
		Where("status = ?", StatusAccepted).
		Where("start_time < ? AND end_time > ?", to.UTC(), from.UTC()).
		Order("start_time ASC").
		Find(&out).Error
	return out, err
}

// likeEscaper makes user text match literally inside LIKE ... ESCAPE '\'.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

func (r *bookingRepository) Query(ctx context.Context, q Query) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&Booking{})

	switch {
	case q.CreatedBy > 0:
		base = base.Where("created_by = ?", q.CreatedBy)
	case q.ResourceID > 0:
		base = base.Where("resource_id = ?", q.ResourceID)
	case q.OwnerID > 0:
		sub := r.db.Table("resources").Select("id").Where("owner_id = ?", q.OwnerID)
		if q.FacilityID > 0 {
			sub = sub.Where("facility_id = ?", q.FacilityID)
		}
		base = base.Where("resource_id IN (?)", sub)
	default:
		return nil, 0, ErrValidation
	}

	f := q.Filter
	if len(f.Statuses) > 0 {
		base = base.Where("status IN ?", f.Statuses)
	}
	if f.From != nil {
		base = base.Where("start_time >= ?", f.From.UTC())
	}
	if f.To != nil {
		base = base.Where("start_time < ?", f.To.UTC())
	}
	if name := strings.TrimSpace(f.Name); name != "" {
		base = base.Where(`LOWER(full_name) LIKE ? ESCAPE '\'`, "%"+likeEscaper.Replace(strings.ToLower(name))+"%")
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := q.OrderBy
	if order == "" {
		order = "start_time DESC"
	}

	var items []Booking
	err := base.
		Order(order).
		Order("id DESC").
		Limit(PageSize).
		Offset((f.page() - 1) * PageSize).
		Find(&items).Error
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
