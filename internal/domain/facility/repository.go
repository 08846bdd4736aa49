package facility

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	CreateFacility(ctx context.Context, f *Facility) error
	GetFacility(ctx context.Context, id int64) (*Facility, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]Facility, error)
	UpdateHours(ctx context.Context, id int64, start, end string, offsetMinutes int) error
	CreateResource(ctx context.Context, r *Resource) error
	GetResource(ctx context.Context, id int64) (*Resource, error)
	ListResources(ctx context.Context, facilityID int64) ([]Resource, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateFacility(ctx context.Context, f *Facility) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *repository) GetFacility(ctx context.Context, id int64) (*Facility, error) {
	var f Facility
	if err := r.db.WithContext(ctx).First(&f, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *repository) ListByOwner(ctx context.Context, ownerID int64) ([]Facility, error) {
	var out []Facility
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}

func (r *repository) UpdateHours(ctx context.Context, id int64, start, end string, offsetMinutes int) error {
	res := r.db.WithContext(ctx).
		Model(&Facility{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"daily_start":        start,
			"daily_end":          end,
			"utc_offset_minutes": offsetMinutes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) CreateResource(ctx context.Context, res *Resource) error {
	return r.db.WithContext(ctx).Create(res).Error
}

func (r *repository) GetResource(ctx context.Context, id int64) (*Resource, error) {
	var res Resource
	if err := r.db.WithContext(ctx).First(&res, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *repository) ListResources(ctx context.Context, facilityID int64) ([]Resource, error) {
	var out []Resource
	err := r.db.WithContext(ctx).
		Where("facility_id = ?", facilityID).
		Order("id ASC").
		Find(&out).Error
	return out, err
}
