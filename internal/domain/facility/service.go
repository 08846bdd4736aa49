package facility

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"
)

type Service struct {
	repo   Repository
	lookup *CachedLookup
}

func NewService(repo Repository, lookup *CachedLookup) *Service {
	return &Service{repo: repo, lookup: lookup}
}

func (s *Service) CreateFacility(ctx context.Context, ownerID int64, req CreateFacilityRequest) (*Facility, error) {
	if _, err := NewOperatingHours(req.DailyStart, req.DailyEnd, req.UTCOffsetMinutes); err != nil {
		return nil, err
	}

	f := &Facility{
		OwnerID:          ownerID,
		Name:             strings.TrimSpace(req.Name),
		Address:          strings.TrimSpace(req.Address),
		DailyStart:       req.DailyStart,
		DailyEnd:         req.DailyEnd,
		UTCOffsetMinutes: req.UTCOffsetMinutes,
	}
	if err := s.repo.CreateFacility(ctx, f); err != nil {
		return nil, err
	}

	log.Info().Int64("facility_id", f.ID).Int64("owner_id", ownerID).Msg("facility created")
	return f, nil
}

func (s *Service) GetFacility(ctx context.Context, id int64) (*Facility, error) {
	return s.lookup.GetFacility(ctx, id)
}

func (s *Service) ListMine(ctx context.Context, ownerID int64) ([]Facility, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// UpdateHours changes the operating hours. Existing bookings are left as they are;
// the new hours only apply to bookings validated afterwards.
func (s *Service) UpdateHours(ctx context.Context, facilityID, actorID int64, req UpdateHoursRequest) (*Facility, error) {
	if _, err := NewOperatingHours(req.DailyStart, req.DailyEnd, req.UTCOffsetMinutes); err != nil {
		return nil, err
	}

	f, err := s.repo.GetFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != actorID {
		return nil, ErrForbidden
	}

	if err := s.repo.UpdateHours(ctx, facilityID, req.DailyStart, req.DailyEnd, req.UTCOffsetMinutes); err != nil {
		return nil, err
	}
	s.lookup.Invalidate(facilityID)

	f.DailyStart = req.DailyStart
	f.DailyEnd = req.DailyEnd
	f.UTCOffsetMinutes = req.UTCOffsetMinutes
	return f, nil
}

func (s *Service) CreateResource(ctx context.Context, facilityID, actorID int64, req CreateResourceRequest) (*Resource, error) {
	f, err := s.repo.GetFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	if f.OwnerID != actorID {
		return nil, ErrForbidden
	}

	res := &Resource{
		FacilityID: facilityID,
		OwnerID:    actorID,
		Name:       strings.TrimSpace(req.Name),
	}
	if err := s.repo.CreateResource(ctx, res); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) ListResources(ctx context.Context, facilityID int64) ([]Resource, error) {
	if _, err := s.lookup.GetFacility(ctx, facilityID); err != nil {
		return nil, err
	}
	return s.lookup.ListResources(ctx, facilityID)
}
