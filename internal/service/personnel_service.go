package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"police-personnel/internal/dto"
	"police-personnel/internal/model"
	"police-personnel/internal/repository"
	"police-personnel/internal/workbook"
	pkgerrors "police-personnel/pkg/errors"
)

var (
	ErrPersonnelNotFound = errors.New("personnel not found")
	ErrPositionRequired  = errors.New("position information required (position, position number or POSCODE)")
	ErrNationalIDInvalid = errors.New("national ID must be 13 digits")
	ErrNationalIDExists  = errors.New("national ID already exists")
	ErrNationalIDDigits  = fmt.Errorf("invalid national ID: %w", workbook.ErrNationalIDDigits)
	ErrPosCodeNotFound   = errors.New("pos code not found")
	ErrPersonnelConflict = errors.New("personnel record was modified by another request")
)

// DateError a date field that could not be parsed.
type DateError struct {
	Field string
	Value string
}

func (e *DateError) Error() string {
	return "invalid date for " + e.Field + ": " + e.Value
}

// PersonnelService personnel record management
type PersonnelService interface {
	List(ctx context.Context, req *dto.PersonnelListRequest) ([]model.Personnel, error)
	GetByID(ctx context.Context, id string) (*model.Personnel, error)
	Create(ctx context.Context, req *dto.PersonnelRequest, callerID string) (*model.Personnel, error)
	Update(ctx context.Context, id string, req *dto.PersonnelRequest, callerID string) (*model.Personnel, error)
	Delete(ctx context.Context, id string) error
}

type personnelService struct {
	repo         *repository.Repository
	strictDigits bool
	logger       *zap.Logger
}

// NewPersonnelService creates a PersonnelService. strictDigits rejects
// national IDs that contain anything but digits.
func NewPersonnelService(repo *repository.Repository, strictDigits bool, logger *zap.Logger) PersonnelService {
	return &personnelService{repo: repo, strictDigits: strictDigits, logger: logger}
}

// ────────────────────── List ──────────────────────

func (s *personnelService) List(ctx context.Context, req *dto.PersonnelListRequest) ([]model.Personnel, error) {
	filters := &repository.PersonnelFilters{}
	if req != nil {
		filters.Search = req.Q
		filters.Rank = req.Rank
		filters.Unit = req.Unit
	}
	list, err := s.repo.Personnel.List(ctx, filters)
	if err != nil {
		s.logger.Error("list personnel failed", zap.Error(err))
		return nil, err
	}
	return list, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *personnelService) GetByID(ctx context.Context, id string) (*model.Personnel, error) {
	p, err := s.repo.Personnel.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonnelNotFound
		}
		s.logger.Error("load personnel failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// ────────────────────── Create ──────────────────────

func (s *personnelService) Create(ctx context.Context, req *dto.PersonnelRequest, callerID string) (*model.Personnel, error) {
	p := &model.Personnel{}
	if err := applyPersonnelRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.check(ctx, p, ""); err != nil {
		return nil, err
	}

	p.CreatedBy = &callerID
	p.UpdatedBy = &callerID
	if err := s.repo.Personnel.Create(ctx, p); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNationalIDExists
		}
		s.logger.Error("create personnel failed", zap.Error(err))
		return nil, err
	}
	return p, nil
}

// ────────────────────── Update ──────────────────────

// Update replaces every editable field with the request's values. When the
// request carries a version it must match the stored one.
func (s *personnelService) Update(ctx context.Context, id string, req *dto.PersonnelRequest, callerID string) (*model.Personnel, error) {
	existing, err := s.repo.Personnel.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPersonnelNotFound
		}
		return nil, err
	}

	p := &model.Personnel{PersonnelID: existing.PersonnelID, Version: existing.Version, BaseModel: existing.BaseModel}
	if req.Version != nil {
		p.Version = *req.Version
	}
	if err := applyPersonnelRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.check(ctx, p, id); err != nil {
		return nil, err
	}

	p.UpdatedBy = &callerID
	if err := s.repo.Personnel.Update(ctx, p); err != nil {
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, ErrPersonnelConflict
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrNationalIDExists
		}
		s.logger.Error("update personnel failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return p, nil
}

// ────────────────────── Delete ──────────────────────

func (s *personnelService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Personnel.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPersonnelNotFound
		}
		s.logger.Error("delete personnel failed", zap.String("id", id), zap.Error(err))
		return err
	}
	s.logger.Info("personnel deleted", zap.String("id", id))
	return nil
}

// check enforces the record rules plus referential and uniqueness checks.
// selfID excludes the record being updated from the uniqueness check.
func (s *personnelService) check(ctx context.Context, p *model.Personnel, selfID string) error {
	nid := ""
	if p.NationalID != nil {
		nid = *p.NationalID
	}
	switch err := workbook.CheckPersonnel(p.HasPosition(), nid, s.strictDigits); {
	case errors.Is(err, workbook.ErrPositionRequired):
		return ErrPositionRequired
	case errors.Is(err, workbook.ErrNationalIDDigits):
		return ErrNationalIDDigits
	case err != nil:
		return ErrNationalIDInvalid
	}

	if p.PosCodeID != nil {
		ok, err := s.repo.PosCode.Exists(ctx, *p.PosCodeID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrPosCodeNotFound
		}
	}

	if p.NationalID != nil {
		other, err := s.repo.Personnel.GetByNationalID(ctx, *p.NationalID)
		if err == nil && other.PersonnelID != selfID {
			return ErrNationalIDExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return nil
}

// applyPersonnelRequest copies req onto p: text is trimmed and blank text
// becomes absent, the national ID loses its separators, dates are parsed.
func applyPersonnelRequest(p *model.Personnel, req *dto.PersonnelRequest) error {
	p.PersonnelCode = cleanText(req.PersonnelCode)
	p.Position = cleanText(req.Position)
	p.PositionNumber = cleanText(req.PositionNumber)
	p.PosCodeID = req.PosCodeID
	p.ActingAs = cleanText(req.ActingAs)
	p.FullName = cleanText(req.FullName)
	p.Rank = cleanText(req.Rank)
	p.Seniority = req.Seniority
	p.YearsOfService = req.YearsOfService
	p.Age = req.Age
	p.Education = cleanText(req.Education)
	p.Unit = cleanText(req.Unit)
	p.TrainingLocation = cleanText(req.TrainingLocation)
	p.TrainingCourse = cleanText(req.TrainingCourse)
	p.Notes = cleanText(req.Notes)

	p.NationalID = nil
	if nid := cleanText(req.NationalID); nid != nil {
		stripped := workbook.StripNationalID(*nid)
		p.NationalID = &stripped
	}

	dates := []struct {
		field string
		in    *string
		out   **time.Time
	}{
		{"birth_date", req.BirthDate, &p.BirthDate},
		{"enrollment_date", req.EnrollmentDate, &p.EnrollmentDate},
		{"current_rank_since", req.CurrentRankSince, &p.CurrentRankSince},
		{"last_appointment", req.LastAppointment, &p.LastAppointment},
		{"retirement_date", req.RetirementDate, &p.RetirementDate},
	}
	for _, d := range dates {
		*d.out = nil
		raw := cleanText(d.in)
		if raw == nil {
			continue
		}
		t, ok := workbook.ParseDate(*raw)
		if !ok {
			return &DateError{Field: d.field, Value: *raw}
		}
		*d.out = &t
	}
	return nil
}

func cleanText(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
