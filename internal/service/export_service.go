package service

import (
	"bytes"
	"context"
	"time"

	"go.uber.org/zap"

	"police-personnel/internal/dto"
	"police-personnel/internal/repository"
	"police-personnel/internal/workbook"
)

// ExportService personnel workbook export
type ExportService interface {
	// ExportPersonnel renders every record matching req, returning the file
	// and its download name.
	ExportPersonnel(ctx context.Context, req *dto.PersonnelListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService creates an ExportService
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) ExportPersonnel(ctx context.Context, req *dto.PersonnelListRequest) (*bytes.Buffer, string, error) {
	filters := &repository.PersonnelFilters{}
	if req != nil {
		filters.Search = req.Q
		filters.Rank = req.Rank
		filters.Unit = req.Unit
	}

	list, err := s.repo.Personnel.List(ctx, filters)
	if err != nil {
		s.logger.Error("list personnel for export failed", zap.Error(err))
		return nil, "", err
	}

	now := s.now()
	buf, err := workbook.WriteWorkbook(workbook.ExportSheet, workbook.ExportRows(list, now))
	if err != nil {
		s.logger.Error("write export workbook failed", zap.Error(err))
		return nil, "", err
	}

	s.logger.Info("personnel exported", zap.Int("rows", len(list)))
	return buf, workbook.ExportFilename(now), nil
}
