package service

import (
	"bytes"
	"context"
	"errors"

	"go.uber.org/zap"

	"police-personnel/config"
	"police-personnel/internal/dto"
	"police-personnel/internal/workbook"
)

// ErrImportEmpty the workbook has a header row but no data.
var ErrImportEmpty = errors.New("no data rows found in file")

// ImportService spreadsheet preview and sequential commit
type ImportService interface {
	Preview(ctx context.Context, filename string, data []byte) (*dto.ImportPreviewResponse, error)
	Commit(ctx context.Context, req *dto.ImportCommitRequest, callerID string) (*workbook.Result, error)
	Template() (*bytes.Buffer, string, error)
}

type importService struct {
	cfg       *config.ImportConfig
	personnel PersonnelService
	logger    *zap.Logger
}

// NewImportService creates an ImportService. Rows are stored through
// personnel so imported and hand-entered records obey the same rules.
func NewImportService(cfg *config.ImportConfig, personnel PersonnelService, logger *zap.Logger) ImportService {
	return &importService{cfg: cfg, personnel: personnel, logger: logger}
}

// ────────────────────── Preview ──────────────────────

// Preview reads and validates the workbook. Nothing is stored.
func (s *importService) Preview(_ context.Context, filename string, data []byte) (*dto.ImportPreviewResponse, error) {
	raw, err := workbook.Read(data, s.cfg.MaxRows)
	if err != nil {
		s.logger.Info("import file rejected", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}
	if len(raw) == 0 {
		return nil, ErrImportEmpty
	}

	rows := workbook.ValidateRows(raw, s.cfg.StrictNationalID)
	valid, invalid := workbook.Count(rows)

	s.logger.Info("import preview",
		zap.String("filename", filename),
		zap.Int("total", len(rows)),
		zap.Int("valid", valid),
		zap.Int("invalid", invalid),
	)

	return &dto.ImportPreviewResponse{
		Filename: filename,
		Total:    len(rows),
		Valid:    valid,
		Invalid:  invalid,
		Rows:     rows,
	}, nil
}

// ────────────────────── Commit ──────────────────────

// Commit re-validates the reviewed rows and submits the valid ones in order.
// Rows already stored are kept when a later row fails.
func (s *importService) Commit(ctx context.Context, req *dto.ImportCommitRequest, callerID string) (*workbook.Result, error) {
	if len(req.Rows) > s.cfg.MaxRows {
		return nil, &workbook.ParseError{Reason: "too many rows", Err: workbook.ErrTooManyRows}
	}

	rows := workbook.ValidateRows(req.Rows, s.cfg.StrictNationalID)
	orch := workbook.NewOrchestrator(workbook.SubmitterFunc(func(ctx context.Context, rec *workbook.Record) error {
		_, err := s.personnel.Create(ctx, dto.FromRecord(rec), callerID)
		return err
	}), s.logger)

	s.logger.Info("import commit started", zap.String("by", callerID), zap.Int("rows", len(rows)))
	return orch.Run(ctx, rows), nil
}

// ────────────────────── Template ──────────────────────

func (s *importService) Template() (*bytes.Buffer, string, error) {
	buf, err := workbook.WriteTemplate()
	if err != nil {
		s.logger.Error("build import template failed", zap.Error(err))
		return nil, "", err
	}
	return buf, workbook.TemplateFilename, nil
}
