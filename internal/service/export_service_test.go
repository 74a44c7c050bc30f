package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"police-personnel/internal/dto"
	"police-personnel/internal/model"
	"police-personnel/internal/workbook"
)

func TestExportService_ExportPersonnel(t *testing.T) {
	repo, m := newMockRepository()
	svc := NewExportService(repo, zap.NewNop()).(*exportService)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	birth := time.Date(1985, 6, 15, 0, 0, 0, 0, time.UTC)
	m.personnel.records["p-1"] = &model.Personnel{
		PersonnelID: "p-1",
		FullName:    strPtr("สมชาย ใจดี"),
		Position:    strPtr("ผกก."),
		BirthDate:   &birth,
	}
	m.personnel.records["p-2"] = &model.Personnel{PersonnelID: "p-2", PosCodeID: intPtr(7)}

	buf, name, err := svc.ExportPersonnel(context.Background(), &dto.PersonnelListRequest{})
	require.NoError(t, err)
	assert.Equal(t, "personnel_2026-03-01.xlsx", name)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(workbook.ExportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, workbook.Headers(), rows[0])

	ageCol := -1
	for i, h := range rows[0] {
		if h == workbook.HeaderAge {
			ageCol = i
		}
	}
	require.GreaterOrEqual(t, ageCol, 0)
	assert.Equal(t, "40", rows[1][ageCol])
}
