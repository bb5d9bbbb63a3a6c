package businessflow

import (
	"context"
	"strconv"
	"time"

	"github.com/ilmi-school/landing-analytics/models"
	"github.com/ilmi-school/landing-analytics/repository"
	"github.com/xuri/excelize/v2"
)

// LeadExportFlow builds an Excel workbook of captured leads for operators.
// The admin data grid itself lives outside this service; this flow only
// serves bulk download.
type LeadExportFlow interface {
	ExportLeads(ctx context.Context, kind string) (string, []byte, error)
}

type LeadExportFlowImpl struct {
	freeLessonRepo repository.FreeLessonLeadRepository
	failedLeadRepo repository.FailedLeadRepository
}

func NewLeadExportFlow(freeLessonRepo repository.FreeLessonLeadRepository, failedLeadRepo repository.FailedLeadRepository) LeadExportFlow {
	return &LeadExportFlowImpl{freeLessonRepo: freeLessonRepo, failedLeadRepo: failedLeadRepo}
}

// ExportLeads returns a filename and xlsx bytes for the requested lead kind
// ("free-lesson" or "failed"), newest first.
func (f *LeadExportFlowImpl) ExportLeads(ctx context.Context, kind string) (string, []byte, error) {
	switch kind {
	case "free-lesson":
		return f.exportFreeLessonLeads(ctx)
	case "failed":
		return f.exportFailedLeads(ctx)
	default:
		return "", nil, ErrUnknownLeadKind
	}
}

func (f *LeadExportFlowImpl) exportFreeLessonLeads(ctx context.Context) (string, []byte, error) {
	rows, err := f.freeLessonRepo.ByFilter(ctx, models.FreeLessonLeadFilter{}, "created_at DESC", 0, 0)
	if err != nil {
		return "", nil, NewBusinessError("LEAD_EXPORT_FAILED", "Failed to load free lesson leads", err)
	}
	if len(rows) == 0 {
		return "", nil, ErrNoLeadsToExport
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	header := []string{"id", "session_id", "course_slug", "full_name", "phone", "source", "is_valid_number", "created_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, r := range rows {
		sessionID := ""
		if r.SessionID != nil {
			sessionID = strconv.FormatUint(uint64(*r.SessionID), 10)
		}
		record := []string{
			r.ID.String(),
			sessionID,
			r.CourseSlug,
			r.FullName,
			r.Phone,
			r.Source,
			strconv.FormatBool(r.IsValidNumber),
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return "free_lesson_leads.xlsx", buf.Bytes(), nil
}

func (f *LeadExportFlowImpl) exportFailedLeads(ctx context.Context) (string, []byte, error) {
	rows, err := f.failedLeadRepo.ByFilter(ctx, models.FailedLeadFilter{}, "created_at DESC", 0, 0)
	if err != nil {
		return "", nil, NewBusinessError("LEAD_EXPORT_FAILED", "Failed to load failed leads", err)
	}
	if len(rows) == 0 {
		return "", nil, ErrNoLeadsToExport
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	sheet := xl.GetSheetName(0)
	header := []string{"id", "session_id", "course_slug", "full_name", "phone", "event", "created_at"}
	_ = xl.SetSheetRow(sheet, "A1", &header)

	for ri, r := range rows {
		sessionID := ""
		if r.SessionID != nil {
			sessionID = strconv.FormatUint(uint64(*r.SessionID), 10)
		}
		record := []string{
			r.ID.String(),
			sessionID,
			r.CourseSlug,
			r.FullName,
			r.Phone,
			r.Event,
			r.CreatedAt.UTC().Format(time.RFC3339),
		}
		cellRef, _ := excelize.CoordinatesToCellName(1, ri+2)
		_ = xl.SetSheetRow(sheet, cellRef, &record)
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return "", nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}
	return "failed_leads.xlsx", buf.Bytes(), nil
}
