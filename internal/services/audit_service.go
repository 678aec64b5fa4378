package services

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"phonelister/internal/domain"
	"phonelister/internal/repos"
)

const logSheet = "Listing Logs"

type AuditService struct {
	Logs  *repos.ListingLogRepo
	Limit int
	Loc   *time.Location
}

func NewAuditService(logs *repos.ListingLogRepo, limit int, loc *time.Location) *AuditService {
	if loc == nil {
		loc = time.UTC
	}
	return &AuditService{Logs: logs, Limit: limit, Loc: loc}
}

// Latest returns the newest listing attempts, capped at the configured limit.
func (s *AuditService) Latest() ([]domain.ListingLog, error) {
	return s.Logs.Latest(s.Limit)
}

// ExportXLSX writes the latest attempts as a single-sheet workbook.
func (s *AuditService) ExportXLSX(w io.Writer) error {
	logs, err := s.Latest()
	if err != nil {
		return err
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetSheetName("Sheet1", logSheet); err != nil {
		return err
	}

	header := []any{"Time", "Phone", "Platform", "Success", "Message", "Attempted Price", "Fee", "Override"}
	if err := f.SetSheetRow(logSheet, "A1", &header); err != nil {
		return err
	}
	for i, l := range logs {
		row := []any{
			domain.FormatTimestamp(l.CreatedAt, s.Loc),
			l.PhoneID,
			l.Platform.String(),
			l.Success,
			l.Message,
			nullable(l.AttemptedPrice.Float64, l.AttemptedPrice.Valid),
			nullable(l.Fee.Float64, l.Fee.Valid),
			l.Override,
		}
		if err := f.SetSheetRow(logSheet, fmt.Sprintf("A%d", i+2), &row); err != nil {
			return err
		}
	}
	_, err = f.WriteTo(w)
	return err
}

func nullable(v float64, ok bool) any {
	if !ok {
		return ""
	}
	return v
}
