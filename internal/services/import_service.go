package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"phonelister/internal/domain"
	"phonelister/internal/repos"
	"phonelister/internal/validate"
)

// maxReportedErrors caps how many row errors a response carries.
const maxReportedErrors = 10

type ImportService struct {
	Phones *repos.PhoneRepo
}

func NewImportService(phones *repos.PhoneRepo) *ImportService {
	return &ImportService{Phones: phones}
}

// ImportResult summarises a CSV import. Created is zero unless every row
// was valid.
type ImportResult struct {
	Created int
	Valid   int
	Errors  []string
}

func (r ImportResult) Message() string {
	if len(r.Errors) > 0 {
		return fmt.Sprintf("Import rejected: %d rows failed, nothing was saved", len(r.Errors))
	}
	return fmt.Sprintf("Successfully imported %d phones", r.Created)
}

// ReportedErrors is the head of Errors shown to callers.
func (r ImportResult) ReportedErrors() []string {
	if len(r.Errors) > maxReportedErrors {
		return r.Errors[:maxReportedErrors]
	}
	return r.Errors
}

// Import reads a headed CSV of phones. Rows are numbered from 2 since the
// header is row 1. Nothing is written unless every row is valid.
func (s *ImportService) Import(r io.Reader) (ImportResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return ImportResult{}, nil
	}
	if err != nil {
		return ImportResult{Errors: []string{"File processing error: " + err.Error()}}, nil
	}
	cols := map[string]int{}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		cols[h] = i
	}

	var res ImportResult
	var rows []domain.Phone
	for rowNum := 2; ; rowNum++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			res.Errors = append(res.Errors, "File processing error: "+err.Error())
			break
		}
		cell := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(validate.Sanitize(rec[i]))
		}
		p, err := phoneFromRow(cell)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		rows = append(rows, p)
	}
	res.Valid = len(rows)
	if len(res.Errors) > 0 || len(rows) == 0 {
		return res, nil
	}

	tx, err := s.Phones.Begin()
	if err != nil {
		return res, err
	}
	defer func() { _ = tx.Rollback() }()
	for i := range rows {
		if err := s.Phones.CreateTx(tx, &rows[i]); err != nil {
			return res, fmt.Errorf("insert phone %d: %w", i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return res, err
	}
	res.Created = len(rows)
	return res, nil
}

func phoneFromRow(cell func(string) string) (domain.Phone, error) {
	for _, f := range []string{"brand", "model_name", "condition", "base_price"} {
		if cell(f) == "" {
			return domain.Phone{}, fmt.Errorf("Missing required field: %s", f)
		}
	}
	price, err := strconv.ParseFloat(cell("base_price"), 64)
	if err != nil {
		return domain.Phone{}, fmt.Errorf("Invalid base_price %q", cell("base_price"))
	}
	if !(price > 0) || price > 1e12 {
		return domain.Phone{}, errors.New("Base price must be greater than 0")
	}
	stock := 0
	if raw := cell("stock_quantity"); raw != "" {
		if stock, err = strconv.Atoi(raw); err != nil {
			return domain.Phone{}, fmt.Errorf("Invalid stock_quantity %q", raw)
		}
	}
	if stock < 0 {
		return domain.Phone{}, errors.New("Stock quantity cannot be negative")
	}
	cond, ok := validate.Condition(cell("condition"))
	if !ok {
		return domain.Phone{}, fmt.Errorf("Invalid condition %q", cell("condition"))
	}

	in := validate.PhoneInput{
		Brand:         cell("brand"),
		ModelName:     cell("model_name"),
		Condition:     string(cond),
		Storage:       cell("storage"),
		Color:         cell("color"),
		BasePrice:     price,
		StockQuantity: stock,
		Discontinued:  truthy(cell("discontinued")),
		Tags:          cell("tags"),
	}
	if err := validate.Phone(in); err != nil {
		return domain.Phone{}, err
	}
	return phoneFromInput(domain.Phone{}, in), nil
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "true", "1", "yes":
		return true
	}
	return false
}
