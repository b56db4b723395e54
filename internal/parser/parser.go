// Package parser reads battery cycle-tester exports (CSV or xlsx) into raw
// sample rows and groups them by battery identifier. Only the five columns
// the pipeline consumes are kept; reported capacity, energy, resistance,
// temperature and step columns are dropped here so the core never sees them.
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "battcli/internal/errors"
	"battcli/pkg/contracts/domain"
)

// Required columns of an instrument export, keyed by canonical name.
// Matching is case-insensitive and tolerates the unit suffixes the common
// testers emit, e.g. "Test_Time(s)" and "test_time" both map to test_time.
var requiredColumns = map[string][]string{
	"battery_id":  {"battery_id", "cell_id", "battery"},
	"test_time":   {"test_time(s)", "test_time", "test time (s)"},
	"cycle_index": {"cycle_index", "cycle index", "cycle"},
	"current":     {"current(a)", "current", "current (a)"},
	"voltage":     {"voltage(v)", "voltage", "voltage (v)"},
}

// Parser reads instrument exports into RawSamples.
type Parser struct {
	logger *slog.Logger
}

// NewParser creates a parser. A nil logger falls back to slog.Default().
func NewParser(logger *slog.Logger) *Parser {
	if logger == nil {
		logger = slog.Default()
	}
	return &Parser{logger: logger}
}

// ParseFile dispatches on the file extension (.csv, .xlsx).
func (p *Parser) ParseFile(path string) ([]domain.RawSample, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return p.ParseCSV(path)
	case ".xlsx":
		return p.ParseXLSX(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", path)
	}
}

// ParseCSV reads a CSV export. Rows with missing or non-numeric required
// fields are dropped with a warning; the rest of the file continues.
func (p *Parser) ParseCSV(path string) ([]domain.RawSample, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%s: %w", path, apperrors.ErrEmptyFile)
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	var samples []domain.RawSample
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			p.logger.Warn("dropping unreadable csv row",
				"file", filepath.Base(path), "line", line, "error", err)
			continue
		}

		sample, rowErr := parseRow(record, columns, filepath.Base(path), line)
		if rowErr != nil {
			p.logger.Warn("dropping malformed row", "error", rowErr)
			continue
		}
		samples = append(samples, sample)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", path, apperrors.ErrEmptyFile)
	}
	return samples, nil
}

// ParseXLSX reads an xlsx export. The first sheet containing a recognizable
// header row is used.
func (p *Parser) ParseXLSX(path string) ([]domain.RawSample, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open xlsx file: %w", err)
	}
	defer f.Close()

	var rows [][]string
	var columns map[string]int
	headerRow := -1

	for _, sheet := range f.GetSheetList() {
		sheetRows, err := f.GetRows(sheet)
		if err != nil || len(sheetRows) == 0 {
			continue
		}
		// The header is not always the first row; some testers emit
		// metadata banners above it.
		for i, row := range sheetRows {
			if i > 10 {
				break
			}
			if cols, err := mapColumns(row); err == nil {
				rows = sheetRows
				columns = cols
				headerRow = i
				break
			}
		}
		if headerRow >= 0 {
			break
		}
	}

	if headerRow < 0 {
		return nil, fmt.Errorf("%s: %w", path, apperrors.ErrMissingColumn)
	}

	var samples []domain.RawSample
	for i := headerRow + 1; i < len(rows); i++ {
		sample, rowErr := parseRow(rows[i], columns, filepath.Base(path), i+1)
		if rowErr != nil {
			p.logger.Warn("dropping malformed row", "error", rowErr)
			continue
		}
		samples = append(samples, sample)
	}

	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", path, apperrors.ErrEmptyFile)
	}
	return samples, nil
}

// GroupByBattery partitions samples by battery identifier and sorts each
// group by test time. The sort is stable so samples with equal timestamps
// keep their file order.
func GroupByBattery(samples []domain.RawSample) map[string][]domain.RawSample {
	groups := make(map[string][]domain.RawSample)
	for _, s := range samples {
		groups[s.BatteryID] = append(groups[s.BatteryID], s)
	}
	for _, group := range groups {
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].TestTimeS < group[j].TestTimeS
		})
	}
	return groups
}

// BatteryIDs returns the group keys in deterministic order.
func BatteryIDs(groups map[string][]domain.RawSample) []string {
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// mapColumns locates the required columns in a header row.
func mapColumns(header []string) (map[string]int, error) {
	normalized := make(map[string]int, len(header))
	for i, h := range header {
		normalized[strings.ToLower(strings.TrimSpace(h))] = i
	}

	columns := make(map[string]int, len(requiredColumns))
	for canonical, aliases := range requiredColumns {
		found := false
		for _, alias := range aliases {
			if idx, ok := normalized[alias]; ok {
				columns[canonical] = idx
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrMissingColumn, canonical)
		}
	}
	return columns, nil
}

// parseRow converts one data row into a RawSample.
func parseRow(record []string, columns map[string]int, file string, line int) (domain.RawSample, error) {
	cell := func(name string) (string, error) {
		idx := columns[name]
		if idx >= len(record) {
			return "", fmt.Errorf("missing column %s", name)
		}
		v := strings.TrimSpace(record[idx])
		if v == "" {
			return "", fmt.Errorf("empty %s", name)
		}
		return v, nil
	}

	number := func(name string) (float64, error) {
		raw, err := cell(name)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil {
			return 0, err
		}
		return v, nil
	}

	batteryID, err := cell("battery_id")
	if err != nil {
		return domain.RawSample{}, apperrors.NewRowError(file, line, "battery_id", err)
	}
	testTime, err := number("test_time")
	if err != nil {
		return domain.RawSample{}, apperrors.NewRowError(file, line, "test_time", err)
	}
	cycleIndex, err := number("cycle_index")
	if err != nil {
		return domain.RawSample{}, apperrors.NewRowError(file, line, "cycle_index", err)
	}
	current, err := number("current")
	if err != nil {
		return domain.RawSample{}, apperrors.NewRowError(file, line, "current", err)
	}
	voltage, err := number("voltage")
	if err != nil {
		return domain.RawSample{}, apperrors.NewRowError(file, line, "voltage", err)
	}

	return domain.RawSample{
		BatteryID:  batteryID,
		TestTimeS:  testTime,
		CycleIndex: cycleIndex,
		CurrentA:   current,
		VoltageV:   voltage,
	}, nil
}
