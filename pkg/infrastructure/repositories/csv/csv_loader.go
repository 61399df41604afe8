package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vsinha/faraid/pkg/application/dto"
)

var (
	heirsHeader = []string{"category_id", "quantity", "blocking_reason", "status"}
	batchHeader = []string{"problem", "estate", "category_id", "quantity", "blocking_reason", "status"}
)

// Loader handles loading heir requests from CSV files
type Loader struct{}

// NewLoader creates a new CSV loader
func NewLoader() *Loader {
	return &Loader{}
}

// LoadHeirs loads heir lines from a CSV file
func (l *Loader) LoadHeirs(filename string) ([]dto.HeirLine, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open heirs file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadHeirs(file)
}

// ReadHeirs reads heir lines with the header category_id,quantity,blocking_reason,status
func (l *Loader) ReadHeirs(r io.Reader) ([]dto.HeirLine, error) {
	records, err := readRecords(r, "heirs", heirsHeader)
	if err != nil {
		return nil, err
	}

	lines := make([]dto.HeirLine, 0, len(records))
	for i, record := range records {
		line, err := parseHeirLine(record)
		if err != nil {
			return nil, fmt.Errorf("heirs CSV row %d: %w", i+2, err)
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// LoadBatch loads several problems from one CSV file. Rows sharing a problem
// name form one problem; problems keep the order of their first row.
func (l *Loader) LoadBatch(filename string) (*dto.BatchRequest, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file %s: %w", filename, err)
	}
	defer file.Close()

	return l.ReadBatch(file)
}

// ReadBatch reads problems with the header problem,estate,category_id,quantity,blocking_reason,status
func (l *Loader) ReadBatch(r io.Reader) (*dto.BatchRequest, error) {
	records, err := readRecords(r, "batch", batchHeader)
	if err != nil {
		return nil, err
	}

	batch := &dto.BatchRequest{}
	index := make(map[string]int)
	for i, record := range records {
		name := strings.TrimSpace(record[0])
		if name == "" {
			return nil, fmt.Errorf("batch CSV row %d: problem name cannot be empty", i+2)
		}
		estate := strings.TrimSpace(record[1])

		line, err := parseHeirLine(record[2:])
		if err != nil {
			return nil, fmt.Errorf("batch CSV row %d: %w", i+2, err)
		}

		pos, exists := index[name]
		if !exists {
			pos = len(batch.Problems)
			index[name] = pos
			batch.Problems = append(batch.Problems, dto.CalculationRequest{Name: name, Estate: estate})
		} else if estate != "" && estate != batch.Problems[pos].Estate {
			return nil, fmt.Errorf("batch CSV row %d: problem %s has conflicting estates %s and %s",
				i+2, name, batch.Problems[pos].Estate, estate)
		}
		batch.Problems[pos].Heirs = append(batch.Problems[pos].Heirs, line)
	}
	return batch, nil
}

// readRecords returns the data rows after checking the header and column counts
func readRecords(r io.Reader, kind string, expectedHeader []string) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", kind, err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("%s CSV must have header and at least one data row", kind)
	}

	header := records[0]
	if !validateHeader(header, expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", kind, expectedHeader, header)
	}

	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", kind, i+2, len(expectedHeader), len(record))
		}
	}
	return records[1:], nil
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseHeirLine(record []string) (dto.HeirLine, error) {
	categoryID, err := strconv.Atoi(strings.TrimSpace(record[0]))
	if err != nil {
		return dto.HeirLine{}, fmt.Errorf("invalid category_id: %s", record[0])
	}

	quantity, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return dto.HeirLine{}, fmt.Errorf("invalid quantity: %s", record[1])
	}

	return dto.HeirLine{
		CategoryID:     categoryID,
		Quantity:       quantity,
		BlockingReason: strings.TrimSpace(record[2]),
		Status:         strings.TrimSpace(record[3]),
	}, nil
}
