package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/vsinha/faraid/pkg/application/dto"
	"github.com/vsinha/faraid/pkg/domain/entities"
)

var heirHeader = []string{
	"category_id", "category", "quantity", "fraction", "share_count",
	"blocked", "amount", "amount_each", "justification",
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := writer.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

func heirRow(h dto.HeirResult) []string {
	return []string{
		strconv.Itoa(h.CategoryID),
		h.Category,
		strconv.Itoa(h.Quantity),
		h.FractionLabel,
		strconv.FormatInt(h.ShareCount, 10),
		strconv.FormatBool(h.Blocked),
		h.Amount,
		h.AmountEach,
		h.Justification,
	}
}

func csvCalculation(w io.Writer, r dto.CalculationResult) error {
	rows := make([][]string, 0, len(r.Heirs))
	for _, h := range r.Heirs {
		rows = append(rows, heirRow(h))
	}
	return writeCSV(w, heirHeader, rows)
}

func csvBatch(w io.Writer, r dto.BatchResult) error {
	header := append([]string{"problem", "base_number_final", "status"}, heirHeader...)
	var rows [][]string
	for _, p := range r.Problems {
		for _, h := range p.Result.Heirs {
			prefix := []string{p.Name, strconv.FormatInt(p.Result.BaseNumberFinal, 10), p.Result.Status}
			rows = append(rows, append(prefix, heirRow(h)...))
		}
	}
	return writeCSV(w, header, rows)
}

func csvComparison(w io.Writer, r dto.ScenarioComparisonResult) error {
	header := []string{"category_id", "category", "quantity"}
	for _, s := range r.Scenarios {
		header = append(header, s.Name)
	}
	header = append(header, "minimum")

	rows := make([][]string, 0, len(r.Certain)+1)
	for _, c := range r.Certain {
		row := []string{strconv.Itoa(c.CategoryID), c.Category, strconv.Itoa(c.Quantity)}
		row = append(row, c.PerScenario...)
		rows = append(rows, append(row, c.Minimum))
	}
	suspended := make([]string, len(header))
	suspended[1] = "suspended"
	suspended[len(header)-1] = r.Suspended
	rows = append(rows, suspended)
	return writeCSV(w, header, rows)
}

func csvChain(w io.Writer, r dto.ChainResult) error {
	header := []string{"problem", "category_id", "category", "quantity", "share_count", "amount", "amount_each"}
	rows := make([][]string, 0, len(r.Shares))
	for _, s := range r.Shares {
		rows = append(rows, []string{
			strconv.Itoa(s.Problem),
			strconv.Itoa(s.CategoryID),
			s.Category,
			strconv.Itoa(s.Quantity),
			strconv.FormatInt(s.ShareCount, 10),
			s.Amount,
			s.AmountEach,
		})
	}
	return writeCSV(w, header, rows)
}

func csvHeirs(w io.Writer, categories []*entities.HeirCategoryInfo) error {
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{
			strconv.Itoa(int(c.Category)),
			c.DisplayName,
			c.ArabicName,
			c.Sex.String(),
			strconv.FormatInt(c.Weight, 10),
		})
	}
	return writeCSV(w, []string{"category_id", "name", "arabic_name", "sex", "residuary_weight"}, rows)
}

func csvAudit(w io.Writer, records []AuditRecord) error {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{strconv.Itoa(r.Version), r.Type, r.Timestamp, describe(r.Data)})
	}
	return writeCSV(w, []string{"version", "type", "timestamp", "data"}, rows)
}
