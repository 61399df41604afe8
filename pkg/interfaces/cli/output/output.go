package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vsinha/faraid/pkg/application/dto"
	"github.com/vsinha/faraid/pkg/domain/entities"
	"github.com/vsinha/faraid/pkg/infrastructure/events"
)

// Config holds configuration for output generation
type Config struct {
	Format string
	// Dir receives one file per result when set; otherwise output goes to Out
	Dir string
	// Out defaults to os.Stdout
	Out io.Writer
}

func (c Config) writer() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// emit writes through fn either to the configured writer or to Dir/name.ext
func emit(config Config, name string, fn func(w io.Writer) error) error {
	if config.Dir == "" {
		return fn(config.writer())
	}

	if err := os.MkdirAll(config.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.Dir, name+"."+extension(config.Format))
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	fmt.Fprintf(config.writer(), "Results saved to: %s\n", filename)
	return nil
}

func extension(format string) string {
	if format == "text" {
		return "txt"
	}
	return format
}

func writeJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

func unsupported(format string) error {
	return fmt.Errorf("unsupported output format: %s", format)
}

// Calculation renders a single calculation
func Calculation(result dto.CalculationResult, config Config) error {
	return emit(config, "faraid_result", func(w io.Writer) error {
		switch config.Format {
		case "text":
			return textCalculation(w, result)
		case "json":
			return writeJSON(w, result)
		case "csv":
			return csvCalculation(w, result)
		default:
			return unsupported(config.Format)
		}
	})
}

// Comparison renders a suspended-share comparison
func Comparison(result dto.ScenarioComparisonResult, config Config) error {
	return emit(config, "faraid_mauquf", func(w io.Writer) error {
		switch config.Format {
		case "text":
			return textComparison(w, result)
		case "json":
			return writeJSON(w, result)
		case "csv":
			return csvComparison(w, result)
		default:
			return unsupported(config.Format)
		}
	})
}

// Chain renders a chained-succession result
func Chain(result dto.ChainResult, config Config) error {
	return emit(config, "faraid_munasakhot", func(w io.Writer) error {
		switch config.Format {
		case "text":
			return textChain(w, result)
		case "json":
			return writeJSON(w, result)
		case "csv":
			return csvChain(w, result)
		default:
			return unsupported(config.Format)
		}
	})
}

// Batch renders the results of a simultaneous-death batch
func Batch(result dto.BatchResult, config Config) error {
	return emit(config, "faraid_gharqa", func(w io.Writer) error {
		switch config.Format {
		case "text":
			for i, p := range result.Problems {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, headingStyle.Render("Problem: "+p.Name))
				if err := textCalculation(w, p.Result); err != nil {
					return err
				}
			}
			return nil
		case "json":
			return writeJSON(w, result)
		case "csv":
			return csvBatch(w, result)
		default:
			return unsupported(config.Format)
		}
	})
}

// HeirDirectory renders the known heir categories
func HeirDirectory(categories []*entities.HeirCategoryInfo, config Config) error {
	return emit(config, "faraid_heirs", func(w io.Writer) error {
		switch config.Format {
		case "text":
			return textHeirs(w, categories)
		case "json":
			type row struct {
				ID         int    `json:"category_id"`
				Name       string `json:"name"`
				ArabicName string `json:"arabic_name"`
				Sex        string `json:"sex"`
				Weight     int64  `json:"residuary_weight"`
			}
			rows := make([]row, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, row{int(c.Category), c.DisplayName, c.ArabicName, c.Sex.String(), c.Weight})
			}
			return writeJSON(w, rows)
		case "csv":
			return csvHeirs(w, categories)
		default:
			return unsupported(config.Format)
		}
	})
}

// AuditRecord is the serialized form of one audit event
type AuditRecord struct {
	Version   int         `json:"version"`
	Type      string      `json:"type"`
	Timestamp string      `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// Audit renders the event stream of a calculation
func Audit(stream []events.Event, config Config) error {
	records := make([]AuditRecord, 0, len(stream))
	for _, e := range stream {
		records = append(records, AuditRecord{
			Version:   e.Version(),
			Type:      e.Type(),
			Timestamp: e.Timestamp().Format("2006-01-02T15:04:05.000Z07:00"),
			Data:      e.Data(),
		})
	}
	return emit(config, "faraid_audit", func(w io.Writer) error {
		switch config.Format {
		case "text":
			return textAudit(w, records)
		case "json":
			return writeJSON(w, records)
		case "csv":
			return csvAudit(w, records)
		default:
			return unsupported(config.Format)
		}
	})
}
