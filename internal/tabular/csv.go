package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ReadOptions controls CSV ingestion.
type ReadOptions struct {
	// TrimCells trims surrounding whitespace from every header and cell.
	TrimCells bool
	// KeepBlankRows keeps rows whose cells are all empty. By default blank
	// rows are filtered out before the table reaches the engine.
	KeepBlankRows bool
}

// ReadCSV parses a header row plus data rows. Ragged records are rejected by
// the csv reader, matching the engine's rectangularity requirement.
func ReadCSV(r io.Reader, opts ReadOptions) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 0

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrNoHeader
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	if opts.TrimCells {
		trimCells(headers)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if opts.TrimCells {
			trimCells(record)
		}
		if !opts.KeepBlankRows && isBlankRow(record) {
			continue
		}
		rows = append(rows, record)
	}

	return New(headers, rows)
}

// ReadCSVFile reads a table from a CSV file on disk.
func ReadCSVFile(path string, opts ReadOptions) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table: %w", err)
	}
	defer file.Close()

	table, err := ReadCSV(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

func trimCells(cells []string) {
	for i, cell := range cells {
		cells[i] = strings.TrimSpace(cell)
	}
}
