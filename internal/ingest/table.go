package ingest

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ColumnType is the inferred type of a CSV column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt
	TypeFloat
)

func (t ColumnType) String() string {
	switch t {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	default:
		return "string"
	}
}

// Numeric reports whether the column can be charted.
func (t ColumnType) Numeric() bool {
	return t == TypeInt || t == TypeFloat
}

// Column describes one header of a Table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is a parsed CSV file. Short rows are padded to the header width;
// longer rows are rejected.
type Table struct {
	Columns []Column
	Rows    [][]string
}

// LoadTable parses CSV bytes with a header row and infers column types.
// A column is numeric when every non-empty cell parses as a number and at
// least one cell is non-empty.
func LoadTable(data []byte) (*Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	t := &Table{Columns: make([]Column, len(header))}
	for i, h := range header {
		t.Columns[i] = Column{Name: strings.TrimSpace(h)}
	}

	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv: %w", err)
		}
		if len(rec) > len(header) {
			line, _ := r.FieldPos(0)
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(header), line, len(rec))
		}
		row := make([]string, len(header))
		copy(row, rec)
		t.Rows = append(t.Rows, row)
	}

	for i := range t.Columns {
		t.Columns[i].Type = t.inferType(i)
	}
	return t, nil
}

func (t *Table) inferType(col int) ColumnType {
	typ := TypeInt
	seen := false
	for _, row := range t.Rows {
		cell := strings.TrimSpace(row[col])
		if cell == "" {
			continue
		}
		seen = true
		if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err == nil {
			typ = TypeFloat
			continue
		}
		return TypeString
	}
	if !seen {
		return TypeString
	}
	return typ
}

// NumericColumns returns the names of numeric columns in header order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.Columns {
		if c.Type.Numeric() {
			out = append(out, c.Name)
		}
	}
	return out
}

// ColumnIndex returns the position of name, or -1.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Series returns the values of a numeric column. Missing cells are NaN.
func (t *Table) Series(name string) ([]float64, error) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	if !t.Columns[i].Type.Numeric() {
		return nil, fmt.Errorf("column %q is not numeric", name)
	}

	out := make([]float64, len(t.Rows))
	for j, row := range t.Rows {
		cell := strings.TrimSpace(row[i])
		if cell == "" {
			out[j] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, j+1, err)
		}
		out[j] = v
	}
	return out, nil
}

// Head returns up to n rows for preview.
func (t *Table) Head(n int) [][]string {
	if n >= len(t.Rows) || n < 0 {
		return t.Rows
	}
	return t.Rows[:n]
}

// Headers returns the column names.
func (t *Table) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}
