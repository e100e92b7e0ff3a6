package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spigell/career-compass/internal/mentors"
)

const (
	columnJobTitle       = "job_title"
	columnName           = "name"
	columnSpecialization = "specialization"
	columnExperience     = "experience"
	columnContact        = "contact"

	missingCell = "-"
	unknownName = "Unknown"
)

type table struct {
	columns map[string]int
	rows    [][]string
}

func readTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return &table{columns: map[string]int{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	t := &table{columns: make(map[string]int, len(header))}
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := t.columns[name]; !dup {
			t.columns[name] = i
		}
	}

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	t.rows = rows
	return t, nil
}

func (t *table) cell(row []string, column string) string {
	i, ok := t.columns[column]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) require(column string) error {
	if len(t.rows) == 0 {
		return nil
	}
	if _, ok := t.columns[column]; !ok {
		return fmt.Errorf("missing %q column", column)
	}
	return nil
}

// ReadCareers returns the job_title column of a career dataset. Blank titles
// are skipped.
func ReadCareers(r io.Reader) ([]string, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(columnJobTitle); err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(t.rows))
	for _, row := range t.rows {
		if title := t.cell(row, columnJobTitle); title != "" {
			titles = append(titles, title)
		}
	}
	return titles, nil
}

// ReadMentors parses a mentor roster. Missing cells become "-" and a missing
// name becomes "Unknown".
func ReadMentors(r io.Reader) ([]mentors.Mentor, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := t.require(columnJobTitle); err != nil {
		return nil, err
	}

	roster := make([]mentors.Mentor, 0, len(t.rows))
	for _, row := range t.rows {
		roster = append(roster, mentors.Mentor{
			JobTitle:       t.cell(row, columnJobTitle),
			Name:           orDefault(t.cell(row, columnName), unknownName),
			Specialization: orDefault(t.cell(row, columnSpecialization), missingCell),
			Experience:     orDefault(t.cell(row, columnExperience), missingCell),
			Contact:        orDefault(t.cell(row, columnContact), missingCell),
		})
	}
	return roster, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
