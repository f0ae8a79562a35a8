package verify

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/samber/lo"

	"github.com/sarchlab/rvstat/stats"
)

// ErrBadResults is returned when a results table cannot be read back.
var ErrBadResults = errors.New("bad results table")

// Row is the comparison of one baseline/modified pair.
type Row struct {
	Name     string
	Baseline stats.Stats
	Modified stats.Stats
}

// Record returns the CSV fields of the row.
func (r Row) Record() []string {
	fields := []string{r.Name}
	for _, v := range append(r.Baseline.Values(), r.Modified.Values()...) {
		fields = append(fields, strconv.Itoa(v))
	}
	return fields
}

// Header returns the CSV header row.
func Header() []string {
	prefixed := func(prefix string) []string {
		return lo.Map(stats.Labels(), func(l string, _ int) string {
			return prefix + l
		})
	}

	h := []string{"name"}
	h = append(h, prefixed("baseline_")...)
	h = append(h, prefixed("modified_")...)
	return h
}

// WriteResultsCSV writes the header and one record per row.
func WriteResultsCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header()); err != nil {
		return err
	}

	for _, r := range rows {
		if err := cw.Write(r.Record()); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveResultsCSV writes the table to a file.
func SaveResultsCSV(filename string, rows []Row) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create results file: %w", err)
	}

	if err := WriteResultsCSV(file, rows); err != nil {
		file.Close()
		return fmt.Errorf("failed to write results file: %w", err)
	}

	return file.Close()
}

// ReadResultsCSV reads a table written by WriteResultsCSV.
func ReadResultsCSV(r io.Reader) ([]Row, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResults, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrBadResults)
	}

	if strings.Join(records[0], ",") != strings.Join(Header(), ",") {
		return nil, fmt.Errorf("%w: unexpected header %v", ErrBadResults, records[0])
	}

	n := len(stats.Labels())
	rows := make([]Row, 0, len(records)-1)
	for i, rec := range records[1:] {
		values := make([]int, 0, 2*n)
		for _, field := range rec[1:] {
			v, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("%w: record %d: %v", ErrBadResults, i+1, err)
			}
			values = append(values, v)
		}

		baseline, ok1 := stats.FromValues(values[:n])
		modified, ok2 := stats.FromValues(values[n:])
		if !ok1 || !ok2 {
			return nil, fmt.Errorf("%w: record %d has %d values", ErrBadResults, i+1, len(values))
		}

		rows = append(rows, Row{Name: rec[0], Baseline: baseline, Modified: modified})
	}

	return rows, nil
}

// WriteReport writes a human-readable comparison table with a delta column
// per metric.
func WriteReport(w io.Writer, rows []Row) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetTitle("Baseline vs modified")

	header := table.Row{"Name"}
	for _, l := range stats.Labels() {
		header = append(header, "baseline "+l, "modified "+l, "delta")
	}
	t.AppendHeader(header)

	var totalBase, totalMod []int
	for _, r := range rows {
		row := table.Row{r.Name}
		base, mod := r.Baseline.Values(), r.Modified.Values()
		for i := range base {
			row = append(row, base[i], mod[i], fmt.Sprintf("%+d", mod[i]-base[i]))
		}
		t.AppendRow(row)

		totalBase = addInts(totalBase, base)
		totalMod = addInts(totalMod, mod)
	}

	footer := table.Row{fmt.Sprintf("%d pairs", len(rows))}
	for i := range stats.Labels() {
		b, m := at(totalBase, i), at(totalMod, i)
		footer = append(footer, b, m, fmt.Sprintf("%+d", m-b))
	}
	t.AppendFooter(footer)

	t.Render()
}

func addInts(acc, v []int) []int {
	if acc == nil {
		acc = make([]int, len(v))
	}
	for i := range v {
		acc[i] += v[i]
	}
	return acc
}

func at(v []int, i int) int {
	if i < len(v) {
		return v[i]
	}
	return 0
}
