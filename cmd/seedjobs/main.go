// Command seedjobs converts the operations team's scheduling workbook into a
// SQL seed file for the report_schedules table.
// Usage: go run ./cmd/seedjobs [workbook.xlsx]
// Output: db/seeds/report_schedules.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"entrydesk/internal/domain"
)

const batchSize = 100

type scheduleRow struct {
	name         string
	customerName string
	frequency    string
	lookbackDays int
	recipients   string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	xlsxPath := "report_schedules.xlsx"
	if len(os.Args) > 1 {
		xlsxPath = os.Args[1]
	}
	outPath := "db/seeds/report_schedules.sql"

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	schedules, err := parseSchedules(f)
	if err != nil {
		return fmt.Errorf("parse workbook: %w", err)
	}
	log.Printf("parsed %d schedules from %s", len(schedules), xlsxPath)

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer func() { _ = out.Close() }()

	w := func(s string) error { _, werr := fmt.Fprintln(out, s); return werr }

	for _, line := range []string{
		"-- Report schedule seed data generated from the scheduling workbook.",
		fmt.Sprintf("-- %d schedules in batches of %d.", len(schedules), batchSize),
		"-- Run: make seed-jobs",
		"BEGIN;",
		"",
	} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write header: %w", werr)
		}
	}

	for i := 0; i < len(schedules); i += batchSize {
		end := i + batchSize
		if end > len(schedules) {
			end = len(schedules)
		}
		if err := writeBatch(out, schedules[i:end]); err != nil {
			return fmt.Errorf("write batch at offset %d: %w", i, err)
		}
	}

	for _, line := range []string{"", "COMMIT;"} {
		if werr := w(line); werr != nil {
			return fmt.Errorf("write footer: %w", werr)
		}
	}

	log.Printf("Generated %d schedules in %s", len(schedules), outPath)
	return nil
}

// parseSchedules reads the first sheet. Columns: A=name, B=customer name,
// C=frequency, D=lookback days, E=recipients (semicolon or comma separated).
// Row 0 is the header.
func parseSchedules(f *excelize.File) ([]scheduleRow, error) {
	sheetName := f.GetSheetName(0)
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var schedules []scheduleRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if len(row) < 5 {
			continue
		}

		name := strings.TrimSpace(cellVal(row, 0))
		customer := strings.TrimSpace(cellVal(row, 1))
		freq := strings.ToLower(strings.TrimSpace(cellVal(row, 2)))
		if name == "" || customer == "" {
			continue
		}
		if !domain.ValidFrequencies[domain.ScheduleFrequency(freq)] {
			log.Printf("row %d: skipping unknown frequency %q", i+1, freq)
			continue
		}

		lookback, err := strconv.Atoi(strings.TrimSpace(cellVal(row, 3)))
		if err != nil || lookback <= 0 {
			switch domain.ScheduleFrequency(freq) {
			case domain.FrequencyDaily:
				lookback = 1
			case domain.FrequencyWeekly:
				lookback = 7
			default:
				lookback = 31
			}
		}

		recipients := normalizeRecipients(cellVal(row, 4))
		if recipients == "" {
			log.Printf("row %d: skipping schedule %q with no recipients", i+1, name)
			continue
		}

		key := customer + "/" + name
		if seen[key] {
			continue
		}
		seen[key] = true

		schedules = append(schedules, scheduleRow{
			name:         name,
			customerName: customer,
			frequency:    freq,
			lookbackDays: lookback,
			recipients:   recipients,
		})
	}
	return schedules, nil
}

// normalizeRecipients rewrites semicolon separated lists to the comma
// separated form the schedules table stores.
func normalizeRecipients(s string) string {
	var out []string
	for _, r := range strings.FieldsFunc(s, func(c rune) bool { return c == ';' || c == ',' }) {
		r = strings.TrimSpace(r)
		if r != "" {
			out = append(out, r)
		}
	}
	return strings.Join(out, ",")
}

func writeBatch(out *os.File, batch []scheduleRow) error {
	if len(batch) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("INSERT INTO report_schedules (name, customer_name, frequency, lookback_days, recipients, is_active, next_run_at, created_by) VALUES\n")
	for i, s := range batch {
		b.WriteString(fmt.Sprintf("  (%s, %s, %s, %d, %s, TRUE, date_trunc('day', now()) + interval '1 day', 'seedjobs')",
			sqlString(s.name), sqlString(s.customerName), sqlString(s.frequency), s.lookbackDays, sqlString(s.recipients)))
		if i < len(batch)-1 {
			b.WriteString(",\n")
		}
	}
	b.WriteString("\nON CONFLICT (customer_name, name) DO NOTHING;\n")
	_, err := fmt.Fprintln(out, b.String())
	return err
}

func sqlString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func cellVal(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}
