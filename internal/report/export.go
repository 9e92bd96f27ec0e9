package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the exported workbook.
const (
	SheetOverview   = "Overview"
	SheetGroups     = "Groups"
	SheetStatuses   = "Member Status"
	SheetTypes      = "Activity Types"
	SheetLocations  = "Locations"
	SheetAttendance = "Recent Attendance"
)

// WriteWorkbook renders s as an XLSX workbook with one sheet per grouping.
func WriteWorkbook(w io.Writer, s Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetOverview); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	overview := [][]interface{}{
		{"Metric", "Value"},
		{"Members", s.Totals.Members},
		{"Active members", s.Totals.ActiveMembers},
		{"Activities", s.Totals.Activities},
		{"Attendance records", s.Totals.AttendanceRecords},
	}
	if err := writeRows(f, SheetOverview, overview); err != nil {
		return err
	}

	for _, c := range []struct {
		sheet  string
		header string
		counts []Count
	}{
		{SheetGroups, "Group", s.ByGroup},
		{SheetStatuses, "Status", s.ByStatus},
		{SheetTypes, "Type", s.ByActivityType},
		{SheetLocations, "Location", s.ByLocation},
	} {
		if _, err := f.NewSheet(c.sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", c.sheet, err)
		}
		rows := [][]interface{}{{c.header, "Count"}}
		for _, cnt := range c.counts {
			rows = append(rows, []interface{}{cnt.Name, cnt.Value})
		}
		if err := writeRows(f, c.sheet, rows); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(SheetAttendance); err != nil {
		return fmt.Errorf("create sheet %s: %w", SheetAttendance, err)
	}
	rows := [][]interface{}{{"Activity", "Date", "Present", "Absent", "Excused"}}
	for _, t := range s.RecentAttendance {
		rows = append(rows, []interface{}{t.Title, t.Date.String(), t.Present, t.Absent, t.Excused})
	}
	if err := writeRows(f, SheetAttendance, rows); err != nil {
		return err
	}

	return f.Write(w)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
