// Package report renders attendance data as spreadsheets for download.
package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const AttendanceSheet = "Attendance"

// ContentTypeXLSX is the media type of a workbook written by WriteAttendance.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var AttendanceHeaders = []string{
	"Date", "User ID", "Name",
	"Punch In", "Punch In Lat", "Punch In Lng",
	"Punch Out", "Punch Out Lat", "Punch Out Lng",
	"Hours", "Status",
}

// AttendanceRow is one attendance record flattened for the sheet. Empty
// times and nil coordinates leave their cells blank.
type AttendanceRow struct {
	Date        string
	UserID      string
	Name        string
	PunchIn     string
	PunchInLat  *float64
	PunchInLng  *float64
	PunchOut    string
	PunchOutLat *float64
	PunchOutLng *float64
	Hours       *float64
	Status      string
}

func (r AttendanceRow) values() []any {
	return []any{
		r.Date, r.UserID, r.Name,
		r.PunchIn, optional(r.PunchInLat), optional(r.PunchInLng),
		r.PunchOut, optional(r.PunchOutLat), optional(r.PunchOutLng),
		optional(r.Hours), r.Status,
	}
}

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

// WriteAttendance writes a single-sheet workbook with a header row followed
// by rows in the given order.
func WriteAttendance(w io.Writer, rows []AttendanceRow) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), AttendanceSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	for i, h := range AttendanceHeaders {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(AttendanceSheet, cell, h); err != nil {
			return fmt.Errorf("write header %s: %w", h, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		vals := row.values()
		if err := f.SetSheetRow(AttendanceSheet, cell, &vals); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(AttendanceSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
