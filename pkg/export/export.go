// Package export writes persisted schedules to interchange formats for
// spreadsheet hand-off.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/transpeq/fleetboard/core/model"
)

const dateLayout = "02/01/2006"

// WriteJSON writes the schedules to w in JSON format.
func WriteJSON(w io.Writer, records []model.ScheduleRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

// WriteCSV writes the capacity rows of the schedules to w in CSV format.
func WriteCSV(w io.Writer, records []model.ScheduleRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "company", "profile", "vehicles", "capacity_kg"}); err != nil {
		return err
	}
	for _, r := range records {
		for _, cap := range r.Capacities {
			rec := []string{
				r.ScheduleDate.Format(dateLayout),
				r.CompanyName,
				cap.ProfileName,
				strconv.Itoa(cap.VehicleCount),
				strconv.Itoa(cap.TotalWeightKg),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes the schedules to w as a single-sheet workbook with two
// tables: category rows (with incident plates) and capacity rows.
func WriteXLSX(w io.Writer, records []model.ScheduleRecord) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	const sheet = "Schedules"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	row := 1
	if err := setRow(f, sheet, row, []any{"Date", "Company", "Category", "Count", "Plates"}); err != nil {
		return err
	}
	for _, r := range records {
		for _, cat := range r.Categories {
			row++
			plates := "-"
			if cat.Role() == model.RoleUnavailable && len(cat.Incidents) > 0 {
				var names []string
				for _, inc := range cat.Incidents {
					names = append(names, inc.PlateNumber)
				}
				plates = strings.Join(names, ", ")
			}
			if err := setRow(f, sheet, row, []any{
				r.ScheduleDate.Format(dateLayout), r.CompanyName, cat.CategoryName, cat.Count, plates,
			}); err != nil {
				return err
			}
		}
	}

	row += 3
	if err := setRow(f, sheet, row, []any{"Date", "Company", "Profile", "Vehicles", "Capacity (kg)"}); err != nil {
		return err
	}
	for _, r := range records {
		for _, cap := range r.Capacities {
			row++
			if err := setRow(f, sheet, row, []any{
				r.ScheduleDate.Format(dateLayout), r.CompanyName, cap.ProfileName, cap.VehicleCount, cap.TotalWeightKg,
			}); err != nil {
				return err
			}
		}
	}
	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("set row %d: %w", row, err)
	}
	return nil
}
