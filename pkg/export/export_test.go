package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/transpeq/fleetboard/core/model"
)

func sampleRecords() []model.ScheduleRecord {
	return []model.ScheduleRecord{
		{
			ID: 1, CompanyID: 1, CompanyName: "TransNorte", UF: "BAHIA",
			ScheduleDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			Categories: []model.CategoryEntry{
				{CategoryName: "En-route", Count: 4},
				{CategoryName: "Unavailable", Count: 1, Incidents: []model.IncidentRecord{{PlateNumber: "ABC-1234", Reason: "engine"}}},
			},
			Capacities: []model.CapacityLine{
				{ProfileName: "HR", VehicleCount: 3, TotalWeightKg: 4500},
				{ProfileName: "Toco", VehicleCount: 1, TotalWeightKg: 7000},
			},
			TotalVehicles: 4, TotalCapacityKg: 11500,
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out []model.ScheduleRecord
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("re-read: %v", err)
	}
	if len(out) != 1 || out[0].CompanyName != "TransNorte" {
		t.Fatalf("unexpected output: %+v", out)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 capacity rows, got %d", len(rows))
	}
	if rows[0][0] != "date" || rows[0][4] != "capacity_kg" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][0] != "01/06/2024" || rows[1][2] != "HR" || rows[1][4] != "4500" {
		t.Errorf("unexpected first row: %v", rows[1])
	}
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, sampleRecords()); err != nil {
		t.Fatalf("write: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows("Schedules")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	var joined []string
	for _, r := range rows {
		joined = append(joined, strings.Join(r, "|"))
	}
	content := strings.Join(joined, "\n")
	if !strings.Contains(content, "ABC-1234") {
		t.Errorf("incident plate missing from workbook:\n%s", content)
	}
	if !strings.Contains(content, "Toco") || !strings.Contains(content, "7000") {
		t.Errorf("capacity table missing from workbook:\n%s", content)
	}
}
