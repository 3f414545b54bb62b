package aggregate

import (
	"reflect"
	"testing"
	"time"

	"github.com/transpeq/fleetboard/core/model"
)

func sampleRecords() []model.ScheduleRecord {
	date := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	return []model.ScheduleRecord{
		{
			ID: 1, CompanyID: 1, CompanyName: "TransNorte", UF: "BAHIA", ScheduleDate: date,
			TotalVehicles: 6, TotalCapacityKg: 10000,
			Categories: []model.CategoryEntry{
				{CategoryName: "En-route", Count: 4},
				{CategoryName: "Lost-trip", Count: 2},
			},
		},
		{
			ID: 2, CompanyID: 2, CompanyName: "LogSul", UF: "CEARA", ScheduleDate: date,
			TotalVehicles: 3, TotalCapacityKg: 4500,
			Categories: []model.CategoryEntry{
				{CategoryName: "En-route", Count: 3},
				{CategoryName: "Idle/Spot", Count: 0},
			},
		},
		{
			ID: 3, CompanyID: 1, CompanyName: "TransNorte", UF: "BAHIA", ScheduleDate: date.AddDate(0, 0, 1),
			TotalVehicles: 2, TotalCapacityKg: 5000,
			Categories: []model.CategoryEntry{
				{CategoryName: "Lost-trip", Count: 1},
			},
		},
	}
}

func TestCompute_Totals(t *testing.T) {
	m := Compute(sampleRecords(), map[int64]int{1: 10, 2: 5})

	if m.TotalCapacityKg != 19500 {
		t.Errorf("total capacity: expected 19500, got %d", m.TotalCapacityKg)
	}
	if m.TotalVehicles != 11 {
		t.Errorf("total vehicles: expected 11, got %d", m.TotalVehicles)
	}
	if m.TotalLostTrips != 3 {
		t.Errorf("total lost trips: expected 3, got %d", m.TotalLostTrips)
	}
}

func TestCompute_CapacityByCompany(t *testing.T) {
	m := Compute(sampleRecords(), nil)

	expected := []CompanyCapacity{
		{CompanyID: 1, CompanyName: "TransNorte", CapacityKg: 15000},
		{CompanyID: 2, CompanyName: "LogSul", CapacityKg: 4500},
	}
	if !reflect.DeepEqual(m.CapacityByCompany, expected) {
		t.Fatalf("expected %+v, got %+v", expected, m.CapacityByCompany)
	}
}

func TestCompute_GoalFulfillment(t *testing.T) {
	m := Compute(sampleRecords(), map[int64]int{1: 10})

	expected := []GoalFulfillment{
		{CompanyID: 1, CompanyName: "TransNorte", Realized: 8, Goal: 10},
		{CompanyID: 2, CompanyName: "LogSul", Realized: 3, Goal: 0},
	}
	if !reflect.DeepEqual(m.GoalFulfillment, expected) {
		t.Fatalf("expected %+v, got %+v", expected, m.GoalFulfillment)
	}
}

func TestCompute_CategoriesOmitZeroTotals(t *testing.T) {
	m := Compute(sampleRecords(), nil)

	expected := []CategoryCount{
		{Category: "En-route", Count: 7},
		{Category: "Lost-trip", Count: 3},
	}
	if !reflect.DeepEqual(m.Categories, expected) {
		t.Fatalf("expected %+v, got %+v", expected, m.Categories)
	}
}

func TestCompute_ZeroFirstCategoryStillCounted(t *testing.T) {
	// first appearance has count 0, later records contribute
	records := []model.ScheduleRecord{
		{CompanyID: 1, Categories: []model.CategoryEntry{{CategoryName: "Idle/Spot", Count: 0}}},
		{CompanyID: 1, Categories: []model.CategoryEntry{{CategoryName: "Idle/Spot", Count: 2}}},
	}
	m := Compute(records, nil)
	if len(m.Categories) != 1 || m.Categories[0].Count != 2 {
		t.Fatalf("expected Idle/Spot with count 2, got %+v", m.Categories)
	}
}

func TestCompute_Empty(t *testing.T) {
	m := Compute(nil, nil)
	if m.TotalCapacityKg != 0 || m.TotalVehicles != 0 || m.TotalLostTrips != 0 {
		t.Errorf("expected zero totals, got %+v", m)
	}
	if m.CapacityByCompany != nil || m.Categories != nil || m.GoalFulfillment != nil {
		t.Errorf("expected nil series, got %+v", m)
	}
}

func TestCompute_Deterministic(t *testing.T) {
	records := sampleRecords()
	goals := map[int64]int{1: 10, 2: 5}
	first := Compute(records, goals)
	second := Compute(records, goals)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("same input must produce the same metrics")
	}
}

func TestCompute_DoesNotMutateInput(t *testing.T) {
	records := sampleRecords()
	before := make([]model.ScheduleRecord, len(records))
	copy(before, records)
	Compute(records, map[int64]int{1: 10})
	if !reflect.DeepEqual(before, records) {
		t.Fatalf("input records were mutated")
	}
}
