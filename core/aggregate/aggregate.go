// Package aggregate rolls persisted schedules into dashboard metrics. All
// arithmetic is exact integer arithmetic over vehicle counts and
// kilograms; the engine never mutates its inputs.
package aggregate

import (
	"github.com/transpeq/fleetboard/core/model"
)

// CompanyCapacity is the summed capacity of one company.
type CompanyCapacity struct {
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name,omitempty"`
	CapacityKg  int    `json:"capacity_kg"`
}

// CategoryCount is the summed count of one category across all records.
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// GoalFulfillment compares realized vehicles against a company's goal.
type GoalFulfillment struct {
	CompanyID   int64  `json:"company_id"`
	CompanyName string `json:"company_name,omitempty"`
	Realized    int    `json:"realized"`
	Goal        int    `json:"goal"`
}

// Metrics is the dashboard payload computed from a set of schedules.
type Metrics struct {
	TotalCapacityKg   int                    `json:"total_capacity_kg"`
	TotalVehicles     int                    `json:"total_vehicles"`
	TotalLostTrips    int                    `json:"total_lost_trips"`
	CapacityByCompany []CompanyCapacity      `json:"capacity_by_company"`
	Categories        []CategoryCount        `json:"categories_distribution"`
	GoalFulfillment   []GoalFulfillment      `json:"goal_fulfillment"`
	RecentSchedules   []model.ScheduleRecord `json:"recent_schedules"`
}

// Compute aggregates the records into dashboard metrics. Ordering of the
// grouped series follows first appearance in the input; sorting and
// limiting are query-layer concerns, so RecentSchedules is the input as
// given. goals maps company ids to their vehicle goals, missing companies
// default to a zero goal.
func Compute(records []model.ScheduleRecord, goals map[int64]int) Metrics {
	m := Metrics{RecentSchedules: records}

	byCompany := make(map[int64]int)
	var companyOrder []int64
	companyNames := make(map[int64]string)
	vehiclesByCompany := make(map[int64]int)

	byCategory := make(map[string]int)
	var categoryOrder []string

	for _, rec := range records {
		m.TotalCapacityKg += rec.TotalCapacityKg
		m.TotalVehicles += rec.TotalVehicles

		if _, seen := byCompany[rec.CompanyID]; !seen {
			companyOrder = append(companyOrder, rec.CompanyID)
		}
		byCompany[rec.CompanyID] += rec.TotalCapacityKg
		vehiclesByCompany[rec.CompanyID] += rec.TotalVehicles
		if rec.CompanyName != "" {
			companyNames[rec.CompanyID] = rec.CompanyName
		}

		for _, e := range rec.Categories {
			if e.Role() == model.RoleLostTrip {
				m.TotalLostTrips += e.Count
			}
			if _, seen := byCategory[e.CategoryName]; !seen {
				categoryOrder = append(categoryOrder, e.CategoryName)
			}
			byCategory[e.CategoryName] += e.Count
		}
	}

	for _, id := range companyOrder {
		m.CapacityByCompany = append(m.CapacityByCompany, CompanyCapacity{
			CompanyID:   id,
			CompanyName: companyNames[id],
			CapacityKg:  byCompany[id],
		})
		m.GoalFulfillment = append(m.GoalFulfillment, GoalFulfillment{
			CompanyID:   id,
			CompanyName: companyNames[id],
			Realized:    vehiclesByCompany[id],
			Goal:        goals[id],
		})
	}
	for _, name := range categoryOrder {
		if byCategory[name] == 0 {
			continue
		}
		m.Categories = append(m.Categories, CategoryCount{Category: name, Count: byCategory[name]})
	}
	return m
}
