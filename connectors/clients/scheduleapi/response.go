package scheduleapi

import (
	"time"

	"github.com/transpeq/fleetboard/core/catalog"
	"github.com/transpeq/fleetboard/core/model"
)

const dateLayout = "2006-01-02"

type catalogResponse struct {
	Companies  []model.Company         `json:"companies"`
	Profiles   []model.CapacityProfile `json:"profiles"`
	Categories []model.Category        `json:"categories"`
	UFs        []model.UF              `json:"ufs"`
}

func (r catalogResponse) toCatalog() *catalog.Catalog {
	return &catalog.Catalog{
		Companies:  r.Companies,
		Profiles:   r.Profiles,
		Categories: r.Categories,
		UFs:        r.UFs,
	}
}

type plateResponse struct {
	PlateNumber string `json:"plate_number"`
	Reason      string `json:"reason"`
}

type categoryResponse struct {
	CategoryName string          `json:"category_name"`
	Count        int             `json:"count"`
	ProfileName  string          `json:"profile_name,omitempty"`
	LostPlates   []plateResponse `json:"lost_plates,omitempty"`
}

type capacityResponse struct {
	ProfileName   string `json:"profile_name"`
	VehicleCount  int    `json:"vehicle_count"`
	TotalWeightKg int    `json:"total_weight_kg"`
}

type scheduleResponse struct {
	ID              int64              `json:"id"`
	CompanyID       int64              `json:"company_id"`
	CompanyName     string             `json:"company_name"`
	UF              string             `json:"uf"`
	ScheduleDate    string             `json:"schedule_date"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       *time.Time         `json:"updated_at,omitempty"`
	Categories      []categoryResponse `json:"categories"`
	Capacities      []capacityResponse `json:"capacities"`
	CapacitiesSpot  []capacityResponse `json:"capacities_spot"`
	TotalVehicles   int                `json:"total_vehicles"`
	TotalCapacityKg int                `json:"total_capacity_kg"`
}

func (r scheduleResponse) toRecord() model.ScheduleRecord {
	date, _ := time.Parse(dateLayout, r.ScheduleDate)
	rec := model.ScheduleRecord{
		ID:              r.ID,
		CompanyID:       r.CompanyID,
		CompanyName:     r.CompanyName,
		UF:              r.UF,
		ScheduleDate:    date,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		Capacities:      toCapacityLines(r.Capacities),
		CapacitiesSpot:  toCapacityLines(r.CapacitiesSpot),
		TotalVehicles:   r.TotalVehicles,
		TotalCapacityKg: r.TotalCapacityKg,
	}
	for _, c := range r.Categories {
		entry := model.CategoryEntry{CategoryName: c.CategoryName, Count: c.Count}
		for _, lp := range c.LostPlates {
			entry.Incidents = append(entry.Incidents, model.IncidentRecord{PlateNumber: lp.PlateNumber, Reason: lp.Reason})
		}
		// Lost-trip breakdowns arrive as one row per profile.
		if c.ProfileName != "" && entry.Role() == model.RoleLostTrip {
			entry.LostTrips = []model.LostTripItem{{Count: c.Count, ProfileName: c.ProfileName}}
		}
		rec.Categories = append(rec.Categories, entry)
	}
	return rec
}

func toCapacityLines(caps []capacityResponse) []model.CapacityLine {
	var out []model.CapacityLine
	for _, c := range caps {
		out = append(out, model.CapacityLine{
			ProfileName:   c.ProfileName,
			VehicleCount:  c.VehicleCount,
			TotalWeightKg: c.TotalWeightKg,
		})
	}
	return out
}
