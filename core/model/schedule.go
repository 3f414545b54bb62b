package model

import (
	"strings"
	"time"
)

// MaxPlateLen caps the normalized plate number length.
const MaxPlateLen = 8

// IncidentRecord documents one out-of-service vehicle. It is only
// meaningful on categories with RoleUnavailable.
type IncidentRecord struct {
	PlateNumber string `json:"plate_number"`
	Reason      string `json:"reason"`
}

// Filled reports whether both plate and reason carry non-blank input.
func (r IncidentRecord) Filled() bool {
	return strings.TrimSpace(r.PlateNumber) != "" && strings.TrimSpace(r.Reason) != ""
}

// Normalized returns the record with the plate trimmed, upper-cased and
// capped at MaxPlateLen, and the reason trimmed.
func (r IncidentRecord) Normalized() IncidentRecord {
	plate := strings.ToUpper(strings.TrimSpace(r.PlateNumber))
	if len(plate) > MaxPlateLen {
		plate = plate[:MaxPlateLen]
	}
	return IncidentRecord{PlateNumber: plate, Reason: strings.TrimSpace(r.Reason)}
}

// LostTripItem attributes lost trips to a capacity profile.
type LostTripItem struct {
	Count       int    `json:"count"`
	ProfileName string `json:"profile_name"`
}

// CategoryEntry is one category row of a schedule. Incidents are only
// populated for RoleUnavailable categories, LostTrips only for RoleLostTrip.
type CategoryEntry struct {
	CategoryName string           `json:"category_name"`
	Count        int              `json:"count"`
	Incidents    []IncidentRecord `json:"incidents,omitempty"`
	LostTrips    []LostTripItem   `json:"lost_trips,omitempty"`
}

// Role resolves the entry's category role.
func (e CategoryEntry) Role() CategoryRole { return RoleForCategory(e.CategoryName) }

// FilledIncidents counts incident records with both fields present.
func (e CategoryEntry) FilledIncidents() int {
	n := 0
	for _, inc := range e.Incidents {
		if inc.Filled() {
			n++
		}
	}
	return n
}

// LostTripSum returns the total count across the per-profile breakdown.
func (e CategoryEntry) LostTripSum() int {
	sum := 0
	for _, it := range e.LostTrips {
		sum += it.Count
	}
	return sum
}

// CapacityEntry is one capacity row of a draft: vehicles of a given profile.
type CapacityEntry struct {
	ProfileName  string `json:"profile_name"`
	VehicleCount int    `json:"vehicle_count"`
}

// ScheduleDraft is the mutable in-memory schedule being composed. It is
// owned by a single editing session and never mutated concurrently.
type ScheduleDraft struct {
	CompanyID    int64
	UF           string
	ScheduleDate time.Time
	// Categories holds one entry per catalog category, in catalog order.
	Categories []CategoryEntry
	// Capacities and CapacitiesSpot hold one entry per profile applicable
	// to the selected company, moving and idle fleets respectively.
	Capacities     []CapacityEntry
	CapacitiesSpot []CapacityEntry
}

// CategoryByRole returns the first entry whose category has the role.
func (d *ScheduleDraft) CategoryByRole(role CategoryRole) *CategoryEntry {
	for i := range d.Categories {
		if d.Categories[i].Role() == role {
			return &d.Categories[i]
		}
	}
	return nil
}

// TotalVehicles sums the moving-capacity vehicle counts.
func (d *ScheduleDraft) TotalVehicles() int {
	return sumVehicles(d.Capacities)
}

// TotalVehiclesSpot sums the spot-capacity vehicle counts.
func (d *ScheduleDraft) TotalVehiclesSpot() int {
	return sumVehicles(d.CapacitiesSpot)
}

func sumVehicles(entries []CapacityEntry) int {
	sum := 0
	for _, e := range entries {
		sum += e.VehicleCount
	}
	return sum
}

// CapacityLine is one capacity row of a persisted schedule, with the
// derived weight already computed by the persistence collaborator.
type CapacityLine struct {
	ProfileName   string `json:"profile_name"`
	VehicleCount  int    `json:"vehicle_count"`
	TotalWeightKg int    `json:"total_weight_kg"`
}

// ScheduleRecord is an accepted, immutable schedule as returned by the
// persistence collaborator. Edits go through a fresh validated draft.
type ScheduleRecord struct {
	ID              int64           `json:"id"`
	CompanyID       int64           `json:"company_id"`
	CompanyName     string          `json:"company_name,omitempty"`
	UF              string          `json:"uf"`
	ScheduleDate    time.Time       `json:"schedule_date"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty"`
	Categories      []CategoryEntry `json:"categories"`
	Capacities      []CapacityLine  `json:"capacities"`
	CapacitiesSpot  []CapacityLine  `json:"capacities_spot,omitempty"`
	TotalVehicles   int             `json:"total_vehicles"`
	TotalCapacityKg int             `json:"total_capacity_kg"`
}
