package draft

import (
	"strings"

	"github.com/transpeq/fleetboard/core/model"
)

// Payload is the wire shape accepted by the persistence collaborator on
// POST /schedules and PUT /schedules/{id}.
type Payload struct {
	CompanyID    int64             `json:"company_id"`
	UF           string            `json:"uf"`
	ScheduleDate string            `json:"schedule_date"`
	Categories   []CategoryPayload `json:"categories"`
	Capacities   []CapacityPayload `json:"capacities"`
	Spot         []CapacityPayload `json:"capacities_spot"`
}

// CategoryPayload is one category row of the submission. Lost-trip
// breakdowns serialize as one row per profile, unavailable rows carry
// their incident plates.
type CategoryPayload struct {
	CategoryName string         `json:"category_name"`
	Count        int            `json:"count"`
	ProfileName  string         `json:"profile_name,omitempty"`
	LostPlates   []PlatePayload `json:"lost_plates,omitempty"`
}

// PlatePayload is one incident record on the wire.
type PlatePayload struct {
	PlateNumber string `json:"plate_number"`
	Reason      string `json:"reason"`
}

// CapacityPayload is one capacity row of the submission.
type CapacityPayload struct {
	ProfileName  string `json:"profile_name"`
	VehicleCount int    `json:"vehicle_count"`
}

// BuildPayload converts a draft into its submission payload. Zero-count
// rows are dropped, plates are normalized and the UF is upper-cased. The
// draft is expected to have passed validation first; BuildPayload does not
// re-check it.
func BuildPayload(d *Draft) Payload {
	p := Payload{
		CompanyID:    d.CompanyID,
		UF:           strings.ToUpper(d.UF),
		ScheduleDate: d.ScheduleDate.Format("2006-01-02"),
	}
	for _, e := range d.Categories {
		if e.Count == 0 {
			continue
		}
		switch e.Role() {
		case model.RoleLostTrip:
			for _, it := range e.LostTrips {
				if it.Count == 0 {
					continue
				}
				p.Categories = append(p.Categories, CategoryPayload{
					CategoryName: e.CategoryName,
					Count:        it.Count,
					ProfileName:  it.ProfileName,
				})
			}
		case model.RoleUnavailable:
			row := CategoryPayload{CategoryName: e.CategoryName, Count: e.Count}
			for _, inc := range e.Incidents {
				if !inc.Filled() {
					continue
				}
				n := inc.Normalized()
				row.LostPlates = append(row.LostPlates, PlatePayload{PlateNumber: n.PlateNumber, Reason: n.Reason})
			}
			p.Categories = append(p.Categories, row)
		default:
			p.Categories = append(p.Categories, CategoryPayload{CategoryName: e.CategoryName, Count: e.Count})
		}
	}
	p.Capacities = capacityPayload(d.Capacities)
	p.Spot = capacityPayload(d.CapacitiesSpot)
	return p
}

func capacityPayload(entries []model.CapacityEntry) []CapacityPayload {
	var out []CapacityPayload
	for _, e := range entries {
		if e.VehicleCount == 0 {
			continue
		}
		out = append(out, CapacityPayload{ProfileName: e.ProfileName, VehicleCount: e.VehicleCount})
	}
	return out
}
