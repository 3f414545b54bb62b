// Package draft implements the mutable schedule being composed by a
// dispatch operator. All derived state (capacity rows per company) is
// recomputed through pure functions so the preserve-on-switch contract
// stays testable in isolation.
package draft

import (
	"strings"
	"time"

	"github.com/transpeq/fleetboard/core/catalog"
	"github.com/transpeq/fleetboard/core/model"
)

// Draft wraps a ScheduleDraft together with the catalog snapshot it was
// seeded from. A Draft belongs to one editing session; it is not safe for
// concurrent mutation.
type Draft struct {
	model.ScheduleDraft

	cat *catalog.Catalog
}

// New creates an empty draft: one zeroed category entry per catalog
// category in catalog order, and one zeroed capacity entry per profile in
// both the moving and spot sequences. No company is selected yet, so the
// capacity rows cover the full profile catalog.
func New(cat *catalog.Catalog) *Draft {
	d := &Draft{cat: cat}
	d.Categories = make([]model.CategoryEntry, len(cat.Categories))
	for i, c := range cat.Categories {
		d.Categories[i] = model.CategoryEntry{CategoryName: c.Name}
	}
	d.Capacities = deriveCapacityRows(cat, 0, nil, false)
	d.CapacitiesSpot = deriveCapacityRows(cat, 0, nil, true)
	return d
}

// Catalog returns the snapshot the draft was seeded from.
func (d *Draft) Catalog() *catalog.Catalog { return d.cat }

// SetCompany selects the company and re-derives both capacity sequences
// from the profiles applicable to it. Counts entered for profiles that
// remain applicable are preserved; rows for profiles no longer applicable
// are dropped.
func (d *Draft) SetCompany(companyID int64) {
	d.CompanyID = companyID
	d.Capacities = deriveCapacityRows(d.cat, companyID, d.Capacities, false)
	d.CapacitiesSpot = deriveCapacityRows(d.cat, companyID, d.CapacitiesSpot, true)
}

// SetUF sets the regional code.
func (d *Draft) SetUF(uf string) { d.UF = strings.ToUpper(strings.TrimSpace(uf)) }

// SetDate sets the schedule date.
func (d *Draft) SetDate(t time.Time) { d.ScheduleDate = t }

// SetCategoryCount sets the count of the named category. Dropping a count
// to zero discards the entry's incidents and lost-trip items; raising an
// unavailable category from zero seeds one blank incident row so the
// operator has something to fill in.
func (d *Draft) SetCategoryCount(categoryName string, n int) {
	e := d.categoryEntry(categoryName)
	if e == nil || n < 0 {
		return
	}
	e.Count = n
	if n == 0 {
		e.Incidents = nil
		e.LostTrips = nil
		return
	}
	if e.Role() == model.RoleUnavailable && len(e.Incidents) == 0 {
		e.Incidents = []model.IncidentRecord{{}}
	}
}

// AddIncident appends an incident row to the named category. The category
// count is the independent variable for unavailable entries, so it is left
// untouched.
func (d *Draft) AddIncident(categoryName string, rec model.IncidentRecord) {
	e := d.categoryEntry(categoryName)
	if e == nil || e.Role() != model.RoleUnavailable {
		return
	}
	e.Incidents = append(e.Incidents, rec)
}

// SetIncident replaces the incident row at index i.
func (d *Draft) SetIncident(categoryName string, i int, rec model.IncidentRecord) {
	e := d.categoryEntry(categoryName)
	if e == nil || i < 0 || i >= len(e.Incidents) {
		return
	}
	e.Incidents[i] = rec
}

// RemoveIncident deletes the incident row at index i.
func (d *Draft) RemoveIncident(categoryName string, i int) {
	e := d.categoryEntry(categoryName)
	if e == nil || i < 0 || i >= len(e.Incidents) {
		return
	}
	e.Incidents = append(e.Incidents[:i], e.Incidents[i+1:]...)
}

// AddLostTripItem appends a per-profile lost-trip item and recomputes the
// category count as the sum of the breakdown.
func (d *Draft) AddLostTripItem(categoryName string, item model.LostTripItem) {
	e := d.categoryEntry(categoryName)
	if e == nil || e.Role() != model.RoleLostTrip {
		return
	}
	e.LostTrips = append(e.LostTrips, item)
	e.Count = e.LostTripSum()
}

// RemoveLostTripItem deletes the lost-trip item at index i and recomputes
// the category count.
func (d *Draft) RemoveLostTripItem(categoryName string, i int) {
	e := d.categoryEntry(categoryName)
	if e == nil || i < 0 || i >= len(e.LostTrips) {
		return
	}
	e.LostTrips = append(e.LostTrips[:i], e.LostTrips[i+1:]...)
	e.Count = e.LostTripSum()
}

// SetCapacityCount sets the vehicle count of the named profile in the
// moving or spot sequence.
func (d *Draft) SetCapacityCount(profileName string, n int, spot bool) {
	entries := d.Capacities
	if spot {
		entries = d.CapacitiesSpot
	}
	if n < 0 {
		return
	}
	for i := range entries {
		if entries[i].ProfileName == profileName {
			entries[i].VehicleCount = n
			return
		}
	}
}

// Reset discards all entered data, keeping company, UF and date.
func (d *Draft) Reset() {
	company := d.CompanyID
	uf, date := d.UF, d.ScheduleDate
	fresh := New(d.cat)
	*d = *fresh
	d.UF, d.ScheduleDate = uf, date
	if company != 0 {
		d.SetCompany(company)
	}
}

func (d *Draft) categoryEntry(name string) *model.CategoryEntry {
	for i := range d.Categories {
		if d.Categories[i].CategoryName == name {
			return &d.Categories[i]
		}
	}
	return nil
}

// deriveCapacityRows builds the capacity sequence for a company from the
// catalog, carrying over counts previously entered for profiles that are
// still applicable. Company 0 means no selection yet and matches the whole
// catalog. The spot sequence only lists spot-eligible profiles.
func deriveCapacityRows(cat *catalog.Catalog, companyID int64, prev []model.CapacityEntry, spot bool) []model.CapacityEntry {
	carried := make(map[string]int, len(prev))
	for _, e := range prev {
		carried[e.ProfileName] = e.VehicleCount
	}
	var rows []model.CapacityEntry
	for _, p := range cat.Profiles {
		if companyID != 0 && !p.AppliesTo(companyID) {
			continue
		}
		if spot && !p.Spot {
			continue
		}
		rows = append(rows, model.CapacityEntry{ProfileName: p.Name, VehicleCount: carried[p.Name]})
	}
	return rows
}
