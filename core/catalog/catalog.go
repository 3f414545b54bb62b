// Package catalog holds the read-only reference data a drafting session
// works against: companies, capacity profiles, categories and UF codes.
// A snapshot is loaded once per session and shared freely; it never
// refreshes itself, callers re-load to observe admin changes.
package catalog

import (
	"context"
	"errors"

	"github.com/transpeq/fleetboard/core/model"
)

// ErrUnavailable is returned when the reference data source cannot be
// reached. There is no retry or local fallback at this layer.
var ErrUnavailable = errors.New("catalog unavailable")

// Source loads a catalog snapshot from the external collaborator.
type Source interface {
	Load(ctx context.Context) (*Catalog, error)
}

// Catalog is an immutable session snapshot of the reference data.
type Catalog struct {
	Companies  []model.Company
	Profiles   []model.CapacityProfile
	Categories []model.Category
	UFs        []model.UF
}

// ProfilesFor returns the profiles applicable to the company, preserving
// catalog order. Profiles with an empty company scope match every company.
func (c *Catalog) ProfilesFor(companyID int64) []model.CapacityProfile {
	out := make([]model.CapacityProfile, 0, len(c.Profiles))
	for _, p := range c.Profiles {
		if p.AppliesTo(companyID) {
			out = append(out, p)
		}
	}
	return out
}

// Profile looks up a profile by name.
func (c *Catalog) Profile(name string) (model.CapacityProfile, bool) {
	for _, p := range c.Profiles {
		if p.Name == name {
			return p, true
		}
	}
	return model.CapacityProfile{}, false
}

// Company looks up a company by id.
func (c *Catalog) Company(id int64) (model.Company, bool) {
	for _, co := range c.Companies {
		if co.ID == id {
			return co, true
		}
	}
	return model.Company{}, false
}

// CategoryByRole returns the first category carrying the role.
func (c *Catalog) CategoryByRole(role model.CategoryRole) (model.Category, bool) {
	for _, cat := range c.Categories {
		if cat.Role() == role {
			return cat, true
		}
	}
	return model.Category{}, false
}

// Goals maps each company to its daily vehicle goal.
func (c *Catalog) Goals() map[int64]int {
	goals := make(map[int64]int, len(c.Companies))
	for _, co := range c.Companies {
		goals[co.ID] = co.VehicleGoal
	}
	return goals
}
