package model

import "strings"

// CategoryRole tags a schedule category with the sub-structure it carries.
type CategoryRole int

const (
	// RolePlain categories hold a bare vehicle count.
	RolePlain CategoryRole = iota
	// RoleUnavailable categories require one incident record per counted vehicle.
	RoleUnavailable
	// RoleSpot categories must balance against the spot capacity breakdown.
	RoleSpot
	// RoleLostTrip categories break their count down per capacity profile.
	RoleLostTrip
)

// String returns a human-readable representation of the role.
func (r CategoryRole) String() string {
	switch r {
	case RoleUnavailable:
		return "unavailable"
	case RoleSpot:
		return "spot"
	case RoleLostTrip:
		return "lost-trip"
	default:
		return "plain"
	}
}

// RoleForCategory maps a server-configured category name to its role. The
// catalog owns the category set, so unknown names degrade to RolePlain
// rather than failing.
func RoleForCategory(name string) CategoryRole {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "unavailable", "indisponíveis", "indisponiveis":
		return RoleUnavailable
	case "idle/spot", "spot/parado", "spot":
		return RoleSpot
	case "lost-trip", "lost trips", "perdidas":
		return RoleLostTrip
	default:
		return RolePlain
	}
}

// Company is a carrier registering daily schedules.
type Company struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	VehicleGoal int    `json:"vehicle_goal"`
}

// CapacityProfile is a vehicle weight class used to compute load capacity.
type CapacityProfile struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	WeightKg int    `json:"weight_kg"`
	// Spot marks profiles eligible for the spot (idle) capacity breakdown.
	Spot bool `json:"spot"`
	// CompanyIDs scopes the profile to specific companies. Empty means the
	// profile applies to every company.
	CompanyIDs []int64 `json:"company_ids"`
}

// AppliesTo reports whether the profile is valid for the given company.
func (p CapacityProfile) AppliesTo(companyID int64) bool {
	if len(p.CompanyIDs) == 0 {
		return true
	}
	for _, id := range p.CompanyIDs {
		if id == companyID {
			return true
		}
	}
	return false
}

// Category is one operational bucket of the daily schedule.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Role resolves the category's role from its name.
func (c Category) Role() CategoryRole { return RoleForCategory(c.Name) }

// UF is a regional code scoping a schedule.
type UF struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
