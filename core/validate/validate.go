// Package validate implements the cross-field checks a schedule draft must
// pass before submission. Validation is a pure pass over in-memory
// structures: no I/O, no mutation, deterministic for a given draft and
// catalog snapshot.
package validate

import (
	"fmt"
	"strings"

	"github.com/transpeq/fleetboard/core/catalog"
	"github.com/transpeq/fleetboard/core/model"
)

// Kind identifies a validation rule family violation.
type Kind int

const (
	// KindIncompleteIncidents: the unavailable count declares more vehicles
	// than there are filled incident records.
	KindIncompleteIncidents Kind = iota
	// KindMissingProfile: a lost-trip item has no profile name.
	KindMissingProfile
	// KindInvalidProfile: a lost-trip item names a profile unknown to the
	// catalog or out of scope for the selected company.
	KindInvalidProfile
	// KindSpotMismatch: the idle/spot category count differs from the spot
	// capacity vehicle sum.
	KindSpotMismatch
	// KindEmptySchedule: no category or moving-capacity entry is non-zero.
	KindEmptySchedule
)

// String returns the rule family name.
func (k Kind) String() string {
	switch k {
	case KindIncompleteIncidents:
		return "incomplete_incidents"
	case KindMissingProfile:
		return "missing_profile"
	case KindInvalidProfile:
		return "invalid_profile"
	case KindSpotMismatch:
		return "spot_mismatch"
	case KindEmptySchedule:
		return "empty_schedule"
	default:
		return "unknown"
	}
}

// Error is one structured validation failure. All failures are recoverable
// by editing the draft and re-validating; nothing is auto-corrected.
type Error struct {
	Kind Kind

	// Needed and Got carry incident completeness counts.
	Needed int
	Got    int
	// Declared and Actual carry the spot balance counts.
	Declared int
	Actual   int
	// ProfileName carries the offending lost-trip profile.
	ProfileName string
}

func (e Error) Error() string {
	switch e.Kind {
	case KindIncompleteIncidents:
		return fmt.Sprintf("unavailable category declares %d vehicles but has %d filled incident records", e.Needed, e.Got)
	case KindMissingProfile:
		return "lost-trip item has no profile"
	case KindInvalidProfile:
		return fmt.Sprintf("lost-trip item references unknown profile %q", e.ProfileName)
	case KindSpotMismatch:
		return fmt.Sprintf("idle/spot count %d does not match spot capacity sum %d", e.Declared, e.Actual)
	case KindEmptySchedule:
		return "schedule has no category or capacity data"
	default:
		return "invalid schedule"
	}
}

// Validate runs every rule family over the draft and returns the collected
// failures, or nil when the draft is valid. Within a family only the first
// failure is reported; independent families all run regardless.
func Validate(d *model.ScheduleDraft, cat *catalog.Catalog) []Error {
	var errs []Error
	if err := checkIncidents(d); err != nil {
		errs = append(errs, *err)
	}
	if err := checkLostTripProfiles(d, cat); err != nil {
		errs = append(errs, *err)
	}
	if err := checkSpotBalance(d); err != nil {
		errs = append(errs, *err)
	}
	if err := checkNonEmpty(d); err != nil {
		errs = append(errs, *err)
	}
	return errs
}

func checkIncidents(d *model.ScheduleDraft) *Error {
	for _, e := range d.Categories {
		if e.Role() != model.RoleUnavailable || e.Count == 0 {
			continue
		}
		if got := e.FilledIncidents(); got != e.Count {
			return &Error{Kind: KindIncompleteIncidents, Needed: e.Count, Got: got}
		}
	}
	return nil
}

func checkLostTripProfiles(d *model.ScheduleDraft, cat *catalog.Catalog) *Error {
	for _, e := range d.Categories {
		if e.Role() != model.RoleLostTrip {
			continue
		}
		for _, it := range e.LostTrips {
			if it.Count <= 0 {
				continue
			}
			if strings.TrimSpace(it.ProfileName) == "" {
				return &Error{Kind: KindMissingProfile}
			}
			p, ok := cat.Profile(it.ProfileName)
			if !ok {
				return &Error{Kind: KindInvalidProfile, ProfileName: it.ProfileName}
			}
			if d.CompanyID != 0 && !p.AppliesTo(d.CompanyID) {
				return &Error{Kind: KindInvalidProfile, ProfileName: it.ProfileName}
			}
		}
	}
	return nil
}

func checkSpotBalance(d *model.ScheduleDraft) *Error {
	e := d.CategoryByRole(model.RoleSpot)
	if e == nil || e.Count == 0 {
		return nil
	}
	if actual := d.TotalVehiclesSpot(); actual != e.Count {
		return &Error{Kind: KindSpotMismatch, Declared: e.Count, Actual: actual}
	}
	return nil
}

func checkNonEmpty(d *model.ScheduleDraft) *Error {
	for _, e := range d.Categories {
		if e.Count > 0 {
			return nil
		}
	}
	for _, e := range d.Capacities {
		if e.VehicleCount > 0 {
			return nil
		}
	}
	return &Error{Kind: KindEmptySchedule}
}
