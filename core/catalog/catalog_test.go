package catalog

import (
	"testing"

	"github.com/transpeq/fleetboard/core/model"
)

func testCatalog() *Catalog {
	return &Catalog{
		Companies: []model.Company{
			{ID: 1, Name: "TransNorte", VehicleGoal: 10},
			{ID: 2, Name: "LogSul", VehicleGoal: 5},
		},
		Profiles: []model.CapacityProfile{
			{ID: 1, Name: "HR", WeightKg: 1500, Spot: true},
			{ID: 2, Name: "3/4", WeightKg: 3500, Spot: true},
			{ID: 3, Name: "Toco", WeightKg: 7000},
			{ID: 4, Name: "Truck", WeightKg: 14000, CompanyIDs: []int64{1}},
		},
		Categories: []model.Category{
			{ID: 1, Name: "En-route"},
			{ID: 2, Name: "Unavailable"},
			{ID: 3, Name: "Lost-trip"},
		},
	}
}

func TestProfilesFor(t *testing.T) {
	c := testCatalog()

	all := c.ProfilesFor(1)
	if len(all) != 4 {
		t.Fatalf("company 1: expected 4 profiles, got %d", len(all))
	}
	// catalog order preserved
	for i, name := range []string{"HR", "3/4", "Toco", "Truck"} {
		if all[i].Name != name {
			t.Errorf("position %d: expected %s, got %s", i, name, all[i].Name)
		}
	}

	scoped := c.ProfilesFor(2)
	for _, p := range scoped {
		if p.Name == "Truck" {
			t.Fatalf("Truck must not apply to company 2")
		}
	}
	if len(scoped) != 3 {
		t.Fatalf("company 2: expected 3 profiles, got %d", len(scoped))
	}
}

func TestProfileLookup(t *testing.T) {
	c := testCatalog()
	p, ok := c.Profile("Toco")
	if !ok || p.WeightKg != 7000 {
		t.Fatalf("expected Toco at 7000 kg, got %+v ok=%v", p, ok)
	}
	if _, ok := c.Profile("Carreta"); ok {
		t.Fatalf("unknown profile must not resolve")
	}
}

func TestCompanyLookup(t *testing.T) {
	c := testCatalog()
	co, ok := c.Company(2)
	if !ok || co.Name != "LogSul" {
		t.Fatalf("expected LogSul, got %+v ok=%v", co, ok)
	}
	if _, ok := c.Company(99); ok {
		t.Fatalf("unknown company must not resolve")
	}
}

func TestCategoryByRole(t *testing.T) {
	c := testCatalog()
	cat, ok := c.CategoryByRole(model.RoleLostTrip)
	if !ok || cat.Name != "Lost-trip" {
		t.Fatalf("expected Lost-trip, got %+v ok=%v", cat, ok)
	}
	if _, ok := c.CategoryByRole(model.RoleSpot); ok {
		t.Fatalf("no spot category configured, lookup must fail")
	}
}

func TestGoals(t *testing.T) {
	c := testCatalog()
	goals := c.Goals()
	if len(goals) != 2 || goals[1] != 10 || goals[2] != 5 {
		t.Fatalf("unexpected goals: %+v", goals)
	}
}
