package services_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/fieldlink/interactions-api/tests/helpers"
)

// TestParseApprovedParam tests the approved filter values
func TestParseApprovedParam(t *testing.T) {
	if v, err := services.ParseApprovedParam(""); err != nil || v != nil {
		t.Errorf("Expected nil for empty value, got %v, %v", v, err)
	}
	if v, err := services.ParseApprovedParam("true"); err != nil || v == nil || !*v {
		t.Errorf("Expected true, got %v, %v", v, err)
	}
	if v, err := services.ParseApprovedParam("false"); err != nil || v == nil || *v {
		t.Errorf("Expected false, got %v, %v", v, err)
	}
	_, err := services.ParseApprovedParam("maybe")
	var vErr *types.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("Expected validation error for bad value, got %v", err)
	}
}

// TestFilterHCPsSearch tests the per-word search across name and location
// columns
func TestFilterHCPsSearch(t *testing.T) {
	db := setupTestDB(t)
	staff := helpers.CreateTestUser(t, db, true, nil, nil, nil)

	riva := helpers.CreateTestHCP(t, db, "Riva", "Santos", nil, nil)
	riva.City = "Lisbon"
	riva.InstitutionName = "Hospital da Luz"
	db.Save(&riva)

	milo := helpers.CreateTestHCP(t, db, "Milo", "Santos", nil, nil)
	milo.City = "Porto"
	db.Save(&milo)

	find := func(search string) map[uint64]bool {
		hcps, err := services.FilterHCPs(db, &staff, &services.HCPFilter{Search: search})
		if err != nil {
			t.Fatalf("Failed to filter hcps: %v", err)
		}
		seen := map[uint64]bool{}
		for _, h := range hcps {
			seen[h.ID] = true
		}
		return seen
	}

	// Shared last name matches both
	both := find("santos")
	if !both[riva.ID] || !both[milo.ID] {
		t.Errorf("Expected both Santos matches, got %v", both)
	}

	// Every word must match somewhere
	one := find("santos lisbon")
	if !one[riva.ID] || one[milo.ID] {
		t.Errorf("Expected only the Lisbon match, got %v", one)
	}

	// Institution column participates
	inst := find("luz")
	if !inst[riva.ID] || inst[milo.ID] {
		t.Errorf("Expected only the institution match, got %v", inst)
	}

	none := find("santos madrid")
	if len(none) != 0 {
		t.Errorf("Expected no matches, got %v", none)
	}
}

// TestFilterHCPsOverlapScope tests that non-staff users need overlap on
// both affiliate groups and therapeutic areas
func TestFilterHCPsOverlapScope(t *testing.T) {
	db := setupTestDB(t)
	ag := helpers.CreateTestAffiliateGroup(t, db, "scope")
	ta := helpers.CreateTestTherapeuticArea(t, db, "oncology")
	otherTA := helpers.CreateTestTherapeuticArea(t, db, "cardiology")

	user := helpers.CreateTestUser(t, db, false, nil,
		[]models.AffiliateGroup{ag}, []models.TherapeuticArea{ta})

	visible := helpers.CreateTestHCP(t, db, "Ana", "Silva",
		[]models.AffiliateGroup{ag}, []models.TherapeuticArea{ta})
	wrongTA := helpers.CreateTestHCP(t, db, "Bo", "Chen",
		[]models.AffiliateGroup{ag}, []models.TherapeuticArea{otherTA})
	noGroups := helpers.CreateTestHCP(t, db, "Cem", "Arslan", nil, nil)

	hcps, err := services.FilterHCPs(db, &user, &services.HCPFilter{})
	if err != nil {
		t.Fatalf("Failed to filter hcps: %v", err)
	}
	seen := map[uint64]bool{}
	for _, h := range hcps {
		seen[h.ID] = true
	}
	if !seen[visible.ID] {
		t.Error("Expected the overlapping hcp to be visible")
	}
	if seen[wrongTA.ID] || seen[noGroups.ID] {
		t.Errorf("Expected non-overlapping hcps hidden, got %v", seen)
	}

	// A user without therapeutic areas sees nothing
	bare := helpers.CreateTestUser(t, db, false, nil, []models.AffiliateGroup{ag}, nil)
	hcps, err = services.FilterHCPs(db, &bare, &services.HCPFilter{})
	if err != nil {
		t.Fatalf("Failed to filter hcps: %v", err)
	}
	if len(hcps) != 0 {
		t.Errorf("Expected no hcps for a user without therapeutic areas, got %d", len(hcps))
	}
}

// TestFilterHCPsByUser tests that the user parameter alone filters to HCPs
// sharing one of that user's affiliate groups or therapeutic areas
func TestFilterHCPsByUser(t *testing.T) {
	db := setupTestDB(t)
	staff := helpers.CreateTestUser(t, db, true, nil, nil, nil)
	ag := helpers.CreateTestAffiliateGroup(t, db, "iberia")
	ta := helpers.CreateTestTherapeuticArea(t, db, "immunology")

	target := helpers.CreateTestUser(t, db, false, nil,
		[]models.AffiliateGroup{ag}, []models.TherapeuticArea{ta})

	byGroup := helpers.CreateTestHCP(t, db, "Nuno", "Pires", []models.AffiliateGroup{ag}, nil)
	byArea := helpers.CreateTestHCP(t, db, "Sara", "Lopes", nil, []models.TherapeuticArea{ta})
	helpers.CreateTestHCP(t, db, "Otto", "Keller", nil, nil)

	hcps, err := services.FilterHCPs(db, &staff, &services.HCPFilter{UserID: &target.ID})
	if err != nil {
		t.Fatalf("Failed to filter hcps: %v", err)
	}
	seen := map[uint64]bool{}
	for _, h := range hcps {
		seen[h.ID] = true
	}
	if len(seen) != 2 || !seen[byGroup.ID] || !seen[byArea.ID] {
		t.Errorf("Expected only the hcps sharing the target user's memberships, got %v", seen)
	}
}

// TestFilterHCPsByPlan tests the engagement_plan parameter
func TestFilterHCPsByPlan(t *testing.T) {
	db := setupTestDB(t)
	staff := helpers.CreateTestUser(t, db, true, nil, nil, nil)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)

	inPlan := helpers.CreateTestHCP(t, db, "Dag", "Holm", nil, nil)
	helpers.CreateTestHCP(t, db, "Eli", "Roth", nil, nil)
	plan := helpers.CreateTestPlanTree(t, db, owner.ID, inPlan.ID, 0)

	// Numeric plan id
	hcps, err := services.FilterHCPs(db, &staff, &services.HCPFilter{
		EngagementPlan: fmt.Sprintf("%d", plan.ID),
	})
	if err != nil {
		t.Fatalf("Failed to filter hcps: %v", err)
	}
	if len(hcps) != 1 || hcps[0].ID != inPlan.ID {
		t.Errorf("Expected only the planned hcp, got %d results", len(hcps))
	}

	// "current" resolves against the target user's current-year plan
	hcps, err = services.FilterHCPs(db, &staff, &services.HCPFilter{
		EngagementPlan: "current",
		UserID:         &owner.ID,
	})
	if err != nil {
		t.Fatalf("Failed to filter hcps: %v", err)
	}
	if len(hcps) != 1 || hcps[0].ID != inPlan.ID {
		t.Errorf("Expected the current-plan hcp, got %d results", len(hcps))
	}

	// "current" with no plan is an empty list
	planless := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcps, err = services.FilterHCPs(db, &staff, &services.HCPFilter{
		EngagementPlan: "current",
		UserID:         &planless.ID,
	})
	if err != nil {
		t.Fatalf("Failed to filter hcps: %v", err)
	}
	if len(hcps) != 0 {
		t.Errorf("Expected no hcps without a current plan, got %d", len(hcps))
	}

	// Garbage plan value
	_, err = services.FilterHCPs(db, &staff, &services.HCPFilter{EngagementPlan: "soon"})
	var vErr *types.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("Expected validation error for a bad plan value, got %v", err)
	}
}

// TestFilterHCPObjectives tests that only objectives under approved items
// surface
func TestFilterHCPObjectives(t *testing.T) {
	db := setupTestDB(t)
	staff := helpers.CreateTestUser(t, db, true, nil, nil, nil)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Fay", "Wong", nil, nil)

	plan := helpers.CreateTestPlanTree(t, db, owner.ID, hcp.ID, 0)
	objective := plan.HCPItems[0].Objectives[0]

	// Unapproved item: nothing surfaces
	objectives, err := services.FilterHCPObjectives(db, &staff, &services.ObjectiveFilter{})
	if err != nil {
		t.Fatalf("Failed to filter objectives: %v", err)
	}
	if len(objectives) != 0 {
		t.Errorf("Expected no objectives under unapproved items, got %d", len(objectives))
	}

	if _, err := services.ApproveEngagementPlan(db, plan.ID, nil); err != nil {
		t.Fatalf("Failed to approve plan: %v", err)
	}

	objectives, err = services.FilterHCPObjectives(db, &staff, &services.ObjectiveFilter{})
	if err != nil {
		t.Fatalf("Failed to filter objectives: %v", err)
	}
	if len(objectives) != 1 || objectives[0].ID != objective.ID {
		t.Fatalf("Expected the approved objective, got %d results", len(objectives))
	}
	if len(objectives[0].Deliverables) != 1 {
		t.Errorf("Expected deliverables preloaded, got %d", len(objectives[0].Deliverables))
	}

	// hcp filter
	otherHCP := helpers.CreateTestHCP(t, db, "Gil", "Amar", nil, nil)
	objectives, err = services.FilterHCPObjectives(db, &staff, &services.ObjectiveFilter{HCPID: &otherHCP.ID})
	if err != nil {
		t.Fatalf("Failed to filter objectives: %v", err)
	}
	if len(objectives) != 0 {
		t.Errorf("Expected no objectives for another hcp, got %d", len(objectives))
	}

	// user filter resolves the owner's current plan
	objectives, err = services.FilterHCPObjectives(db, &staff, &services.ObjectiveFilter{UserID: &owner.ID})
	if err != nil {
		t.Fatalf("Failed to filter objectives: %v", err)
	}
	if len(objectives) != 1 {
		t.Errorf("Expected the owner's objective, got %d results", len(objectives))
	}
}
