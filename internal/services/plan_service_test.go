package services_test

import (
	"errors"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/fieldlink/interactions-api/internal/database"
	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/fieldlink/interactions-api/tests/helpers"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get underlying SQL DB: %v", err)
	}
	// a single connection keeps the in-memory database alive
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func flexPtr(v uint64) *types.FlexUint64 {
	f := types.FlexUint64(v)
	return &f
}

// TestCreatePlanTree tests creating a plan from a nested submission
func TestCreatePlanTree(t *testing.T) {
	db := setupTestDB(t)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Nora", "Lindt", nil, nil)
	project := helpers.CreateTestProject(t, db, "symposium")

	sub := &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{
			{
				HCPID:       types.FlexUint64(hcp.ID),
				ReasonAdded: models.ReasonAddedOwnObjectives,
				Objectives: []types.ObjectivePayload{
					{
						Description: "build KOL relationship",
						Deliverables: []types.DeliverablePayload{
							{Quarter: 1, Description: "first visit", Status: models.DeliverableOnTrack},
							{Quarter: 4, Description: "year-end review", Status: models.DeliverableOnTrack},
						},
					},
				},
			},
		},
		ProjectItems: []types.ProjectItemPayload{
			{
				ProjectID: types.FlexUint64(project.ID),
				Objectives: []types.ObjectivePayload{
					{
						Description: "prepare agenda",
						Deliverables: []types.DeliverablePayload{
							{Quarter: 2, Description: "draft program", Status: models.DeliverableOnTrack},
						},
					},
				},
			},
		},
	}

	plan, err := services.CreateEngagementPlan(db, owner.ID, sub)
	if err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}

	if plan.Year != time.Now().UTC().Year() {
		t.Errorf("Expected year to default to the current year, got %d", plan.Year)
	}
	if plan.Approved {
		t.Error("Expected new plan to start unapproved")
	}
	if len(plan.HCPItems) != 1 || len(plan.ProjectItems) != 1 {
		t.Fatalf("Expected 1 hcp item and 1 project item, got %d and %d",
			len(plan.HCPItems), len(plan.ProjectItems))
	}
	if plan.HCPItems[0].HCP.ID != hcp.ID {
		t.Errorf("Expected hcp preloaded on the item, got %d", plan.HCPItems[0].HCP.ID)
	}

	deliverables := plan.HCPItems[0].Objectives[0].Deliverables
	if len(deliverables) != 2 {
		t.Fatalf("Expected 2 hcp deliverables, got %d", len(deliverables))
	}
	now := time.Now().UTC()
	for _, d := range deliverables {
		want := models.DeliverableTimeFrame(plan.Year, d.Quarter, now)
		if d.TimeFrame != want {
			t.Errorf("Expected time frame %q for Q%d, got %q", want, d.Quarter, d.TimeFrame)
		}
	}
	if plan.HCPItems[0].Objectives[0].HCPID != hcp.ID {
		t.Errorf("Expected objective to carry the item's hcp id")
	}
}

// TestCreatePlanDuplicateYear tests the one-plan-per-year rule
func TestCreatePlanDuplicateYear(t *testing.T) {
	db := setupTestDB(t)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)

	if _, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{}); err != nil {
		t.Fatalf("Failed to create first plan: %v", err)
	}

	_, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{})
	var vErr *types.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected validation error for a second plan in the same year, got %v", err)
	}
	if vErr.Field != "year" {
		t.Errorf("Expected field year, got %q", vErr.Field)
	}

	// A different year is fine
	if _, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{Year: 2031}); err != nil {
		t.Errorf("Failed to create plan for another year: %v", err)
	}
}

// TestUpdatePlanIdempotentResubmission tests that resubmitting the stored
// tree keeps all row identities
func TestUpdatePlanIdempotentResubmission(t *testing.T) {
	db := setupTestDB(t)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Omar", "Haddad", nil, nil)

	plan, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{
			{
				HCPID: types.FlexUint64(hcp.ID),
				Objectives: []types.ObjectivePayload{
					{
						Description: "objective one",
						Deliverables: []types.DeliverablePayload{
							{Quarter: 1, Description: "deliverable one"},
						},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}

	itemID := plan.HCPItems[0].ID
	objectiveID := plan.HCPItems[0].Objectives[0].ID
	deliverableID := plan.HCPItems[0].Objectives[0].Deliverables[0].ID

	resub := &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{
			{
				ID:    flexPtr(itemID),
				HCPID: types.FlexUint64(hcp.ID),
				Objectives: []types.ObjectivePayload{
					{
						ID:          flexPtr(objectiveID),
						Description: "objective one",
						Deliverables: []types.DeliverablePayload{
							{ID: flexPtr(deliverableID), Quarter: 1, Description: "deliverable one"},
						},
					},
				},
			},
		},
	}

	updated, err := services.UpdateEngagementPlan(db, plan.ID, resub)
	if err != nil {
		t.Fatalf("Failed to resubmit plan: %v", err)
	}

	if updated.HCPItems[0].ID != itemID {
		t.Errorf("Expected item identity preserved, got %d", updated.HCPItems[0].ID)
	}
	if updated.HCPItems[0].Objectives[0].ID != objectiveID {
		t.Errorf("Expected objective identity preserved, got %d", updated.HCPItems[0].Objectives[0].ID)
	}
	if updated.HCPItems[0].Objectives[0].Deliverables[0].ID != deliverableID {
		t.Errorf("Expected deliverable identity preserved, got %d",
			updated.HCPItems[0].Objectives[0].Deliverables[0].ID)
	}

	var count int64
	db.Model(&models.HCPDeliverable{}).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 deliverable row after resubmission, got %d", count)
	}
}

// TestUpdatePlanDeletionByOmission tests that children absent from a
// submitted collection are deleted
func TestUpdatePlanDeletionByOmission(t *testing.T) {
	db := setupTestDB(t)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcpA := helpers.CreateTestHCP(t, db, "Jan", "Kowalski", nil, nil)
	hcpB := helpers.CreateTestHCP(t, db, "Ines", "Moreau", nil, nil)

	plan, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{
			{HCPID: types.FlexUint64(hcpA.ID)},
			{HCPID: types.FlexUint64(hcpB.ID)},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}
	if len(plan.HCPItems) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(plan.HCPItems))
	}

	// Resubmit with only the first item
	keep := plan.HCPItems[0].ID
	updated, err := services.UpdateEngagementPlan(db, plan.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{
			{ID: flexPtr(keep), HCPID: types.FlexUint64(hcpA.ID), ReasonRemoved: "clinic closed"},
		},
	})
	if err != nil {
		t.Fatalf("Failed to update plan: %v", err)
	}
	if len(updated.HCPItems) != 1 || updated.HCPItems[0].ID != keep {
		t.Fatalf("Expected only the kept item to remain, got %d items", len(updated.HCPItems))
	}
	if updated.HCPItems[0].ReasonRemoved != "clinic closed" {
		t.Errorf("Expected reason_removed persisted, got %q", updated.HCPItems[0].ReasonRemoved)
	}

	// The omitted item keeps a removal timestamp on its soft-deleted row
	var removed models.EngagementPlanHCPItem
	if err := db.Unscoped().First(&removed, plan.HCPItems[1].ID).Error; err != nil {
		t.Fatalf("Failed to load the removed item: %v", err)
	}
	if !removed.DeletedAt.Valid {
		t.Error("Expected the omitted item soft deleted")
	}
	if removed.RemovedAt == nil {
		t.Error("Expected removed_at stamped on the omitted item")
	}
}

// TestUpdatePlanNilCollectionUntouched tests that an unsubmitted collection
// leaves that branch alone
func TestUpdatePlanNilCollectionUntouched(t *testing.T) {
	db := setupTestDB(t)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Tero", "Virtanen", nil, nil)

	plan, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{{HCPID: types.FlexUint64(hcp.ID)}},
	})
	if err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}

	// hcp_items not submitted at all
	updated, err := services.UpdateEngagementPlan(db, plan.ID, &types.PlanSubmission{})
	if err != nil {
		t.Fatalf("Failed to update plan: %v", err)
	}
	if len(updated.HCPItems) != 1 {
		t.Errorf("Expected untouched hcp items, got %d", len(updated.HCPItems))
	}
}

// TestUpdatePlanCrossParentReattachment tests that a child of another plan
// cannot be claimed by id
func TestUpdatePlanCrossParentReattachment(t *testing.T) {
	db := setupTestDB(t)
	ownerA := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	ownerB := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Sana", "Iqbal", nil, nil)

	planA, err := services.CreateEngagementPlan(db, ownerA.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{{HCPID: types.FlexUint64(hcp.ID)}},
	})
	if err != nil {
		t.Fatalf("Failed to create plan A: %v", err)
	}
	planB, err := services.CreateEngagementPlan(db, ownerB.ID, &types.PlanSubmission{})
	if err != nil {
		t.Fatalf("Failed to create plan B: %v", err)
	}

	foreign := planA.HCPItems[0].ID
	_, err = services.UpdateEngagementPlan(db, planB.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{
			{ID: flexPtr(foreign), HCPID: types.FlexUint64(hcp.ID)},
		},
	})
	var nfErr *types.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("Expected not found for a foreign item id, got %v", err)
	}

	// The foreign item still belongs to plan A
	refetched, err := services.GetEngagementPlan(db, planA.ID)
	if err != nil {
		t.Fatalf("Failed to refetch plan A: %v", err)
	}
	if len(refetched.HCPItems) != 1 || refetched.HCPItems[0].ID != foreign {
		t.Error("Expected plan A to keep its item")
	}
}

// TestUpdatePlanDuplicateSubmittedIDs tests duplicate id rejection before
// any mutation
func TestUpdatePlanDuplicateSubmittedIDs(t *testing.T) {
	db := setupTestDB(t)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Greta", "Olsen", nil, nil)

	plan, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{{HCPID: types.FlexUint64(hcp.ID)}},
	})
	if err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}

	itemID := plan.HCPItems[0].ID
	_, err = services.UpdateEngagementPlan(db, plan.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{
			{ID: flexPtr(itemID), HCPID: types.FlexUint64(hcp.ID)},
			{ID: flexPtr(itemID), HCPID: types.FlexUint64(hcp.ID)},
		},
	})
	var vErr *types.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Expected validation error for duplicate ids, got %v", err)
	}
	if vErr.Field != "hcp_items" {
		t.Errorf("Expected field hcp_items, got %q", vErr.Field)
	}
}

// TestPlanSubmissionValidation tests quarter and status rules
func TestPlanSubmissionValidation(t *testing.T) {
	db := setupTestDB(t)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Ravi", "Menon", nil, nil)

	cases := []struct {
		name         string
		deliverables []types.DeliverablePayload
		field        string
	}{
		{
			name:         "quarter out of range",
			deliverables: []types.DeliverablePayload{{Quarter: 5}},
			field:        "quarter",
		},
		{
			name: "duplicate quarter",
			deliverables: []types.DeliverablePayload{
				{Quarter: 2},
				{Quarter: 2},
			},
			field: "quarter",
		},
		{
			name:         "bad status",
			deliverables: []types.DeliverablePayload{{Quarter: 1, Status: "finished"}},
			field:        "status",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{
				HCPItems: []types.HCPItemPayload{
					{
						HCPID: types.FlexUint64(hcp.ID),
						Objectives: []types.ObjectivePayload{
							{Description: "x", Deliverables: tc.deliverables},
						},
					},
				},
			})
			var vErr *types.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("Expected validation error, got %v", err)
			}
			if vErr.Field != tc.field {
				t.Errorf("Expected field %q, got %q", tc.field, vErr.Field)
			}
		})
	}

	// No plan rows may remain from rejected submissions
	var count int64
	db.Model(&models.EngagementPlan{}).Count(&count)
	if count != 0 {
		t.Errorf("Expected no plans after rejected submissions, got %d", count)
	}
}

// TestDeletePlanCascades tests that deleting a plan removes the whole tree
func TestDeletePlanCascades(t *testing.T) {
	db := setupTestDB(t)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Lena", "Fischer", nil, nil)

	plan, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{
			{
				HCPID: types.FlexUint64(hcp.ID),
				Objectives: []types.ObjectivePayload{
					{
						Description: "objective",
						Deliverables: []types.DeliverablePayload{
							{Quarter: 1, Description: "deliverable"},
						},
					},
				},
			},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}

	if err := services.DeleteEngagementPlan(db, plan.ID); err != nil {
		t.Fatalf("Failed to delete plan: %v", err)
	}

	var nfErr *types.NotFoundError
	if _, err := services.GetEngagementPlan(db, plan.ID); !errors.As(err, &nfErr) {
		t.Errorf("Expected not found after delete, got %v", err)
	}

	var items, objectives, deliverables int64
	db.Model(&models.EngagementPlanHCPItem{}).Count(&items)
	db.Model(&models.HCPObjective{}).Count(&objectives)
	db.Model(&models.HCPDeliverable{}).Count(&deliverables)
	if items != 0 || objectives != 0 || deliverables != 0 {
		t.Errorf("Expected empty tree after delete, got %d items, %d objectives, %d deliverables",
			items, objectives, deliverables)
	}

	if err := services.DeleteEngagementPlan(db, plan.ID); !errors.As(err, &nfErr) {
		t.Errorf("Expected not found on double delete, got %v", err)
	}
}
