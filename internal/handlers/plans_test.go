package handlers_test

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fieldlink/interactions-api/internal/database"
	"github.com/fieldlink/interactions-api/internal/handlers"
	"github.com/fieldlink/interactions-api/internal/models"
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

// newPlanApp mounts the plan routes behind a stub auth layer that injects
// the given user
func newPlanApp(db *gorm.DB, user *models.User) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	})

	h := &handlers.PlanHandler{DB: db}
	app.Get("/api/engagement-plans", h.ListPlans)
	app.Post("/api/engagement-plans", h.CreatePlan)
	app.Get("/api/engagement-plans/:id", h.GetPlan)
	app.Put("/api/engagement-plans/:id", h.UpdatePlan)
	app.Delete("/api/engagement-plans/:id", h.DeletePlan)
	app.Post("/api/engagement-plans/:id/approve", h.ApprovePlan)
	app.Post("/api/engagement-plans/:id/unapprove", h.UnapprovePlan)
	return app
}

// TestPlanLifecycleHTTP tests the full create/read/update/approve cycle
// through the HTTP layer, including flexible string ids in the payload
func TestPlanLifecycleHTTP(t *testing.T) {
	db := setupTestDB(t)
	staff := helpers.CreateTestUser(t, db, true, nil, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Hana", "Svoboda", nil, nil)
	app := newPlanApp(db, &staff)

	// Create; hcp_id is submitted as a string on purpose
	body := fmt.Sprintf(`{
		"hcp_items": [
			{
				"hcp_id": "%d",
				"reason_added": "engagement_own_objectives",
				"objectives": [
					{
						"description": "introduce new data",
						"deliverables": [
							{"quarter": 1, "description": "first visit", "status": "on_track"},
							{"quarter": 2, "description": "follow-up", "status": "on_track"}
						]
					}
				]
			}
		]
	}`, hcp.ID)

	req := httptest.NewRequest("POST", "/api/engagement-plans", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 201)

	var plan models.EngagementPlan
	helpers.ParseJSON(t, resp, &plan)
	if plan.ID == 0 {
		t.Fatal("Expected a plan id")
	}
	if len(plan.HCPItems) != 1 || plan.HCPItems[0].HCPID != hcp.ID {
		t.Fatalf("Expected one item for the submitted hcp, got %+v", plan.HCPItems)
	}
	if len(plan.HCPItems[0].Objectives[0].Deliverables) != 2 {
		t.Fatalf("Expected 2 deliverables, got %d", len(plan.HCPItems[0].Objectives[0].Deliverables))
	}

	// List
	req = httptest.NewRequest("GET", "/api/engagement-plans", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	var plans []models.EngagementPlan
	helpers.ParseJSON(t, resp, &plans)
	if len(plans) != 1 {
		t.Fatalf("Expected 1 plan in the list, got %d", len(plans))
	}

	// Resubmit keeping only the first deliverable, ids as strings
	item := plan.HCPItems[0]
	objective := item.Objectives[0]
	keep := objective.Deliverables[0]
	update := fmt.Sprintf(`{
		"hcp_items": [
			{
				"id": "%d",
				"hcp_id": %d,
				"reason_added": "engagement_own_objectives",
				"objectives": [
					{
						"id": "%d",
						"description": "introduce new data",
						"deliverables": [
							{"id": "%d", "quarter": 1, "description": "first visit done", "status": "slightly_behind"}
						]
					}
				]
			}
		]
	}`, item.ID, hcp.ID, objective.ID, keep.ID)

	req = httptest.NewRequest("PUT", fmt.Sprintf("/api/engagement-plans/%d", plan.ID), bytes.NewBufferString(update))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var updated models.EngagementPlan
	helpers.ParseJSON(t, resp, &updated)
	got := updated.HCPItems[0].Objectives[0].Deliverables
	if len(got) != 1 || got[0].ID != keep.ID {
		t.Fatalf("Expected only the kept deliverable, got %+v", got)
	}
	if got[0].Description != "first visit done" {
		t.Errorf("Expected updated description, got %q", got[0].Description)
	}

	// Approve a selection; the single-value form of hcp_items_ids
	approveBody := fmt.Sprintf(`{"hcp_items_ids": "%d"}`, item.ID)
	req = httptest.NewRequest("POST", fmt.Sprintf("/api/engagement-plans/%d/approve", plan.ID), bytes.NewBufferString(approveBody))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var approved models.EngagementPlan
	helpers.ParseJSON(t, resp, &approved)
	if !approved.Approved {
		t.Error("Expected plan approved after its only item is approved")
	}

	// Unapprove with an empty body covers the whole plan
	req = httptest.NewRequest("POST", fmt.Sprintf("/api/engagement-plans/%d/unapprove", plan.ID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)
	var reverted models.EngagementPlan
	helpers.ParseJSON(t, resp, &reverted)
	if reverted.Approved {
		t.Error("Expected plan unapproved")
	}

	// Delete
	req = httptest.NewRequest("DELETE", fmt.Sprintf("/api/engagement-plans/%d", plan.ID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	req = httptest.NewRequest("GET", fmt.Sprintf("/api/engagement-plans/%d", plan.ID), nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
}

// TestCreatePlanForbidden tests that a user without the permission gets a
// 403 envelope
func TestCreatePlanForbidden(t *testing.T) {
	db := setupTestDB(t)
	helpers.SeedRoles(t, db)
	nobody := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	app := newPlanApp(db, &nobody)

	req := httptest.NewRequest("POST", "/api/engagement-plans", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 403)
	helpers.AssertErrorType(t, resp, "permission")
}

// TestApprovePlanForbidden tests that plan owners cannot approve their own
// plan
func TestApprovePlanForbidden(t *testing.T) {
	db := setupTestDB(t)
	mslRole, _ := helpers.SeedRoles(t, db)
	msl := helpers.CreateTestUser(t, db, false, []models.Role{mslRole}, nil, nil)
	hcp := helpers.CreateTestHCP(t, db, "Igor", "Melnyk", nil, nil)
	plan := helpers.CreateTestPlanTree(t, db, msl.ID, hcp.ID, 0)

	app := newPlanApp(db, &msl)
	req := httptest.NewRequest("POST", fmt.Sprintf("/api/engagement-plans/%d/approve", plan.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 403)
	helpers.AssertErrorType(t, resp, "permission")
}

// TestGetPlanOutOfScope tests that plans outside the caller's affiliate
// groups read as missing
func TestGetPlanOutOfScope(t *testing.T) {
	db := setupTestDB(t)
	_, managerRole := helpers.SeedRoles(t, db)
	agA := helpers.CreateTestAffiliateGroup(t, db, "east")
	agB := helpers.CreateTestAffiliateGroup(t, db, "west")

	manager := helpers.CreateTestUser(t, db, false, []models.Role{managerRole}, []models.AffiliateGroup{agA}, nil)
	owner := helpers.CreateTestUser(t, db, false, nil, []models.AffiliateGroup{agB}, nil)
	hcp := helpers.CreateTestHCP(t, db, "Lia", "Costa", nil, nil)
	plan := helpers.CreateTestPlanTree(t, db, owner.ID, hcp.ID, 0)

	app := newPlanApp(db, &manager)
	req := httptest.NewRequest("GET", fmt.Sprintf("/api/engagement-plans/%d", plan.ID), nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 404)
	helpers.AssertErrorType(t, resp, "not_found")
}

// TestBadPlanIDParam tests the id parameter validation
func TestBadPlanIDParam(t *testing.T) {
	db := setupTestDB(t)
	staff := helpers.CreateTestUser(t, db, true, nil, nil, nil)
	app := newPlanApp(db, &staff)

	req := httptest.NewRequest("GET", "/api/engagement-plans/abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)
	helpers.AssertErrorType(t, resp, "validation")
}
