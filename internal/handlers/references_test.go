package handlers_test

import (
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/fieldlink/interactions-api/internal/handlers"
	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/tests/helpers"
)

func newProjectApp(db *gorm.DB, user *models.User) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: handlers.ErrorHandler})
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	})

	h := &handlers.ReferenceHandler[models.Project]{
		DB: db, Kind: "project",
		Preloads:   []string{"AffiliateGroups", "TherapeuticAreas"},
		Joins:      &services.ProjectJoins,
		TypeFilter: true,
	}
	h.Register(app.Group("/api"), "/projects")
	return app
}

// TestProjectListFilters tests the membership and type filters of the
// reference lists through the HTTP layer
func TestProjectListFilters(t *testing.T) {
	db := setupTestDB(t)
	staff := helpers.CreateTestUser(t, db, true, nil, nil, nil)
	ag := helpers.CreateTestAffiliateGroup(t, db, "baltics")
	ta := helpers.CreateTestTherapeuticArea(t, db, "dermatology")

	congress := models.Project{
		Name: "derm-congress", Type: "congress",
		AffiliateGroups:  []models.AffiliateGroup{ag},
		TherapeuticAreas: []models.TherapeuticArea{ta},
	}
	if err := db.Create(&congress).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	study := models.Project{Name: "field-study", Type: "study"}
	if err := db.Create(&study).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	app := newProjectApp(db, &staff)
	list := func(query string) []models.Project {
		req := httptest.NewRequest("GET", "/api/projects/?"+query, nil)
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		helpers.AssertStatus(t, resp, 200)
		var projects []models.Project
		helpers.ParseJSON(t, resp, &projects)
		return projects
	}

	byTA := list(fmt.Sprintf("tas=%d", ta.ID))
	if len(byTA) != 1 || byTA[0].ID != congress.ID {
		t.Errorf("Expected only the dermatology project, got %d results", len(byTA))
	}

	byAG := list(fmt.Sprintf("affiliate_groups=%d", ag.ID))
	if len(byAG) != 1 || byAG[0].ID != congress.ID {
		t.Errorf("Expected only the baltics project, got %d results", len(byAG))
	}

	byType := list("type=study")
	if len(byType) != 1 || byType[0].ID != study.ID {
		t.Errorf("Expected only the study project, got %d results", len(byType))
	}

	// Malformed id list
	req := httptest.NewRequest("GET", "/api/projects/?tas=abc", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 400)
	helpers.AssertErrorType(t, resp, "validation")
}

// TestProjectListNonStaffScope tests the default membership scoping for
// non-staff callers
func TestProjectListNonStaffScope(t *testing.T) {
	db := setupTestDB(t)
	ag := helpers.CreateTestAffiliateGroup(t, db, "nordics")
	caller := helpers.CreateTestUser(t, db, false, nil, []models.AffiliateGroup{ag}, nil)

	visible := models.Project{Name: "nordic-tour", AffiliateGroups: []models.AffiliateGroup{ag}}
	if err := db.Create(&visible).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	hidden := models.Project{Name: "unrelated"}
	if err := db.Create(&hidden).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}

	app := newProjectApp(db, &caller)
	req := httptest.NewRequest("GET", "/api/projects/", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	helpers.AssertStatus(t, resp, 200)

	var projects []models.Project
	helpers.ParseJSON(t, resp, &projects)
	if len(projects) != 1 || projects[0].ID != visible.ID {
		t.Errorf("Expected only the caller's group project, got %d results", len(projects))
	}
}
