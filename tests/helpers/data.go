package helpers

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/fieldlink/interactions-api/internal/models"
	"gorm.io/gorm"
)

// SeedRoles creates the standard role rows.
func SeedRoles(t *testing.T, db *gorm.DB) (msl, manager models.Role) {
	t.Helper()
	msl = models.Role{Name: "MSL"}
	if err := db.Create(&msl).Error; err != nil {
		t.Fatalf("Failed to create MSL role: %v", err)
	}
	manager = models.Role{Name: "MSL Manager"}
	if err := db.Create(&manager).Error; err != nil {
		t.Fatalf("Failed to create MSL Manager role: %v", err)
	}
	return msl, manager
}

// CreateTestAffiliateGroup creates an affiliate group with a unique name.
func CreateTestAffiliateGroup(t *testing.T, db *gorm.DB, name string) models.AffiliateGroup {
	t.Helper()
	ag := models.AffiliateGroup{Name: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])}
	if err := db.Create(&ag).Error; err != nil {
		t.Fatalf("Failed to create affiliate group: %v", err)
	}
	return ag
}

// CreateTestTherapeuticArea creates a therapeutic area with a unique name.
func CreateTestTherapeuticArea(t *testing.T, db *gorm.DB, name string) models.TherapeuticArea {
	t.Helper()
	ta := models.TherapeuticArea{Name: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])}
	if err := db.Create(&ta).Error; err != nil {
		t.Fatalf("Failed to create therapeutic area: %v", err)
	}
	return ta
}

// CreateTestUser creates a user with a unique email and the given relations.
func CreateTestUser(t *testing.T, db *gorm.DB, staff bool, roles []models.Role, ags []models.AffiliateGroup, tas []models.TherapeuticArea) models.User {
	t.Helper()
	user := models.User{
		Email:            fmt.Sprintf("user-%s@example.com", uuid.NewString()[:8]),
		IsStaff:          staff,
		Roles:            roles,
		AffiliateGroups:  ags,
		TherapeuticAreas: tas,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// CreateTestHCP creates an HCP with the given memberships.
func CreateTestHCP(t *testing.T, db *gorm.DB, firstName, lastName string, ags []models.AffiliateGroup, tas []models.TherapeuticArea) models.HCP {
	t.Helper()
	hcp := models.HCP{
		FirstName:        firstName,
		LastName:         lastName,
		AffiliateGroups:  ags,
		TherapeuticAreas: tas,
	}
	if err := db.Create(&hcp).Error; err != nil {
		t.Fatalf("Failed to create hcp: %v", err)
	}
	return hcp
}

// CreateTestProject creates a project with a unique name.
func CreateTestProject(t *testing.T, db *gorm.DB, name string) models.Project {
	t.Helper()
	project := models.Project{Name: fmt.Sprintf("%s-%s", name, uuid.NewString()[:8])}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	return project
}

// CreateTestPlanTree creates a plan with one HCP item, one objective and one
// deliverable, returning the stored tree.
func CreateTestPlanTree(t *testing.T, db *gorm.DB, ownerID, hcpID uint64, year int) models.EngagementPlan {
	t.Helper()
	if year == 0 {
		year = time.Now().UTC().Year()
	}
	plan := models.EngagementPlan{UserID: ownerID, Year: year}
	if err := db.Create(&plan).Error; err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}
	item := models.EngagementPlanHCPItem{EngagementPlanID: plan.ID, HCPID: hcpID}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("Failed to create hcp item: %v", err)
	}
	objective := models.HCPObjective{
		EngagementPlanItemID: item.ID,
		HCPID:                hcpID,
		Description:          "initial objective",
	}
	if err := db.Create(&objective).Error; err != nil {
		t.Fatalf("Failed to create objective: %v", err)
	}
	deliverable := models.HCPDeliverable{
		ObjectiveID: objective.ID,
		Quarter:     1,
		Description: "initial deliverable",
		Status:      models.DeliverableOnTrack,
	}
	if err := db.Create(&deliverable).Error; err != nil {
		t.Fatalf("Failed to create deliverable: %v", err)
	}

	objective.Deliverables = []models.HCPDeliverable{deliverable}
	item.Objectives = []models.HCPObjective{objective}
	plan.HCPItems = []models.EngagementPlanHCPItem{item}
	return plan
}
