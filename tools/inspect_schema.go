package main

import (
	"fmt"
	"log"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldlink/interactions-api/internal/models"
)

func main() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatal(err)
	}

	// Auto-migrate to see what GORM creates
	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.AffiliateGroup{},
		&models.TherapeuticArea{},
		&models.InteractionOutcome{},
		&models.Project{},
		&models.Resource{},
		&models.BrandCriticalSuccessFactor{},
		&models.MedicalPlanObjective{},
		&models.HCP{},
		&models.EngagementPlan{},
		&models.EngagementPlanHCPItem{},
		&models.EngagementPlanProjectItem{},
		&models.HCPObjective{},
		&models.ProjectObjective{},
		&models.HCPDeliverable{},
		&models.ProjectDeliverable{},
		&models.Interaction{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatal(err)
	}

	// Get the schema
	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type='table'").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)
		var schema string
		db.Raw(fmt.Sprintf("SELECT sql FROM sqlite_master WHERE name='%s'", table)).Scan(&schema)
		fmt.Println(schema)
	}
}
