package services_test

import (
	"errors"
	"testing"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
)

// TestHCPContactPreferenceValidation tests the contact preference enum on
// create and update
func TestHCPContactPreferenceValidation(t *testing.T) {
	db := setupTestDB(t)

	var vErr *types.ValidationError
	_, err := services.CreateHCP(db, &types.HCPRequest{
		FirstName:         "Paula",
		LastName:          "Mendes",
		ContactPreference: "fax",
	})
	if !errors.As(err, &vErr) || vErr.Field != "contact_preference" {
		t.Errorf("Expected validation error for a bad contact preference, got %v", err)
	}

	hcp, err := services.CreateHCP(db, &types.HCPRequest{
		FirstName:         "Paula",
		LastName:          "Mendes",
		ContactPreference: models.ContactPreferenceEmail,
	})
	if err != nil {
		t.Fatalf("Failed to create hcp: %v", err)
	}
	if hcp.ContactPreference != models.ContactPreferenceEmail {
		t.Errorf("Expected contact preference stored, got %q", hcp.ContactPreference)
	}

	if _, err := services.UpdateHCP(db, hcp.ID, &types.HCPRequest{
		FirstName:         "Paula",
		LastName:          "Mendes",
		ContactPreference: "carrier pigeon",
	}); !errors.As(err, &vErr) {
		t.Errorf("Expected validation error on update, got %v", err)
	}
}
