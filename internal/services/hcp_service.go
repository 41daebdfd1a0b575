package services

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/types"
	"gorm.io/gorm"
)

// GetHCP fetches one HCP with memberships.
func GetHCP(db *gorm.DB, id uint64) (*models.HCP, error) {
	var hcp models.HCP
	err := db.Preload("AffiliateGroups").Preload("TherapeuticAreas").First(&hcp, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &types.NotFoundError{Kind: "hcp", ID: id}
		}
		return nil, err
	}
	return &hcp, nil
}

// CreateHCP creates an HCP and its group/area memberships in one transaction.
func CreateHCP(db *gorm.DB, req *types.HCPRequest) (*models.HCP, error) {
	if err := validateHCPRequest(req); err != nil {
		return nil, err
	}
	var hcp models.HCP
	err := db.Transaction(func(tx *gorm.DB) error {
		hcp = models.HCP{
			FirstName:          req.FirstName,
			LastName:           req.LastName,
			Email:              req.Email,
			Phone:              req.Phone,
			InstitutionName:    req.InstitutionName,
			InstitutionAddress: req.InstitutionAddress,
			City:               req.City,
			Country:            req.Country,
			ContactPreference:  req.ContactPreference,
			TimeAvailability:   req.TimeAvailability,
			HasConsented:       req.HasConsented,
		}
		if err := tx.Create(&hcp).Error; err != nil {
			return err
		}
		return setHCPMemberships(tx, &hcp, req)
	})
	if err != nil {
		return nil, err
	}
	return GetHCP(db, hcp.ID)
}

// UpdateHCP overwrites an HCP's fields and memberships.
func UpdateHCP(db *gorm.DB, id uint64, req *types.HCPRequest) (*models.HCP, error) {
	if err := validateHCPRequest(req); err != nil {
		return nil, err
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		var hcp models.HCP
		if err := tx.First(&hcp, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &types.NotFoundError{Kind: "hcp", ID: id}
			}
			return err
		}
		hcp.FirstName = req.FirstName
		hcp.LastName = req.LastName
		hcp.Email = req.Email
		hcp.Phone = req.Phone
		hcp.InstitutionName = req.InstitutionName
		hcp.InstitutionAddress = req.InstitutionAddress
		hcp.City = req.City
		hcp.Country = req.Country
		hcp.ContactPreference = req.ContactPreference
		hcp.TimeAvailability = req.TimeAvailability
		hcp.HasConsented = req.HasConsented
		if err := tx.Save(&hcp).Error; err != nil {
			return err
		}
		return setHCPMemberships(tx, &hcp, req)
	})
	if err != nil {
		return nil, err
	}
	return GetHCP(db, id)
}

// DeleteHCP soft deletes an HCP.
func DeleteHCP(db *gorm.DB, id uint64) error {
	var hcp models.HCP
	if err := db.First(&hcp, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &types.NotFoundError{Kind: "hcp", ID: id}
		}
		return err
	}
	return db.Delete(&hcp).Error
}

func validateHCPRequest(req *types.HCPRequest) error {
	if !models.ValidContactPreference(req.ContactPreference) {
		return &types.ValidationError{
			Field:   "contact_preference",
			Message: fmt.Sprintf("invalid contact_preference %q", req.ContactPreference),
		}
	}
	return nil
}

func setHCPMemberships(tx *gorm.DB, hcp *models.HCP, req *types.HCPRequest) error {
	if req.AffiliateGroupIDs != nil {
		groups, err := fetchByIDs[models.AffiliateGroup](tx, "affiliate group", types.Uint64Slice(req.AffiliateGroupIDs))
		if err != nil {
			return err
		}
		if err := tx.Model(hcp).Association("AffiliateGroups").Replace(&groups); err != nil {
			return err
		}
	}
	if req.TherapeuticAreaIDs != nil {
		areas, err := fetchByIDs[models.TherapeuticArea](tx, "therapeutic area", types.Uint64Slice(req.TherapeuticAreaIDs))
		if err != nil {
			return err
		}
		if err := tx.Model(hcp).Association("TherapeuticAreas").Replace(&areas); err != nil {
			return err
		}
	}
	return nil
}

// fetchByIDs loads all records for the given ids and fails with NotFoundError
// on the first missing one.
func fetchByIDs[T any](tx *gorm.DB, kind string, ids []uint64) ([]T, error) {
	if len(ids) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := tx.Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) != len(ids) {
		found := make(map[uint64]struct{}, len(records))
		for i := range records {
			found[recordID(&records[i])] = struct{}{}
		}
		for _, id := range ids {
			if _, ok := found[id]; !ok {
				return nil, &types.NotFoundError{Kind: kind, ID: id}
			}
		}
	}
	return records, nil
}

// recordID pulls the uint64 ID field off any model.
func recordID(rec interface{}) uint64 {
	v := reflect.ValueOf(rec)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	f := v.FieldByName("ID")
	if f.IsValid() && f.Kind() == reflect.Uint64 {
		return f.Uint()
	}
	return 0
}
