package handlers

import (
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/fieldlink/interactions-api/internal/utils"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ReferenceHandler serves flat CRUD for one reference kind (affiliate groups,
// therapeutic areas, projects, resources, outcomes, success factors, medical
// plan objectives). The record shape is the model itself. Kinds with Joins set
// get the membership list filters (tas, affiliate_groups, user) and the
// non-staff default scoping; TypeFilter additionally enables the type
// parameter.
type ReferenceHandler[T any] struct {
	DB         *gorm.DB
	Kind       string
	Preloads   []string
	Joins      *services.MembershipJoins
	TypeFilter bool
}

// Register mounts the CRUD routes under the given path.
func (h *ReferenceHandler[T]) Register(router fiber.Router, path string) {
	group := router.Group(path)
	group.Get("/", h.List)
	group.Post("/", h.Create)
	group.Get("/:id", h.Get)
	group.Put("/:id", h.Update)
	group.Delete("/:id", h.Delete)
}

// List handles GET on the collection.
func (h *ReferenceHandler[T]) List(c *fiber.Ctx) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	if h.Joins == nil {
		records, err := services.ListRecords[T](h.DB, h.Preloads...)
		if err != nil {
			return err
		}
		return c.Status(fiber.StatusOK).JSON(records)
	}

	filter := &services.ReferenceFilter{}
	if filter.AffiliateGroupIDs, err = parseIDListQuery(c, "affiliate_groups"); err != nil {
		return err
	}
	if filter.TherapeuticAreaIDs, err = parseIDListQuery(c, "tas"); err != nil {
		return err
	}
	if filter.UserID, err = parseOptionalIDQuery(c, "user"); err != nil {
		return err
	}
	if h.TypeFilter {
		filter.Type = c.Query("type")
	}

	records, err := services.FilterReferenceRecords[T](h.DB, user, *h.Joins, filter, h.Preloads...)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(records)
}

// Get handles GET on one record.
func (h *ReferenceHandler[T]) Get(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	record, err := services.GetRecord[T](h.DB, h.Kind, id, h.Preloads...)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(record)
}

// Create handles POST on the collection.
func (h *ReferenceHandler[T]) Create(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	var record T
	if err := c.BodyParser(&record); err != nil {
		return &types.ValidationError{Message: "malformed " + h.Kind + ": " + err.Error()}
	}
	if err := services.CreateRecord(h.DB, &record); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(record)
}

// Update handles PUT on one record.
func (h *ReferenceHandler[T]) Update(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var record T
	if err := c.BodyParser(&record); err != nil {
		return &types.ValidationError{Message: "malformed " + h.Kind + ": " + err.Error()}
	}
	if err := services.UpdateRecord(h.DB, h.Kind, id, &record); err != nil {
		return err
	}
	updated, err := services.GetRecord[T](h.DB, h.Kind, id, h.Preloads...)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

// Delete handles DELETE on one record.
func (h *ReferenceHandler[T]) Delete(c *fiber.Ctx) error {
	if _, err := currentUser(c); err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	if err := services.DeleteRecord[T](h.DB, h.Kind, id); err != nil {
		return err
	}
	return utils.MutationSuccessResponse(c, 1)
}
