package services

import (
	"fmt"

	"github.com/fieldlink/interactions-api/internal/types"
	"gorm.io/gorm"
)

// childSpec describes how to reconcile one level of the plan tree. The engine
// is the same at every level; only the identity accessor and the three
// mutation callbacks differ.
type childSpec[P any] struct {
	// kind names the child collection in validation errors ("hcp_items" etc.)
	kind string

	// id returns the submitted identity, or nil for a create.
	id func(P) *uint64

	// deleteAbsent removes children of parentID whose ids are not in keep,
	// cascading to their descendants.
	deleteAbsent func(tx *gorm.DB, parentID uint64, keep []uint64) error

	// update applies the payload to the child with the given id, scoped to
	// parentID. A miss must surface as *types.NotFoundError so a child of a
	// different parent can never be reattached.
	update func(tx *gorm.DB, parentID uint64, id uint64, payload P) error

	// create inserts a new child under parentID.
	create func(tx *gorm.DB, parentID uint64, payload P) error
}

// submittedIDs collects the ids present in the submission, rejecting
// duplicates before any mutation happens.
func submittedIDs[P any](submitted []P, spec childSpec[P]) ([]uint64, error) {
	seen := make(map[uint64]struct{}, len(submitted))
	ids := make([]uint64, 0, len(submitted))
	for _, payload := range submitted {
		idp := spec.id(payload)
		if idp == nil {
			continue
		}
		if _, dup := seen[*idp]; dup {
			return nil, &types.ValidationError{
				Field:   spec.kind,
				Message: fmt.Sprintf("duplicate id %d in submitted %s", *idp, spec.kind),
			}
		}
		seen[*idp] = struct{}{}
		ids = append(ids, *idp)
	}
	return ids, nil
}

// reconcileChildren makes the stored children of parentID match the submitted
// collection: children absent from the submission are deleted first, then
// each payload is applied as an update (id present) or a create (id absent)
// in submitted order.
func reconcileChildren[P any](tx *gorm.DB, parentID uint64, submitted []P, spec childSpec[P]) error {
	keep, err := submittedIDs(submitted, spec)
	if err != nil {
		return err
	}
	if err := spec.deleteAbsent(tx, parentID, keep); err != nil {
		return err
	}
	for _, payload := range submitted {
		if idp := spec.id(payload); idp != nil {
			if err := spec.update(tx, parentID, *idp, payload); err != nil {
				return err
			}
		} else {
			if err := spec.create(tx, parentID, payload); err != nil {
				return err
			}
		}
	}
	return nil
}

// flexID converts an optional FlexUint64 into the engine's identity form.
func flexID(f *types.FlexUint64) *uint64 {
	if f == nil {
		return nil
	}
	v := f.Uint64()
	return &v
}
