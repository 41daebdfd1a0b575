package services_test

import (
	"errors"
	"testing"

	"github.com/fieldlink/interactions-api/internal/models"
	"github.com/fieldlink/interactions-api/internal/services"
	"github.com/fieldlink/interactions-api/internal/types"
	"github.com/fieldlink/interactions-api/tests/helpers"
	"gorm.io/gorm"
)

func createTwoItemPlan(t *testing.T, db *gorm.DB) *models.EngagementPlan {
	t.Helper()
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)
	hcpA := helpers.CreateTestHCP(t, db, "Aki", "Tanaka", nil, nil)
	hcpB := helpers.CreateTestHCP(t, db, "Rosa", "Diaz", nil, nil)

	plan, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{
		HCPItems: []types.HCPItemPayload{
			{HCPID: types.FlexUint64(hcpA.ID)},
			{HCPID: types.FlexUint64(hcpB.ID)},
		},
	})
	if err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}
	return plan
}

// TestApproveWholePlan tests the empty-selection variant
func TestApproveWholePlan(t *testing.T) {
	db := setupTestDB(t)
	plan := createTwoItemPlan(t, db)

	approved, err := services.ApproveEngagementPlan(db, plan.ID, nil)
	if err != nil {
		t.Fatalf("Failed to approve plan: %v", err)
	}
	if !approved.Approved || approved.ApprovedAt == nil {
		t.Error("Expected plan approved with a timestamp")
	}
	for _, item := range approved.HCPItems {
		if !item.Approved || item.ApprovedAt == nil {
			t.Errorf("Expected item %d approved with a timestamp", item.ID)
		}
	}

	// hcp_items=true is the same action
	db2 := setupTestDB(t)
	plan2 := createTwoItemPlan(t, db2)
	all := true
	approved2, err := services.ApproveEngagementPlan(db2, plan2.ID, &types.ApprovalRequest{HCPItems: &all})
	if err != nil {
		t.Fatalf("Failed to approve with hcp_items=true: %v", err)
	}
	if !approved2.Approved {
		t.Error("Expected plan approved via hcp_items=true")
	}
}

// TestApproveSelectedItems tests partial approval and the rollup rule
func TestApproveSelectedItems(t *testing.T) {
	db := setupTestDB(t)
	plan := createTwoItemPlan(t, db)
	first := plan.HCPItems[0].ID
	second := plan.HCPItems[1].ID

	partial, err := services.ApproveEngagementPlan(db, plan.ID, &types.ApprovalRequest{
		HCPItemIDs: types.FlexList[types.FlexUint64]{types.FlexUint64(first)},
	})
	if err != nil {
		t.Fatalf("Failed to approve first item: %v", err)
	}
	if partial.Approved {
		t.Error("Expected plan unapproved while the second item is pending")
	}
	if !partial.HCPItems[0].Approved || partial.HCPItems[1].Approved {
		t.Error("Expected only the selected item approved")
	}

	full, err := services.ApproveEngagementPlan(db, plan.ID, &types.ApprovalRequest{
		HCPItemIDs: types.FlexList[types.FlexUint64]{types.FlexUint64(second)},
	})
	if err != nil {
		t.Fatalf("Failed to approve second item: %v", err)
	}
	if !full.Approved {
		t.Error("Expected plan approved once the last item is approved")
	}
}

// TestApproveValidation tests the selection rules
func TestApproveValidation(t *testing.T) {
	db := setupTestDB(t)
	plan := createTwoItemPlan(t, db)

	// Unknown item id
	_, err := services.ApproveEngagementPlan(db, plan.ID, &types.ApprovalRequest{
		HCPItemIDs: types.FlexList[types.FlexUint64]{types.FlexUint64(99999)},
	})
	var nfErr *types.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Errorf("Expected not found for an unknown item id, got %v", err)
	}

	// hcp_items=false is meaningless
	no := false
	_, err = services.ApproveEngagementPlan(db, plan.ID, &types.ApprovalRequest{HCPItems: &no})
	var vErr *types.ValidationError
	if !errors.As(err, &vErr) {
		t.Errorf("Expected validation error for hcp_items=false, got %v", err)
	}

	// hcp_items and hcp_items_ids are mutually exclusive
	yes := true
	_, err = services.ApproveEngagementPlan(db, plan.ID, &types.ApprovalRequest{
		HCPItems:   &yes,
		HCPItemIDs: types.FlexList[types.FlexUint64]{types.FlexUint64(plan.HCPItems[0].ID)},
	})
	if !errors.As(err, &vErr) {
		t.Errorf("Expected validation error for mixed selection, got %v", err)
	}

	// Unknown plan
	_, err = services.ApproveEngagementPlan(db, 424242, nil)
	if !errors.As(err, &nfErr) {
		t.Errorf("Expected not found for an unknown plan, got %v", err)
	}
}

// TestUnapproveEmptyPlan tests that a plan without items can leave the
// approved state through the whole-plan action
func TestUnapproveEmptyPlan(t *testing.T) {
	db := setupTestDB(t)
	owner := helpers.CreateTestUser(t, db, false, nil, nil, nil)

	plan, err := services.CreateEngagementPlan(db, owner.ID, &types.PlanSubmission{})
	if err != nil {
		t.Fatalf("Failed to create plan: %v", err)
	}

	approved, err := services.ApproveEngagementPlan(db, plan.ID, nil)
	if err != nil {
		t.Fatalf("Failed to approve plan: %v", err)
	}
	if !approved.Approved {
		t.Fatal("Expected an empty plan to be approvable")
	}

	reverted, err := services.UnapproveEngagementPlan(db, plan.ID, nil)
	if err != nil {
		t.Fatalf("Failed to unapprove plan: %v", err)
	}
	if reverted.Approved {
		t.Error("Expected whole-plan unapprove to mark the plan unapproved")
	}
}

// TestUnapproveAsymmetry tests that one unapproved item is enough to drop
// the plan approval, and that the approval timestamp survives
func TestUnapproveAsymmetry(t *testing.T) {
	db := setupTestDB(t)
	plan := createTwoItemPlan(t, db)

	full, err := services.ApproveEngagementPlan(db, plan.ID, nil)
	if err != nil {
		t.Fatalf("Failed to approve plan: %v", err)
	}
	approvedAt := full.ApprovedAt
	if approvedAt == nil {
		t.Fatal("Expected approval timestamp")
	}

	reverted, err := services.UnapproveEngagementPlan(db, plan.ID, &types.ApprovalRequest{
		HCPItemIDs: types.FlexList[types.FlexUint64]{types.FlexUint64(plan.HCPItems[0].ID)},
	})
	if err != nil {
		t.Fatalf("Failed to unapprove item: %v", err)
	}
	if reverted.Approved {
		t.Error("Expected plan unapproved after unapproving one item")
	}
	if reverted.ApprovedAt == nil {
		t.Error("Expected approval timestamp preserved")
	}
	if !reverted.HCPItems[1].Approved {
		t.Error("Expected the other item to stay approved")
	}

	// Re-approving the one item restores the plan approval
	again, err := services.ApproveEngagementPlan(db, plan.ID, &types.ApprovalRequest{
		HCPItemIDs: types.FlexList[types.FlexUint64]{types.FlexUint64(plan.HCPItems[0].ID)},
	})
	if err != nil {
		t.Fatalf("Failed to re-approve item: %v", err)
	}
	if !again.Approved {
		t.Error("Expected plan approved again once no item is pending")
	}
}
