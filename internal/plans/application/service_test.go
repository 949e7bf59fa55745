package application

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	funds "lngtrade-cloud/internal/funds/domain"
	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/numbering"
	orders "lngtrade-cloud/internal/orders/domain"
	plans "lngtrade-cloud/internal/plans/domain"
	"lngtrade-cloud/internal/state"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newService(t *testing.T) (*Service, *state.Store) {
	t.Helper()
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(100))
	clock := &fakeClock{now: time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)}
	svc, err := NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func validInput() CreateInput {
	return CreateInput{
		SiteID:           "site-01",
		PriceID:          "price-public-1",
		PlannedVolume:    30,
		FreightFee:       1000,
		TransportMode:    plans.TransportCarrier,
		PaymentMethod:    plans.PaymentPrepaid,
		WeighDiffRule:    plans.WeighRuleDelta,
		AgreementChecked: true,
		CarrierID:        "carrier-01",
		VehicleID:        "vehicle-01",
		DriverID:         "person-01",
		EscortID:         "person-02",
	}
}

func TestCreateOccupiesFunds(t *testing.T) {
	svc, store := newService(t)

	// 30 * 3950 + 1000 = 119500, well inside the 160000 available.
	result := svc.Create(validInput())
	if !result.Success {
		t.Fatalf("expected success, got errors %v", result.Errors)
	}

	snap := store.Snapshot()
	plan := snap.FindPlan(result.PlanID)
	if plan == nil {
		t.Fatal("plan not stored")
	}
	if plan.Status != plans.StatusSubmitted {
		t.Fatalf("status = %s", plan.Status)
	}
	if plan.EstimatedAmount != 118500 || plan.TotalAmount != 119500 {
		t.Fatalf("amounts = %v / %v", plan.EstimatedAmount, plan.TotalAmount)
	}
	if snap.Account.Available != 40500 || snap.Account.Occupied != 159500 {
		t.Fatalf("account = %+v", snap.Account)
	}
	if !snap.Account.Consistent() {
		t.Fatalf("account inconsistent: %+v", snap.Account)
	}
	if snap.Ledgers[0].Type != funds.LedgerTypeOccupy || snap.Ledgers[0].Amount != 119500 {
		t.Fatalf("ledger head = %+v", snap.Ledgers[0])
	}
	if snap.Ledgers[0].RelatedNo != plan.Number {
		t.Fatalf("ledger related = %s, plan = %s", snap.Ledgers[0].RelatedNo, plan.Number)
	}
	if snap.PlanNoIndex[plan.Number] != plan.ID {
		t.Fatalf("number index missing %s", plan.Number)
	}
	if snap.Notifications[0].Title != "新计划待审批" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}
}

func TestCreateInsufficientBalance(t *testing.T) {
	svc, store := newService(t)

	// 120 * 4200 + 3000 = 507000 against 160000 available.
	input := validInput()
	input.PriceID = "price-exclusive-a"
	input.PlannedVolume = 120
	input.FreightFee = 3000

	result := svc.Create(input)
	if result.Success {
		t.Fatal("expected failure")
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "余额不足") {
		t.Fatalf("errors = %v", result.Errors)
	}

	snap := store.Snapshot()
	if len(snap.Plans) != 2 {
		t.Fatalf("failed create must not store a plan, got %d", len(snap.Plans))
	}
	if snap.Account.Available != 160000 {
		t.Fatalf("failed create must not move funds: %+v", snap.Account)
	}
}

func TestCreateAccumulatesAllErrors(t *testing.T) {
	svc, _ := newService(t)

	input := CreateInput{
		SiteID:           "site-02", // maintenance, block policy
		PriceID:          "price-missing",
		PlannedVolume:    0,
		TransportMode:    plans.TransportSelf,
		AgreementChecked: false,
		VehicleID:        "vehicle-02", // expired cert
		DriverID:         "person-03",  // expired cert
		EscortID:         "",
	}

	result := svc.Create(input)
	if result.Success {
		t.Fatal("expected failure")
	}
	want := []string{"维护中", "请选择有效气价", "计划量必须大于 0", "费用确认条款", "运输资质已过期", "资质已过期", "请选择押运员"}
	for _, fragment := range want {
		found := false
		for _, msg := range result.Errors {
			if strings.Contains(msg, fragment) {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("missing error containing %q in %v", fragment, result.Errors)
		}
	}
}

type captureOutbound struct {
	items []notify.Item
}

func (c *captureOutbound) Forward(_ context.Context, item notify.Item) {
	c.items = append(c.items, item)
}

func TestCreateLowBalanceWarning(t *testing.T) {
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(100))
	clock := &fakeClock{now: time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)}
	out := &captureOutbound{}
	svc, err := NewService(store, gen, clock,
		WithLowBalanceThreshold(100000), WithOutbound(out))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	// 119500 occupied leaves 40500 available, under the 100000 floor.
	result := svc.Create(validInput())
	if !result.Success {
		t.Fatalf("errors = %v", result.Errors)
	}

	warning := store.Snapshot().Notifications[0]
	if warning.Category != notify.CategoryFinance || warning.Title != "余额预警" {
		t.Fatalf("notification = %+v", warning)
	}
	if !strings.Contains(warning.Content, "100000.00") {
		t.Fatalf("content = %s", warning.Content)
	}

	// Only the finance warning goes outbound; the approval note stays
	// in-store.
	if len(out.items) != 1 || out.items[0].Title != "余额预警" {
		t.Fatalf("forwarded = %+v", out.items)
	}
}

func TestCreateNoWarningAboveThreshold(t *testing.T) {
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(100))
	clock := &fakeClock{now: time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)}
	out := &captureOutbound{}
	svc, err := NewService(store, gen, clock,
		WithLowBalanceThreshold(40000), WithOutbound(out))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	// 40500 remaining stays above the 40000 floor.
	if result := svc.Create(validInput()); !result.Success {
		t.Fatalf("errors = %v", result.Errors)
	}
	if got := store.Snapshot().Notifications[0].Title; got != "新计划待审批" {
		t.Fatalf("notification = %s", got)
	}
	if len(out.items) != 0 {
		t.Fatalf("forwarded = %+v", out.items)
	}
}

func TestCreateUpstreamSkipsCrewChecks(t *testing.T) {
	svc, _ := newService(t)

	input := validInput()
	input.TransportMode = plans.TransportUpstream
	input.VehicleID = ""
	input.DriverID = ""
	input.EscortID = ""

	if result := svc.Create(input); !result.Success {
		t.Fatalf("upstream delivery needs no crew, got %v", result.Errors)
	}
}

func TestReviewApproveFreezesAndSpawnsOrder(t *testing.T) {
	svc, store := newService(t)

	err := svc.Review(ReviewInput{PlanID: "plan-1001", Action: ActionApprove, Reviewer: "市场部-周婷"})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	snap := store.Snapshot()
	plan := snap.FindPlan("plan-1001")
	if plan.Status != plans.StatusApproved || plan.Reviewer != "市场部-周婷" {
		t.Fatalf("plan = %+v", plan)
	}
	// 40000 occupied moves: seed 95600 plan total exceeds seed occupied on
	// purpose; the ledger mirrors the plan amount.
	if snap.Account.Occupied != 40000-plan.TotalAmount || snap.Account.Frozen != 320000+plan.TotalAmount {
		t.Fatalf("account = %+v", snap.Account)
	}

	order := snap.Orders[0]
	if order.PlanID != "plan-1001" || order.Status != orders.StatusOrdered {
		t.Fatalf("order = %+v", order)
	}
	if order.Threshold != 0.5 {
		t.Fatalf("threshold = %v", order.Threshold)
	}
	if order.SettlementWeight == nil || *order.SettlementWeight != plan.PlannedVolume {
		t.Fatalf("settlement weight = %v", order.SettlementWeight)
	}
	if snap.OrderNoIndex[order.Number] != order.ID {
		t.Fatalf("order index missing %s", order.Number)
	}
	if snap.Ledgers[0].Type != funds.LedgerTypeFreeze || snap.Ledgers[0].RelatedNo != order.Number {
		t.Fatalf("ledger head = %+v", snap.Ledgers[0])
	}
}

func TestReviewRejectReleases(t *testing.T) {
	svc, store := newService(t)

	err := svc.Review(ReviewInput{PlanID: "plan-1001", Action: ActionReject, Reviewer: "市场部-周婷"})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}

	snap := store.Snapshot()
	plan := snap.FindPlan("plan-1001")
	if plan.Status != plans.StatusReturned {
		t.Fatalf("status = %s", plan.Status)
	}
	if plan.RejectReason != "信息需补充" {
		t.Fatalf("reason = %s", plan.RejectReason)
	}
	if snap.Account.Available != 160000+plan.TotalAmount {
		t.Fatalf("account = %+v", snap.Account)
	}
	if len(snap.Orders) != 1 {
		t.Fatalf("reject must not spawn an order, got %d", len(snap.Orders))
	}
}

func TestReviewGuards(t *testing.T) {
	svc, _ := newService(t)

	if err := svc.Review(ReviewInput{PlanID: "plan-nope", Action: ActionApprove}); !errors.Is(err, plans.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	// plan-1002 is already approved.
	if err := svc.Review(ReviewInput{PlanID: "plan-1002", Action: ActionApprove}); !errors.Is(err, plans.ErrInvalidStatus) {
		t.Fatalf("err = %v", err)
	}
}

func TestCancelReleasesWhenHeld(t *testing.T) {
	svc, store := newService(t)

	if err := svc.Cancel("plan-1001", "行程变更"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	snap := store.Snapshot()
	plan := snap.FindPlan("plan-1001")
	if plan.Status != plans.StatusCancelled {
		t.Fatalf("status = %s", plan.Status)
	}
	if snap.Account.Available != 160000+plan.TotalAmount {
		t.Fatalf("account = %+v", snap.Account)
	}

	// Approved plans cannot be cancelled.
	if err := svc.Cancel("plan-1002", "x"); !errors.Is(err, plans.ErrInvalidStatus) {
		t.Fatalf("err = %v", err)
	}
	// Cancelling twice fails and leaves funds alone.
	if err := svc.Cancel("plan-1001", "x"); !errors.Is(err, plans.ErrInvalidStatus) {
		t.Fatalf("err = %v", err)
	}
}
