package application

import (
	"errors"
	"testing"
	"time"

	"lngtrade-cloud/internal/numbering"
	orders "lngtrade-cloud/internal/orders/domain"
	"lngtrade-cloud/internal/state"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newService(t *testing.T) (*Service, *state.Store) {
	t.Helper()
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(200))
	clock := &fakeClock{now: time.Date(2026, 2, 9, 14, 0, 0, 0, time.UTC)}
	svc, err := NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func setOrderStatus(t *testing.T, store *state.Store, orderID, status string) {
	t.Helper()
	err := store.Update(func(st *state.State) error {
		order := st.FindOrder(orderID)
		if order == nil {
			return orders.ErrNotFound
		}
		order.Status = status
		return nil
	})
	if err != nil {
		t.Fatalf("setOrderStatus: %v", err)
	}
}

func TestConfirmLoad(t *testing.T) {
	svc, store := newService(t)

	if err := svc.ConfirmLoad("order-2001", 19.5); err != nil {
		t.Fatalf("ConfirmLoad: %v", err)
	}
	snapshot1 := store.Snapshot()
	order := snapshot1.FindOrder("order-2001")
	if order.Status != orders.StatusLoaded || *order.LoadWeight != 19.5 {
		t.Fatalf("order = %+v", order)
	}

	if err := svc.ConfirmLoad("order-nope", 1); !errors.Is(err, orders.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestConfirmUnloadWithinThreshold(t *testing.T) {
	svc, store := newService(t)

	// load 18, unload 17.8, threshold 0.5: diff 0.2 stays normal.
	if err := svc.ConfirmUnload("order-2001", 17.8); err != nil {
		t.Fatalf("ConfirmUnload: %v", err)
	}

	snapshot2 := store.Snapshot()
	order := snapshot2.FindOrder("order-2001")
	if order.DiffAbnormal {
		t.Fatal("diff must not be abnormal")
	}
	if order.Status != orders.StatusPendingAcceptance {
		t.Fatalf("status = %s", order.Status)
	}
	// Seed order settles on the unload rule.
	if *order.SettlementWeight != 17.8 {
		t.Fatalf("settlement = %v", *order.SettlementWeight)
	}
}

func TestConfirmUnloadBeyondThreshold(t *testing.T) {
	svc, store := newService(t)

	if err := svc.ConfirmUnload("order-2001", 17.2); err != nil {
		t.Fatalf("ConfirmUnload: %v", err)
	}

	snap := store.Snapshot()
	order := snap.FindOrder("order-2001")
	if !order.DiffAbnormal || order.Status != orders.StatusSettling {
		t.Fatalf("order = %+v", order)
	}
	if snap.Notifications[0].Title != "磅差异常提醒" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}
}

func TestConfirmUnloadDeltaRule(t *testing.T) {
	svc, store := newService(t)

	err := store.Update(func(st *state.State) error {
		st.FindOrder("order-2001").WeighDiffRule = "delta"
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	if err := svc.ConfirmUnload("order-2001", 17.8); err != nil {
		t.Fatalf("ConfirmUnload: %v", err)
	}
	snapshot3 := store.Snapshot()
	order := snapshot3.FindOrder("order-2001")
	if *order.SettlementWeight != 17.9 {
		t.Fatalf("delta settlement = %v", *order.SettlementWeight)
	}
}

func TestResolveDiffException(t *testing.T) {
	svc, store := newService(t)
	setOrderStatus(t, store, "order-2001", orders.StatusSettling)

	if err := svc.ResolveDiffException("order-2001", 17.9, "按均值结算"); err != nil {
		t.Fatalf("ResolveDiffException: %v", err)
	}
	snapshot4 := store.Snapshot()
	order := snapshot4.FindOrder("order-2001")
	if order.DiffAbnormal || order.Status != orders.StatusPendingAcceptance {
		t.Fatalf("order = %+v", order)
	}
	if *order.SettlementWeight != 17.9 || order.ExceptionNote != "按均值结算" {
		t.Fatalf("order = %+v", order)
	}
}

func TestAcceptAndReject(t *testing.T) {
	svc, store := newService(t)

	if err := svc.Accept("order-2001", true, 17.8); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	snap := store.Snapshot()
	if snap.FindOrder("order-2001").Status != orders.StatusAccepted {
		t.Fatalf("status = %s", snap.FindOrder("order-2001").Status)
	}
	if snap.Notifications[0].Title != "订单已验收" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}

	if err := svc.Accept("order-2001", false, 17.5); err != nil {
		t.Fatalf("Accept: %v", err)
	}
	snap = store.Snapshot()
	order := snap.FindOrder("order-2001")
	if order.Status != orders.StatusSettling || *order.SettlementWeight != 17.5 {
		t.Fatalf("order = %+v", order)
	}
	if snap.Notifications[0].Title != "验收未通过" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}
}

func TestArchiveGuards(t *testing.T) {
	svc, store := newService(t)

	// transporting orders cannot be archived
	result := svc.Archive("order-2001", "财务-陈会计")
	if result.Success || result.Error != "仅已验收/已结算订单可归档" {
		t.Fatalf("result = %+v", result)
	}
	if result := svc.Archive("order-nope", "x"); result.Success || result.Error != "订单不存在" {
		t.Fatalf("result = %+v", result)
	}

	setOrderStatus(t, store, "order-2001", orders.StatusAccepted)
	if result := svc.Archive("order-2001", "财务-陈会计"); !result.Success {
		t.Fatalf("result = %+v", result)
	}
	snap := store.Snapshot()
	if snap.FindOrder("order-2001").Status != orders.StatusArchived {
		t.Fatalf("status = %s", snap.FindOrder("order-2001").Status)
	}
	if snap.Notifications[0].Title != "订单已归档" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}
}

func TestUnarchiveReturnsToSettled(t *testing.T) {
	svc, store := newService(t)

	if result := svc.Unarchive("order-2001", "x"); result.Success || result.Error != "仅已归档订单支持取消归档" {
		t.Fatalf("result = %+v", result)
	}

	setOrderStatus(t, store, "order-2001", orders.StatusArchived)
	if result := svc.Unarchive("order-2001", "财务-陈会计"); !result.Success {
		t.Fatalf("result = %+v", result)
	}
	snapshot5 := store.Snapshot()
	if got := snapshot5.FindOrder("order-2001").Status; got != orders.StatusSettled {
		t.Fatalf("status = %s", got)
	}
}

func TestSupplementRound(t *testing.T) {
	svc, store := newService(t)

	err := svc.SubmitSupplement(SupplementInput{
		OrderID:         "order-2001",
		UpstreamOrderNo: " UP-20260209-077 ",
		LoadSiteName:    "宁波接收站",
		EstimatedLoadAt: "2026-02-10 08:00",
	})
	if err != nil {
		t.Fatalf("SubmitSupplement: %v", err)
	}

	snap := store.Snapshot()
	order := snap.FindOrder("order-2001")
	if order.Status != orders.StatusPendingSupplement || order.SupplementStatus != orders.SupplementPending {
		t.Fatalf("order = %+v", order)
	}
	if order.UpstreamOrderNo != "UP-20260209-077" {
		t.Fatalf("upstream no = %q", order.UpstreamOrderNo)
	}
	if snap.Notifications[0].Title != "订单补录待审核" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}

	err = svc.ReviewSupplement(SupplementReviewInput{OrderID: "order-2001", Action: ActionReject, Reviewer: "调度-刘工", Reason: "单号有误"})
	if err != nil {
		t.Fatalf("ReviewSupplement: %v", err)
	}
	snapshot6 := store.Snapshot()
	order = snapshot6.FindOrder("order-2001")
	if order.SupplementStatus != orders.SupplementRejected || order.Status != orders.StatusPendingSupplement {
		t.Fatalf("order = %+v", order)
	}

	// A rejected supplement is no longer pending.
	err = svc.ReviewSupplement(SupplementReviewInput{OrderID: "order-2001", Action: ActionApprove})
	if !errors.Is(err, orders.ErrSupplementNotPending) {
		t.Fatalf("err = %v", err)
	}

	if err := svc.SubmitSupplement(SupplementInput{OrderID: "order-2001", UpstreamOrderNo: "UP-20260209-078"}); err != nil {
		t.Fatalf("SubmitSupplement: %v", err)
	}
	err = svc.ReviewSupplement(SupplementReviewInput{OrderID: "order-2001", Action: ActionApprove, Reviewer: "调度-刘工"})
	if err != nil {
		t.Fatalf("ReviewSupplement: %v", err)
	}
	snapshot7 := store.Snapshot()
	if got := snapshot7.FindOrder("order-2001").Status; got != orders.StatusStocking {
		t.Fatalf("status = %s", got)
	}
}
