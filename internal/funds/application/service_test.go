package application

import (
	"errors"
	"testing"
	"time"

	funds "lngtrade-cloud/internal/funds/domain"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/state"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newService(t *testing.T) (*Service, *state.Store) {
	t.Helper()
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(300))
	clock := &fakeClock{now: time.Date(2026, 2, 9, 15, 0, 0, 0, time.UTC)}
	svc, err := NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestRegisterDeposit(t *testing.T) {
	svc, store := newService(t)

	id, err := svc.RegisterDeposit(DepositInput{
		CustomerName: "华东能源科技有限公司",
		Amount:       80000,
		PaidAt:       "2026-02-09",
		ReceiptName:  "回单-0209b.pdf",
	})
	if err != nil {
		t.Fatalf("RegisterDeposit: %v", err)
	}

	snap := store.Snapshot()
	deposit := snap.FindDeposit(id)
	if deposit == nil || deposit.Status != funds.DepositStatusPending {
		t.Fatalf("deposit = %+v", deposit)
	}
	if snap.Account.Total != 520000 {
		t.Fatalf("registration must not touch the account: %+v", snap.Account)
	}
	if snap.Notifications[0].Title != "收到预存登记" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}
}

func TestReviewDepositConfirm(t *testing.T) {
	svc, store := newService(t)

	if err := svc.ReviewDeposit("dep-1", ActionConfirm, "财务-陈会计", ""); err != nil {
		t.Fatalf("ReviewDeposit: %v", err)
	}

	snap := store.Snapshot()
	deposit := snap.FindDeposit("dep-1")
	if deposit.Status != funds.DepositStatusConfirmed || deposit.Reviewer != "财务-陈会计" {
		t.Fatalf("deposit = %+v", deposit)
	}
	if snap.Account.Total != 570000 || snap.Account.Available != 210000 {
		t.Fatalf("account = %+v", snap.Account)
	}
	if !snap.Account.Consistent() {
		t.Fatalf("account inconsistent: %+v", snap.Account)
	}
	ledger := snap.Ledgers[0]
	if ledger.Type != funds.LedgerTypeDeposit || ledger.Amount != 50000 || ledger.RelatedNo != "dep-1" {
		t.Fatalf("ledger = %+v", ledger)
	}

	// Confirming twice fails without a second credit.
	if err := svc.ReviewDeposit("dep-1", ActionConfirm, "财务-陈会计", ""); !errors.Is(err, funds.ErrDepositNotPending) {
		t.Fatalf("err = %v", err)
	}
	if got := store.Snapshot().Account.Total; got != 570000 {
		t.Fatalf("total moved on replay: %v", got)
	}
}

func TestReviewDepositReject(t *testing.T) {
	svc, store := newService(t)

	if err := svc.ReviewDeposit("dep-1", ActionReject, "财务-陈会计", "回单模糊"); err != nil {
		t.Fatalf("ReviewDeposit: %v", err)
	}

	snap := store.Snapshot()
	deposit := snap.FindDeposit("dep-1")
	if deposit.Status != funds.DepositStatusRejected || deposit.RejectReason != "回单模糊" {
		t.Fatalf("deposit = %+v", deposit)
	}
	if snap.Account.Total != 520000 || len(snap.Ledgers) != 2 {
		t.Fatalf("rejection must not touch account or ledger: %+v", snap.Account)
	}
}

func TestReviewDepositMissing(t *testing.T) {
	svc, _ := newService(t)
	if err := svc.ReviewDeposit("dep-nope", ActionConfirm, "x", ""); !errors.Is(err, funds.ErrDepositNotFound) {
		t.Fatalf("err = %v", err)
	}
}
