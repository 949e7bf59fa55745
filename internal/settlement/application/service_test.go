package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/numbering"
	settlement "lngtrade-cloud/internal/settlement/domain"
	"lngtrade-cloud/internal/state"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newService(t *testing.T) (*Service, *state.Store) {
	t.Helper()
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(400))
	clock := &fakeClock{now: time.Date(2026, 2, 16, 9, 0, 0, 0, time.UTC)}
	svc, err := NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestTwoPhaseStamping(t *testing.T) {
	svc, store := newService(t)

	// Customer cannot stamp a draft.
	err := svc.ApplyStamp("rc-202602-001", settlement.ActorCustomer, "终端用户-张三")
	if !errors.Is(err, settlement.ErrInvalidPhase) {
		t.Fatalf("err = %v", err)
	}
	snapshot1 := store.Snapshot()
	if got := snapshot1.FindStatement("rc-202602-001"); len(got.StampLogs) != 0 || got.Status != settlement.StatusDraft {
		t.Fatalf("out-of-phase stamp mutated statement: %+v", got)
	}

	// Platform stamps the draft.
	if err := svc.ApplyStamp("rc-202602-001", settlement.ActorPlatform, "市场部-王经理"); err != nil {
		t.Fatalf("platform stamp: %v", err)
	}
	snap := store.Snapshot()
	statement := snap.FindStatement("rc-202602-001")
	if statement.Status != settlement.StatusPlatformStamped || len(statement.StampLogs) != 1 {
		t.Fatalf("statement = %+v", statement)
	}
	if snap.Notifications[0].Title != "确认单已加盖公章" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}

	// Platform cannot stamp twice.
	err = svc.ApplyStamp("rc-202602-001", settlement.ActorPlatform, "市场部-王经理")
	if !errors.Is(err, settlement.ErrInvalidPhase) {
		t.Fatalf("err = %v", err)
	}

	// Customer completes the protocol.
	if err := svc.ApplyStamp("rc-202602-001", settlement.ActorCustomer, "终端用户-张三"); err != nil {
		t.Fatalf("customer stamp: %v", err)
	}
	snapshot2 := store.Snapshot()
	statement = snapshot2.FindStatement("rc-202602-001")
	if statement.Status != settlement.StatusDoubleConfirmed {
		t.Fatalf("status = %s", statement.Status)
	}
	if len(statement.StampLogs) != 2 || statement.StampLogs[1].ActorType != settlement.ActorCustomer {
		t.Fatalf("logs = %+v", statement.StampLogs)
	}
	if !statement.Confirmed() {
		t.Fatal("double-confirmed statement must be invoicing-eligible")
	}
}

type captureOutbound struct {
	items []notify.Item
}

func (c *captureOutbound) Forward(_ context.Context, item notify.Item) {
	c.items = append(c.items, item)
}

func TestStampForwardsOutbound(t *testing.T) {
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(400))
	clock := &fakeClock{now: time.Date(2026, 2, 16, 9, 0, 0, 0, time.UTC)}
	out := &captureOutbound{}
	svc, err := NewService(store, gen, clock, WithOutbound(out))
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	// An out-of-phase stamp commits nothing and forwards nothing.
	if err := svc.ApplyStamp("rc-202602-001", settlement.ActorCustomer, "终端用户-张三"); err == nil {
		t.Fatal("expected out-of-phase error")
	}
	if len(out.items) != 0 {
		t.Fatalf("failed stamp forwarded %d items", len(out.items))
	}

	if err := svc.ApplyStamp("rc-202602-001", settlement.ActorPlatform, "市场部-王经理"); err != nil {
		t.Fatalf("platform stamp: %v", err)
	}
	if len(out.items) != 1 {
		t.Fatalf("forwarded = %d", len(out.items))
	}
	if out.items[0].Category != notify.CategorySystem || out.items[0].Title != "确认单已加盖公章" {
		t.Fatalf("forwarded = %+v", out.items[0])
	}
}

func TestStampGuards(t *testing.T) {
	svc, _ := newService(t)

	if err := svc.ApplyStamp("rc-nope", settlement.ActorPlatform, "x"); !errors.Is(err, settlement.ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
	if err := svc.ApplyStamp("rc-202602-001", "auditor", "x"); !errors.Is(err, settlement.ErrUnknownActor) {
		t.Fatalf("err = %v", err)
	}
	// Fully confirmed statements accept no further stamps.
	if err := svc.ApplyStamp("rc-202601-003", settlement.ActorCustomer, "x"); !errors.Is(err, settlement.ErrInvalidPhase) {
		t.Fatalf("err = %v", err)
	}
}

func TestUploadUpstreamArchive(t *testing.T) {
	svc, store := newService(t)

	id, err := svc.UploadUpstreamArchive(ArchiveInput{
		UpstreamCompany: "中海气源公司",
		Period:          "2026-02",
		FileName:        "upstream-reconciliation-202602.pdf",
		ArchivedBy:      "市场部-周婷",
		Note:            "线下对账签字版",
	})
	if err != nil {
		t.Fatalf("UploadUpstreamArchive: %v", err)
	}

	snap := store.Snapshot()
	if len(snap.UpstreamArchives) != 2 {
		t.Fatalf("archives = %d", len(snap.UpstreamArchives))
	}
	record := snap.UpstreamArchives[0]
	if record.ID != id || record.Status != settlement.ArchiveStatusArchived {
		t.Fatalf("record = %+v", record)
	}
	if snap.Notifications[0].Title != "上游对账已存档" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}
}
