package application

import (
	"errors"
	"testing"
	"time"

	"lngtrade-cloud/internal/numbering"
	onboarding "lngtrade-cloud/internal/onboarding/domain"
	"lngtrade-cloud/internal/state"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func newService(t *testing.T) (*Service, *state.Store) {
	t.Helper()
	store := state.NewStore(state.Seed())
	gen := numbering.NewGenerator(numbering.NewAtomicCounter(600))
	clock := &fakeClock{now: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)}
	svc, err := NewService(store, gen, clock)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, store
}

func TestActivationPath(t *testing.T) {
	svc, store := newService(t)

	err := svc.Review(ReviewInput{ApplicationID: "onb-001", Action: ActionApprove, Reviewer: "市场部-周婷", Level: onboarding.LevelB})
	if err != nil {
		t.Fatalf("Review: %v", err)
	}
	snapshot1 := store.Snapshot()
	application := snapshot1.FindOnboarding("onb-001")
	if application.Status != onboarding.StatusApproved || application.Level != onboarding.LevelB {
		t.Fatalf("application = %+v", application)
	}

	err = svc.UploadContract(ContractInput{ApplicationID: "onb-001", ContractName: "服务合同-2026.pdf", EffectiveDate: "2026-03-01"})
	if err != nil {
		t.Fatalf("UploadContract: %v", err)
	}
	snap := store.Snapshot()
	application = snap.FindOnboarding("onb-001")
	if application.Status != onboarding.StatusActivated || application.ContractName != "服务合同-2026.pdf" {
		t.Fatalf("application = %+v", application)
	}
	if snap.Notifications[0].Title != "服务合同已上传" {
		t.Fatalf("notification = %+v", snap.Notifications[0])
	}

	// Activated is terminal: no further review.
	err = svc.Review(ReviewInput{ApplicationID: "onb-001", Action: ActionReject})
	if !errors.Is(err, onboarding.ErrInvalidStatus) {
		t.Fatalf("err = %v", err)
	}
}

func TestContractRequiresApproval(t *testing.T) {
	svc, _ := newService(t)

	// onb-001 is still pending.
	err := svc.UploadContract(ContractInput{ApplicationID: "onb-001", ContractName: "x.pdf"})
	if !errors.Is(err, onboarding.ErrInvalidStatus) {
		t.Fatalf("err = %v", err)
	}
}

func TestRejectRecordsDefaultReason(t *testing.T) {
	svc, store := newService(t)

	if err := svc.Review(ReviewInput{ApplicationID: "onb-001", Action: ActionReject, Reviewer: "市场部-周婷"}); err != nil {
		t.Fatalf("Review: %v", err)
	}
	snapshot2 := store.Snapshot()
	application := snapshot2.FindOnboarding("onb-001")
	if application.Status != onboarding.StatusRejected || application.RejectReason != "资料不完整" {
		t.Fatalf("application = %+v", application)
	}
}

func TestResubmitClearsRejection(t *testing.T) {
	svc, store := newService(t)

	// onb-002 is seeded rejected.
	if err := svc.Resubmit("onb-002"); err != nil {
		t.Fatalf("Resubmit: %v", err)
	}
	snapshot3 := store.Snapshot()
	application := snapshot3.FindOnboarding("onb-002")
	if application.Status != onboarding.StatusPending || application.RejectReason != "" {
		t.Fatalf("application = %+v", application)
	}

	// Pending applications cannot resubmit again.
	if err := svc.Resubmit("onb-002"); !errors.Is(err, onboarding.ErrInvalidStatus) {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmitMaterials(t *testing.T) {
	svc, store := newService(t)

	err := svc.SubmitMaterials(MaterialsInput{
		ApplicationID: "onb-002",
		ContactPhone:  "13900139001",
	})
	if err != nil {
		t.Fatalf("SubmitMaterials: %v", err)
	}
	snapshot4 := store.Snapshot()
	application := snapshot4.FindOnboarding("onb-002")
	if application.Status != onboarding.StatusPending {
		t.Fatalf("status = %s", application.Status)
	}
	if application.ContactPhone != "13900139001" {
		t.Fatalf("phone = %s", application.ContactPhone)
	}
	// Untouched fields survive.
	if application.OrganizationName != "华东承运物流有限公司" {
		t.Fatalf("name = %s", application.OrganizationName)
	}
}

func TestSubmitNewApplication(t *testing.T) {
	svc, store := newService(t)

	id, err := svc.Submit(SubmitInput{
		OrganizationName: "苏北新能源运输有限公司",
		OrganizationType: onboarding.OrgCarrier,
		ContactName:      "孙经理",
		ContactPhone:     "13700137000",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	snapshot5 := store.Snapshot()
	application := snapshot5.FindOnboarding(id)
	if application == nil || application.Status != onboarding.StatusPending {
		t.Fatalf("application = %+v", application)
	}
}
