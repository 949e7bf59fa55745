// Package application implements the counterparty onboarding workflow:
// submission, review, resubmission after rejection, and contract-driven
// activation.
package application

import (
	"errors"
	"fmt"

	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/observability/metrics"
	onboarding "lngtrade-cloud/internal/onboarding/domain"
	"lngtrade-cloud/internal/state"
)

// Review actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Service drives the onboarding workflow.
type Service struct {
	store *state.Store
	gen   *numbering.Generator
	clock state.Clock
}

// NewService constructs an onboarding service.
func NewService(store *state.Store, gen *numbering.Generator, clock state.Clock) (*Service, error) {
	if store == nil {
		return nil, errors.New("onboarding service: nil store")
	}
	if gen == nil {
		return nil, errors.New("onboarding service: nil generator")
	}
	if clock == nil {
		clock = state.SystemClock{}
	}
	return &Service{store: store, gen: gen, clock: clock}, nil
}

// SubmitInput is a new onboarding application.
type SubmitInput struct {
	OrganizationName string
	OrganizationType string
	ContactName      string
	ContactPhone     string
}

// Submit files a new pending application.
func (s *Service) Submit(input SubmitInput) (string, error) {
	var id string
	err := s.store.Update(func(st *state.State) error {
		application := onboarding.Application{
			ID:               s.gen.NextID("onb"),
			OrganizationName: input.OrganizationName,
			OrganizationType: input.OrganizationType,
			ContactName:      input.ContactName,
			ContactPhone:     input.ContactPhone,
			SubmittedAt:      s.clock.Now(),
			Status:           onboarding.StatusPending,
		}
		st.OnboardingApplications = append([]onboarding.Application{application}, st.OnboardingApplications...)
		s.emit(st, notify.CategoryApproval, "新入驻申请",
			fmt.Sprintf("%s 提交了入驻申请，待审核。", application.OrganizationName))
		id = application.ID
		return nil
	})
	return id, err
}

// ReviewInput is an onboarding review decision.
type ReviewInput struct {
	ApplicationID string
	Action        string
	Reviewer      string
	Reason        string
	Level         string
}

// Review approves (recording the customer level) or rejects an application.
// Activated applications are permanently out of review's reach.
func (s *Service) Review(input ReviewInput) error {
	return s.store.Update(func(st *state.State) error {
		application := st.FindOnboarding(input.ApplicationID)
		if application == nil {
			return onboarding.ErrNotFound
		}
		if application.Status == onboarding.StatusActivated {
			return onboarding.ErrInvalidStatus
		}

		application.Reviewer = input.Reviewer
		if input.Action == ActionApprove {
			application.Status = onboarding.StatusApproved
			application.RejectReason = ""
			application.Level = input.Level
		} else {
			reason := input.Reason
			if reason == "" {
				reason = "资料不完整"
			}
			application.Status = onboarding.StatusRejected
			application.RejectReason = reason
		}

		title := "入驻审核通过"
		verdict := "已审核通过，待上传合同"
		if input.Action != ActionApprove {
			title = "入驻审核驳回"
			verdict = "审核未通过"
		}
		s.emit(st, notify.CategoryApproval, title,
			fmt.Sprintf("%s %s", application.OrganizationName, verdict))
		return nil
	})
}

// Resubmit returns a rejected application to pending with the reject
// reason cleared.
func (s *Service) Resubmit(applicationID string) error {
	return s.store.Update(func(st *state.State) error {
		application := st.FindOnboarding(applicationID)
		if application == nil {
			return onboarding.ErrNotFound
		}
		if application.Status != onboarding.StatusRejected {
			return onboarding.ErrInvalidStatus
		}

		application.Status = onboarding.StatusPending
		application.RejectReason = ""
		application.SubmittedAt = s.clock.Now()
		s.emit(st, notify.CategoryApproval, "入驻申请重新提交",
			fmt.Sprintf("%s 已重新提交入驻申请。", application.OrganizationName))
		return nil
	})
}

// MaterialsInput re-populates a rejected application's fields.
type MaterialsInput struct {
	ApplicationID    string
	OrganizationName string
	ContactName      string
	ContactPhone     string
}

// SubmitMaterials updates a rejected application's materials and returns it
// to pending. Empty fields keep their previous value.
func (s *Service) SubmitMaterials(input MaterialsInput) error {
	return s.store.Update(func(st *state.State) error {
		application := st.FindOnboarding(input.ApplicationID)
		if application == nil {
			return onboarding.ErrNotFound
		}
		if application.Status != onboarding.StatusRejected {
			return onboarding.ErrInvalidStatus
		}

		if input.OrganizationName != "" {
			application.OrganizationName = input.OrganizationName
		}
		if input.ContactName != "" {
			application.ContactName = input.ContactName
		}
		if input.ContactPhone != "" {
			application.ContactPhone = input.ContactPhone
		}
		application.Status = onboarding.StatusPending
		application.RejectReason = ""
		application.SubmittedAt = s.clock.Now()
		s.emit(st, notify.CategoryApproval, "入驻材料已补交",
			fmt.Sprintf("%s 已补交材料，重新进入审核。", application.OrganizationName))
		return nil
	})
}

// ContractInput records the signed service contract.
type ContractInput struct {
	ApplicationID string
	ContractName  string
	EffectiveDate string
}

// UploadContract activates an approved application. Activation is terminal.
func (s *Service) UploadContract(input ContractInput) error {
	return s.store.Update(func(st *state.State) error {
		application := st.FindOnboarding(input.ApplicationID)
		if application == nil {
			return onboarding.ErrNotFound
		}
		if application.Status != onboarding.StatusApproved {
			return onboarding.ErrInvalidStatus
		}

		application.ContractName = input.ContractName
		application.ContractEffectiveDate = input.EffectiveDate
		application.Status = onboarding.StatusActivated
		s.emit(st, notify.CategorySystem, "服务合同已上传",
			fmt.Sprintf("%s 已激活，可进入业务流程。", application.OrganizationName))
		return nil
	})
}

func (s *Service) emit(st *state.State, category, title, content string) {
	st.PushNotification(notify.New(s.gen.NextID("msg"), category, title, content, s.clock.Now()))
	metrics.IncNotification(category)
}
