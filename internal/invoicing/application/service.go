// Package application implements the invoicing workflow: application
// against a confirmed statement, finance review and final issuance.
package application

import (
	"errors"
	"fmt"
	"strings"

	invoicing "lngtrade-cloud/internal/invoicing/domain"
	"lngtrade-cloud/internal/money"
	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/observability/metrics"
	"lngtrade-cloud/internal/state"
)

// Application review actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// Service drives invoice applications and issuance.
type Service struct {
	store    *state.Store
	gen      *numbering.Generator
	clock    state.Clock
	outbound notify.Outbound
}

// Option configures the service.
type Option func(*Service)

// WithOutbound forwards finance notifications outbound after commit.
func WithOutbound(out notify.Outbound) Option {
	return func(s *Service) {
		s.outbound = out
	}
}

// NewService constructs an invoicing service.
func NewService(store *state.Store, gen *numbering.Generator, clock state.Clock, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("invoicing service: nil store")
	}
	if gen == nil {
		return nil, errors.New("invoicing service: nil generator")
	}
	if clock == nil {
		clock = state.SystemClock{}
	}
	svc := &Service{store: store, gen: gen, clock: clock}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// CreateInput is an invoice application form.
type CreateInput struct {
	StatementID     string
	InvoiceTitle    string
	TaxNo           string
	Applicant       string
	DiscountEnabled bool
	DiscountAmount  float64
	Note            string
}

// CreateResult reports either the new application id or every validation
// failure.
type CreateResult struct {
	Success       bool
	Errors        []string
	ApplicationID string
}

// Create validates an application against its statement and files it for
// finance review. Validation accumulates every applicable error.
func (s *Service) Create(input CreateInput) CreateResult {
	var result CreateResult
	var emitted []notify.Item
	s.store.Update(func(st *state.State) error {
		var errs []string
		statement := st.FindStatement(input.StatementID)

		if statement == nil {
			errs = append(errs, "请选择有效的对账单")
		}
		if statement != nil && !statement.Confirmed() {
			errs = append(errs, "仅双方已确认或线下已确认的对账单可申请开票")
		}
		if strings.TrimSpace(input.InvoiceTitle) == "" {
			errs = append(errs, "开票抬头不能为空")
		}
		if strings.TrimSpace(input.TaxNo) == "" {
			errs = append(errs, "税号不能为空")
		}
		if input.DiscountEnabled && input.DiscountAmount <= 0 {
			errs = append(errs, "启用优惠时，优惠金额必须大于 0")
		}
		if statement != nil && input.DiscountEnabled && input.DiscountAmount > statement.TotalAmount {
			errs = append(errs, "优惠金额不能超过对账金额")
		}
		if strings.TrimSpace(input.Applicant) == "" {
			errs = append(errs, "申请人不能为空")
		}

		if len(errs) > 0 || statement == nil {
			result = CreateResult{Success: false, Errors: errs}
			return errValidation
		}

		discount := 0.0
		if input.DiscountEnabled {
			discount = input.DiscountAmount
		}
		application := invoicing.Application{
			ID:              s.gen.NextID("iap"),
			Number:          s.gen.NextNo("IA", s.clock.Now()),
			StatementID:     statement.ID,
			StatementNo:     statement.Number,
			CustomerName:    statement.CustomerName,
			OrderNumbers:    append([]string(nil), statement.OrderNumbers...),
			OriginalAmount:  statement.TotalAmount,
			DiscountEnabled: input.DiscountEnabled,
			DiscountAmount:  discount,
			RequestedAmount: money.Sub(statement.TotalAmount, discount),
			InvoiceTitle:    input.InvoiceTitle,
			TaxNo:           input.TaxNo,
			Applicant:       input.Applicant,
			AppliedAt:       s.clock.Now(),
			Status:          invoicing.ApplicationPendingReview,
			Note:            input.Note,
		}
		st.InvoiceApplications = append([]invoicing.Application{application}, st.InvoiceApplications...)
		emitted = append(emitted, s.emit(st, notify.CategoryFinance, "新增开票申请待审核",
			fmt.Sprintf("%s 已提交，待财务审核。", application.Number)))

		result = CreateResult{Success: true, Errors: []string{}, ApplicationID: application.ID}
		return nil
	})
	if result.Success {
		notify.ForwardAll(s.outbound, emitted)
	}
	return result
}

var errValidation = errors.New("invoicing service: validation failed")

// ReviewInput is a finance decision on a pending application.
type ReviewInput struct {
	ApplicationID string
	Action        string
	Reviewer      string
	Reason        string
}

// Review approves or rejects a pending application. Approval spawns exactly
// one pending invoice linked back to the application.
func (s *Service) Review(input ReviewInput) error {
	var emitted []notify.Item
	err := s.store.Update(func(st *state.State) error {
		application := st.FindInvoiceApplication(input.ApplicationID)
		if application == nil {
			return invoicing.ErrApplicationNotFound
		}
		if application.Status != invoicing.ApplicationPendingReview {
			return invoicing.ErrApplicationNotPending
		}

		now := s.clock.Now()
		if input.Action == ActionReject {
			reason := input.Reason
			if reason == "" {
				reason = "申请信息不完整"
			}
			application.Status = invoicing.ApplicationRejected
			application.Reviewer = input.Reviewer
			application.ReviewedAt = now
			application.RejectReason = reason
			emitted = append(emitted, s.emit(st, notify.CategoryFinance, "开票申请已驳回",
				fmt.Sprintf("%s 已驳回，原因：%s", application.Number, reason)))
			return nil
		}

		invoice := invoicing.Invoice{
			ID:            s.gen.NextID("inv"),
			Number:        s.gen.NextNo("INV", now),
			CustomerName:  application.CustomerName,
			Amount:        application.RequestedAmount,
			IssueDate:     now.Format("2006-01-02"),
			StatementNo:   application.StatementNo,
			Status:        invoicing.InvoicePending,
			ApplicationID: application.ID,
		}
		st.Invoices = append([]invoicing.Invoice{invoice}, st.Invoices...)

		application.Status = invoicing.ApplicationApproved
		application.Reviewer = input.Reviewer
		application.ReviewedAt = now
		application.RejectReason = ""
		application.InvoiceID = invoice.ID

		emitted = append(emitted, s.emit(st, notify.CategoryFinance, "开票申请已通过",
			fmt.Sprintf("%s 已通过审核，生成待开票任务 %s。", application.Number, invoice.Number)))
		return nil
	})
	if err != nil {
		return err
	}
	notify.ForwardAll(s.outbound, emitted)
	return nil
}

// IssueInput finalizes a pending invoice.
type IssueInput struct {
	InvoiceID      string
	InvoiceNo      string
	IssueDate      string
	TaxRate        float64
	AttachmentName string
	Issuer         string
}

// Issue marks a pending invoice issued and flips the linked application to
// invoiced. Issuing twice is a guarded failure with no second effect.
func (s *Service) Issue(input IssueInput) error {
	var emitted []notify.Item
	err := s.store.Update(func(st *state.State) error {
		invoice := st.FindInvoice(input.InvoiceID)
		if invoice == nil {
			return invoicing.ErrInvoiceNotFound
		}
		if invoice.Status == invoicing.InvoiceIssued {
			return invoicing.ErrAlreadyIssued
		}

		if no := strings.TrimSpace(input.InvoiceNo); no != "" {
			invoice.Number = no
		}
		invoice.Status = invoicing.InvoiceIssued
		if input.IssueDate != "" {
			invoice.IssueDate = input.IssueDate
		} else {
			invoice.IssueDate = s.clock.Now().Format("2006-01-02")
		}
		invoice.TaxRate = input.TaxRate
		invoice.AttachmentName = input.AttachmentName
		invoice.IssuedBy = input.Issuer

		if invoice.ApplicationID != "" {
			if application := st.FindInvoiceApplication(invoice.ApplicationID); application != nil {
				application.Status = invoicing.ApplicationInvoiced
			}
		}
		emitted = append(emitted, s.emit(st, notify.CategoryFinance, "发票已开具",
			fmt.Sprintf("%s 已由 %s 完成开票并归档。", invoice.Number, input.Issuer)))
		return nil
	})
	if err != nil {
		metrics.IncInvoiceIssue(metrics.ResultError)
		return err
	}
	metrics.IncInvoiceIssue(metrics.ResultSuccess)
	notify.ForwardAll(s.outbound, emitted)
	return nil
}

func (s *Service) emit(st *state.State, category, title, content string) notify.Item {
	item := notify.New(s.gen.NextID("msg"), category, title, content, s.clock.Now())
	st.PushNotification(item)
	metrics.IncNotification(category)
	return item
}
