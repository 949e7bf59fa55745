// Package application implements the financial subsystem: deposit intake
// and review, the only path that ever increases the account total.
package application

import (
	"errors"
	"fmt"

	funds "lngtrade-cloud/internal/funds/domain"
	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/observability/metrics"
	"lngtrade-cloud/internal/state"
)

// Deposit review actions.
const (
	ActionConfirm = "confirm"
	ActionReject  = "reject"
)

// Service drives deposit registration and review.
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

// NewService constructs a funds service.
func NewService(store *state.Store, gen *numbering.Generator, clock state.Clock, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("funds service: nil store")
	}
	if gen == nil {
		return nil, errors.New("funds service: nil generator")
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

// DepositInput is a customer prepayment registration.
type DepositInput struct {
	CustomerName string
	Amount       float64
	PaidAt       string
	ReceiptName  string
}

// RegisterDeposit records a pending deposit claim. The account is not
// touched until finance confirms it.
func (s *Service) RegisterDeposit(input DepositInput) (string, error) {
	var id string
	var emitted []notify.Item
	err := s.store.Update(func(st *state.State) error {
		deposit := funds.DepositRecord{
			ID:           s.gen.NextID("dep"),
			CustomerName: input.CustomerName,
			Amount:       input.Amount,
			PaidAt:       input.PaidAt,
			ReceiptName:  input.ReceiptName,
			Status:       funds.DepositStatusPending,
		}
		st.Deposits = append([]funds.DepositRecord{deposit}, st.Deposits...)
		emitted = append(emitted, s.emit(st, notify.CategoryFinance, "收到预存登记", fmt.Sprintf("%s 提交了预存登记", deposit.CustomerName)))
		id = deposit.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	notify.ForwardAll(s.outbound, emitted)
	return id, nil
}

// ReviewDeposit confirms or rejects a pending deposit. Confirmation credits
// total and available atomically with a deposit ledger entry; rejection only
// records the verdict.
func (s *Service) ReviewDeposit(depositID, action, reviewer, reason string) error {
	defer metrics.IncDepositReview(action)

	return s.store.Update(func(st *state.State) error {
		deposit := st.FindDeposit(depositID)
		if deposit == nil {
			return funds.ErrDepositNotFound
		}
		if deposit.Status != funds.DepositStatusPending {
			return funds.ErrDepositNotPending
		}

		deposit.Reviewer = reviewer
		if action != ActionConfirm {
			deposit.Status = funds.DepositStatusRejected
			deposit.RejectReason = reason
			return nil
		}

		deposit.Status = funds.DepositStatusConfirmed
		deposit.RejectReason = ""
		st.Account = st.Account.Credit(deposit.Amount)
		st.PushLedger(funds.LedgerRecord{
			ID:        s.gen.NextID("ldg"),
			Type:      funds.LedgerTypeDeposit,
			Amount:    deposit.Amount,
			RelatedNo: deposit.ID,
			Note:      "财务确认预存到账",
			CreatedAt: s.clock.Now(),
		})
		if !st.Account.Consistent() {
			return funds.ErrInconsistentAccount
		}
		return nil
	})
}

func (s *Service) emit(st *state.State, category, title, content string) notify.Item {
	item := notify.New(s.gen.NextID("msg"), category, title, content, s.clock.Now())
	st.PushNotification(item)
	metrics.IncNotification(category)
	return item
}
