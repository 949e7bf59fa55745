// Package application implements the reconciliation signature protocol and
// the offline upstream archive intake.
package application

import (
	"errors"
	"fmt"

	"lngtrade-cloud/internal/notify"
	"lngtrade-cloud/internal/numbering"
	"lngtrade-cloud/internal/observability/metrics"
	settlement "lngtrade-cloud/internal/settlement/domain"
	"lngtrade-cloud/internal/state"
)

// Service drives statement stamping and upstream archives.
type Service struct {
	store    *state.Store
	gen      *numbering.Generator
	clock    state.Clock
	outbound notify.Outbound
}

// Option configures the service.
type Option func(*Service)

// WithOutbound forwards system notifications outbound after commit.
func WithOutbound(out notify.Outbound) Option {
	return func(s *Service) {
		s.outbound = out
	}
}

// NewService constructs a settlement service.
func NewService(store *state.Store, gen *numbering.Generator, clock state.Clock, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, errors.New("settlement service: nil store")
	}
	if gen == nil {
		return nil, errors.New("settlement service: nil generator")
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

// ApplyStamp advances the two-phase signature protocol. Platform stamps are
// valid only from draft, customer stamps only from platform-stamped; an
// out-of-phase stamp fails without touching the statement or its logs.
func (s *Service) ApplyStamp(statementID, actorType, actor string) error {
	outcome := metrics.ResultSuccess
	defer func() {
		metrics.IncStamp(actorType, outcome)
	}()

	var emitted []notify.Item
	err := s.store.Update(func(st *state.State) error {
		statement := st.FindStatement(statementID)
		if statement == nil {
			return settlement.ErrNotFound
		}

		var nextStatus string
		switch actorType {
		case settlement.ActorPlatform:
			if statement.Status != settlement.StatusDraft {
				return settlement.ErrInvalidPhase
			}
			nextStatus = settlement.StatusPlatformStamped
		case settlement.ActorCustomer:
			if statement.Status != settlement.StatusPlatformStamped {
				return settlement.ErrInvalidPhase
			}
			nextStatus = settlement.StatusDoubleConfirmed
		default:
			return settlement.ErrUnknownActor
		}

		statement.Status = nextStatus
		statement.StampLogs = append(statement.StampLogs, settlement.StampLog{
			ActorType: actorType,
			Actor:     actor,
			StampedAt: s.clock.Now(),
		})

		title := "确认单已加盖公章"
		phase := "待客户签章"
		if actorType == settlement.ActorCustomer {
			title = "确认单双方签章完成"
			phase = "双方已确认"
		}
		emitted = append(emitted, s.emit(st, notify.CategorySystem, title, fmt.Sprintf("%s 当前状态：%s", statement.Number, phase)))
		return nil
	})
	if err != nil {
		outcome = metrics.ResultError
		return err
	}
	notify.ForwardAll(s.outbound, emitted)
	return nil
}

// ArchiveInput describes an offline-signed upstream reconciliation file.
type ArchiveInput struct {
	UpstreamCompany string
	Period          string
	FileName        string
	ArchivedBy      string
	Note            string
}

// UploadUpstreamArchive records an offline upstream reconciliation file.
// Archives are write-once; there is no review step.
func (s *Service) UploadUpstreamArchive(input ArchiveInput) (string, error) {
	var id string
	var emitted []notify.Item
	err := s.store.Update(func(st *state.State) error {
		record := settlement.UpstreamArchive{
			ID:              s.gen.NextID("upa"),
			UpstreamCompany: input.UpstreamCompany,
			Period:          input.Period,
			FileName:        input.FileName,
			ArchivedBy:      input.ArchivedBy,
			ArchivedAt:      s.clock.Now(),
			Note:            input.Note,
			Status:          settlement.ArchiveStatusArchived,
		}
		st.UpstreamArchives = append([]settlement.UpstreamArchive{record}, st.UpstreamArchives...)
		emitted = append(emitted, s.emit(st, notify.CategorySystem, "上游对账已存档",
			fmt.Sprintf("%s %s 对账文件已归档。", record.UpstreamCompany, record.Period)))
		id = record.ID
		return nil
	})
	if err != nil {
		return "", err
	}
	notify.ForwardAll(s.outbound, emitted)
	return id, nil
}

func (s *Service) emit(st *state.State, category, title, content string) notify.Item {
	item := notify.New(s.gen.NextID("msg"), category, title, content, s.clock.Now())
	st.PushNotification(item)
	metrics.IncNotification(category)
	return item
}
