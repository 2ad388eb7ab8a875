// README: Order service; orchestrates summary, driver selection, payment and confirmation.
package order

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"wasel/internal/modules/draft"
	"wasel/internal/modules/matching"
	"wasel/internal/modules/pricing"
	"wasel/internal/session"
	"wasel/internal/types"
)

var (
	ErrNoDraft    = errors.New("order draft not found")
	ErrIncomplete = errors.New("order draft incomplete")
	ErrNotFound   = errors.New("order not found")
	ErrBadRequest = errors.New("bad request")
)

// DriverMatcher is the platform-side driver selection capability. The
// production implementation queries live positions; tests substitute stubs.
type DriverMatcher interface {
	AutoSelect(ctx context.Context, p types.Point, transport string) *matching.Driver
}

// PaymentProcessor charges the order total. The shipped implementation is a
// simulation; a real gateway satisfies the same interface.
type PaymentProcessor interface {
	Charge(ctx context.Context, amount float64) error
}

type Service struct {
	drafts   *draft.Service
	repo     *session.Repo
	matcher  DriverMatcher
	payments PaymentProcessor
}

func NewService(drafts *draft.Service, repo *session.Repo, matcher DriverMatcher, payments PaymentProcessor) *Service {
	return &Service{drafts: drafts, repo: repo, matcher: matcher, payments: payments}
}

// Summary loads the draft, derives its completion score, and surfaces any
// suspended modal state so the caller can reopen it after navigation.
func (s *Service) Summary(ctx context.Context, sid string) (*Summary, error) {
	o, err := s.drafts.Load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNoDraft
	}

	var resume ResumeState
	if _, err := s.repo.LoadResume(ctx, sid, &resume); err != nil {
		return nil, err
	}

	return &Summary{
		Order:      o,
		Completion: draft.CompletionPercentage(o),
		NewFormat:  len(o.Segments) > 0,
		Resume:     resume,
	}, nil
}

func (s *Service) SetResume(ctx context.Context, sid string, resume ResumeState) error {
	return s.repo.SaveResume(ctx, sid, resume)
}

// ClearResume drops both the modal-open flag and the selected-driver id in
// one shot. Every modal exit path lands here.
func (s *Service) ClearResume(ctx context.Context, sid string) error {
	return s.repo.ClearResume(ctx, sid)
}

// Choose gates the manual driver-choice path. It returns the draft so the
// handler can look up candidates around the pickup.
func (s *Service) Choose(ctx context.Context, sid string) (*draft.OrderData, error) {
	return s.gateComplete(ctx, sid)
}

// AutoSelect confirms the platform-chosen driver: it matches a driver,
// computes the pricing snapshot, and persists both for the payment step.
// The resume state is cleared on every exit path, success or not.
func (s *Service) AutoSelect(ctx context.Context, sid string) (*AutoSelectResult, error) {
	o, err := s.gateComplete(ctx, sid)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := s.repo.ClearResume(ctx, sid); err != nil {
			logrus.WithError(err).WithField("session", sid).Warn("failed to clear resume state")
		}
	}()

	var pickup types.Point
	if p := o.Pickup(); p != nil && p.Location != nil {
		pickup = *p.Location
	}

	driver := s.matcher.AutoSelect(ctx, pickup, string(o.TransportType))
	est := pricing.EstimateOrder(o)

	if err := s.repo.SaveDriver(ctx, driver.ID, driver); err != nil {
		return nil, err
	}
	if err := s.repo.SavePricing(ctx, sid, est); err != nil {
		return nil, err
	}
	return &AutoSelectResult{Driver: driver, Pricing: est}, nil
}

// Pay reads the stored pricing snapshot, deriving and persisting one from the
// draft when absent, then runs the (simulated) charge.
func (s *Service) Pay(ctx context.Context, sid string) (*pricing.Estimate, error) {
	var est pricing.Estimate
	ok, err := s.repo.LoadPricing(ctx, sid, &est)
	if err != nil {
		return nil, err
	}
	if !ok {
		o, err := s.drafts.Load(ctx, sid)
		if err != nil {
			return nil, err
		}
		if o == nil {
			return nil, ErrNoDraft
		}
		est = pricing.EstimateOrder(o)
		if err := s.repo.SavePricing(ctx, sid, est); err != nil {
			return nil, err
		}
	}

	if err := s.payments.Charge(ctx, est.Total); err != nil {
		return nil, err
	}
	return &est, nil
}

// Confirm materializes the permanent order record and purges the draft.
//
// Segments are cleared first, unconditionally: they are a one-shot input and
// must never replay into a second record. Pricing degrades to zeros when it
// can neither be loaded nor derived; a missing draft is the only condition
// that aborts without writing a record.
func (s *Service) Confirm(ctx context.Context, sid, driverID string) (*Record, error) {
	if err := s.repo.ClearSegments(ctx, sid); err != nil {
		logrus.WithError(err).WithField("session", sid).Warn("failed to clear route segments")
	}

	var est pricing.Estimate
	havePricing, err := s.repo.LoadPricing(ctx, sid, &est)
	if err != nil {
		return nil, err
	}

	o, err := s.drafts.Load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNoDraft
	}
	if !havePricing {
		est = pricing.EstimateOrder(o)
	}

	rec := &Record{
		OrderID:       NewOrderID(),
		Order:         *o,
		TransportType: o.TransportType,
		OrderType:     o.OrderType,
		CreatedAt:     time.Now().UTC(),
		Pricing:       est,
	}

	if driverID != "" {
		var d matching.Driver
		ok, err := s.repo.LoadDriver(ctx, driverID, &d)
		if err != nil {
			return nil, err
		}
		if ok {
			rec.Driver = &d
			rec.DriverID = &d.ID
		}
	}

	if err := s.repo.SaveOrderRecord(ctx, rec.OrderID, rec); err != nil {
		return nil, err
	}
	if err := s.repo.ClearDraft(ctx, sid); err != nil {
		logrus.WithError(err).WithField("session", sid).Warn("failed to purge draft keys")
	}
	return rec, nil
}

func (s *Service) GetRecord(ctx context.Context, orderID string) (*Record, error) {
	var rec Record
	ok, err := s.repo.LoadOrderRecord(ctx, orderID, &rec)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *Service) gateComplete(ctx context.Context, sid string) (*draft.OrderData, error) {
	o, err := s.drafts.Load(ctx, sid)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, ErrNoDraft
	}
	if draft.CompletionPercentage(o) < 100 {
		return nil, ErrIncomplete
	}
	return o, nil
}

// NewOrderID issues an order number in the public ORD-XXXXXXXX shape. The
// digits come from crypto/rand rather than the wall clock, so rapid
// double-submission cannot collide.
func NewOrderID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	n := binary.BigEndian.Uint64(b[:]) % 100000000
	return fmt.Sprintf("ORD-%08d", n)
}
