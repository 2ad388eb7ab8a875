// README: Simulated payment processor; stands in for a real gateway behind the same interface.
package order

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// SimulatedPayment approves every charge after a fixed artificial delay,
// mirroring gateway latency. It respects cancellation.
type SimulatedPayment struct {
	Delay time.Duration
}

func NewSimulatedPayment(delay time.Duration) *SimulatedPayment {
	return &SimulatedPayment{Delay: delay}
}

func (p *SimulatedPayment) Charge(ctx context.Context, amount float64) error {
	select {
	case <-time.After(p.Delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	logrus.WithField("amount", amount).Info("simulated payment approved")
	return nil
}
