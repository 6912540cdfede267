package commands

import (
	"log/slog"
	"time"

	"chatcart/internal/domain/order"
	"chatcart/internal/inventory"
	"chatcart/internal/session"
)

// SessionSweeper periodically expires idle sessions, releasing any stock
// their orders still hold. It is a background behavior, not an intent path:
// it competes with live intents only through the session locks.
type SessionSweeper struct {
	sessions *session.Manager
	ledger   *inventory.Ledger
	interval time.Duration
	logger   *slog.Logger
	stop     chan struct{}
	done     chan struct{}
}

func NewSessionSweeper(sessions *session.Manager, ledger *inventory.Ledger, interval time.Duration, logger *slog.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		ledger:   ledger,
		interval: interval,
		logger:   logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (w *SessionSweeper) Start() {
	go w.run()
}

func (w *SessionSweeper) Stop() {
	close(w.stop)
	<-w.done
}

func (w *SessionSweeper) run() {
	defer close(w.done)
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := w.SweepOnce(); n > 0 {
				w.logger.Info("expired idle sessions", "count", n)
			}
		case <-w.stop:
			return
		}
	}
}

// SweepOnce expires every currently idle session and returns how many were
// torn down. Exposed for tests and for forced sweeps.
func (w *SessionSweeper) SweepOnce() int {
	return w.sessions.Sweep(w.expire)
}

func (w *SessionSweeper) expire(s *session.Session) {
	o := s.ActiveOrder()
	if o == nil {
		return
	}
	if o.Status().IsTerminal() {
		return
	}
	for _, token := range o.Tokens() {
		if err := w.ledger.Release(token); err != nil {
			w.logger.Error("release on expiry failed", "token", token.String(), "error", err)
		}
	}
	if err := o.Close(order.StatusExpired); err != nil {
		w.logger.Error("expiry transition failed", "order_id", o.ID(), "error", err)
	}
}
