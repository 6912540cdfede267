package inventory

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"chatcart/internal/pkg/errs"

	"github.com/google/uuid"
)

// Token is a handle to one provisional claim on stock. Tokens are
// idempotency keys: committing or releasing an already-finalized token is a
// no-op so retried deliveries cannot double-apply.
type Token uuid.UUID

func NewToken() Token { return Token(uuid.New()) }

func (t Token) IsZero() bool { return uuid.UUID(t) == uuid.Nil }

func (t Token) String() string { return uuid.UUID(t).String() }

// InsufficientStockError reports exactly how short a reservation fell so the
// caller can suggest a lower quantity. errors.Is matches
// errs.ErrInsufficientStock.
type InsufficientStockError struct {
	SKU       string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", e.SKU, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == errs.ErrInsufficientStock
}

type reservation struct {
	sku string
	qty int
}

// finalizedRetention bounds how many finalized token ids are remembered for
// idempotent retries. Beyond the window a retried finalize reports an
// unknown token instead of a silent no-op.
const finalizedRetention = 1024

// skuState carries the authoritative counts for one SKU. All mutations of a
// SKU happen under its own mutex; unrelated SKUs never contend.
type skuState struct {
	mu       sync.Mutex
	onHand   int
	reserved int
}

// Ledger is the single synchronization point shared by all sessions.
// Invariant at every observable point: 0 <= reserved <= onHand.
type Ledger struct {
	mu             sync.RWMutex
	skus           map[string]*skuState
	tokens         map[Token]*reservation
	finalized      map[Token]struct{}
	finalizedOrder []Token
	logger         *slog.Logger
}

func NewLedger(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		skus:      make(map[string]*skuState),
		tokens:    make(map[Token]*reservation),
		finalized: make(map[Token]struct{}),
		logger:    logger,
	}
}

// Register makes a SKU known to the ledger with an initial on-hand count.
// Re-registering an existing SKU leaves its counts untouched; stock only
// moves through Reserve/Release/Commit/Adjust once a SKU is live.
func (l *Ledger) Register(sku string, onHand int) {
	if sku == "" || onHand < 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.skus[sku]; !ok {
		l.skus[sku] = &skuState{onHand: onHand}
	}
}

func (l *Ledger) lookup(sku string) (*skuState, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	s, ok := l.skus[sku]
	return s, ok
}

// Reserve claims qty units of a SKU. It fails atomically when
// onHand - reserved < qty; stock is never partially claimed.
func (l *Ledger) Reserve(sku string, qty int) (Token, error) {
	if qty <= 0 {
		return Token{}, errs.ErrNonPositiveQty
	}
	s, ok := l.lookup(sku)
	if !ok {
		return Token{}, errs.Mark(errs.Newf("reserve %q", sku), errs.ErrUnknownSKU)
	}

	s.mu.Lock()
	available := s.onHand - s.reserved
	if available < qty {
		s.mu.Unlock()
		return Token{}, &InsufficientStockError{SKU: sku, Requested: qty, Available: available}
	}
	s.reserved += qty
	s.mu.Unlock()

	token := NewToken()
	l.mu.Lock()
	l.tokens[token] = &reservation{sku: sku, qty: qty}
	l.mu.Unlock()
	return token, nil
}

// Request is one line of a multi-SKU reservation.
type Request struct {
	SKU string
	Qty int
}

// ReserveAll reserves every request or none: the first failure rolls back
// tokens already granted in the same call before the error is returned.
func (l *Ledger) ReserveAll(reqs []Request) ([]Token, error) {
	tokens := make([]Token, 0, len(reqs))
	for _, req := range reqs {
		token, err := l.Reserve(req.SKU, req.Qty)
		if err != nil {
			for _, granted := range tokens {
				if relErr := l.Release(granted); relErr != nil {
					l.logger.Error("rollback release failed", "token", granted.String(), "error", relErr)
				}
			}
			return nil, err
		}
		tokens = append(tokens, token)
	}
	return tokens, nil
}

// Release returns a reservation's units to the available pool. Releasing a
// token that was already committed or released is a no-op.
func (l *Ledger) Release(token Token) error {
	return l.finalize(token, false)
}

// Commit converts a reservation into a permanent deduction from onHand.
// Committing a finalized token is a no-op.
func (l *Ledger) Commit(token Token) error {
	return l.finalize(token, true)
}

func (l *Ledger) finalize(token Token, commit bool) error {
	l.mu.Lock()
	res, ok := l.tokens[token]
	if !ok {
		_, recentlyFinalized := l.finalized[token]
		l.mu.Unlock()
		if recentlyFinalized {
			return nil
		}
		return errs.Mark(errs.Newf("finalize %s", token.String()), errs.ErrUnknownToken)
	}
	// Whoever deletes the entry owns the count update; a concurrent
	// finalize of the same token lands in the retry branch above.
	delete(l.tokens, token)
	l.rememberFinalized(token)
	l.mu.Unlock()

	s, ok := l.lookup(res.sku)
	if !ok {
		return errs.Mark(errs.Newf("finalize %s", token.String()), errs.ErrUnknownSKU)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reserved -= res.qty
	if commit {
		s.onHand -= res.qty
	}
	return nil
}

// rememberFinalized keeps a bounded window of finalized token ids so retried
// finalizations stay no-ops without the token map growing forever. Caller
// holds l.mu.
func (l *Ledger) rememberFinalized(token Token) {
	l.finalized[token] = struct{}{}
	l.finalizedOrder = append(l.finalizedOrder, token)
	if len(l.finalizedOrder) > finalizedRetention {
		oldest := l.finalizedOrder[0]
		l.finalizedOrder = l.finalizedOrder[1:]
		delete(l.finalized, oldest)
	}
}

// Open reports whether a token is still an open claim for the given quantity.
func (l *Ledger) Open(token Token, qty int) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	res, ok := l.tokens[token]
	return ok && res.qty == qty
}

// CommitAll verifies that every token is still an open reservation before
// committing any of them, so a stale cart is never half-committed. The
// caller is responsible for serializing finalization of its own tokens (the
// session manager runs one intent per order at a time).
func (l *Ledger) CommitAll(tokens []Token) error {
	l.mu.RLock()
	for _, token := range tokens {
		if _, ok := l.tokens[token]; !ok {
			l.mu.RUnlock()
			return errs.Mark(errs.Newf("commit %s", token.String()), errs.ErrUnknownToken)
		}
	}
	l.mu.RUnlock()

	for _, token := range tokens {
		if err := l.Commit(token); err != nil {
			return err
		}
	}
	return nil
}

// Adjust is add-only replenishment. Stock never leaves through Adjust;
// deductions happen exclusively via committed reservations.
func (l *Ledger) Adjust(sku string, qty int, reason string) error {
	if qty <= 0 {
		return errs.ErrNonPositiveQty
	}
	s, ok := l.lookup(sku)
	if !ok {
		return errs.Mark(errs.Newf("adjust %q", sku), errs.ErrUnknownSKU)
	}

	s.mu.Lock()
	s.onHand += qty
	onHand := s.onHand
	s.mu.Unlock()

	l.logger.Info("stock adjusted", "sku", sku, "qty", qty, "on_hand", onHand, "reason", reason)
	return nil
}

// Level is a point-in-time stock reading for one SKU.
type Level struct {
	SKU      string
	OnHand   int
	Reserved int
}

func (lv Level) Available() int { return lv.OnHand - lv.Reserved }

func (l *Ledger) Level(sku string) (Level, error) {
	s, ok := l.lookup(sku)
	if !ok {
		return Level{}, errs.Mark(errs.Newf("level %q", sku), errs.ErrUnknownSKU)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return Level{SKU: sku, OnHand: s.onHand, Reserved: s.reserved}, nil
}

// Levels returns a sorted snapshot of all SKUs. Each line is internally
// consistent; the set as a whole is not a global atomic snapshot.
func (l *Ledger) Levels() []Level {
	l.mu.RLock()
	skus := make([]string, 0, len(l.skus))
	for sku := range l.skus {
		skus = append(skus, sku)
	}
	l.mu.RUnlock()
	sort.Strings(skus)

	out := make([]Level, 0, len(skus))
	for _, sku := range skus {
		if lv, err := l.Level(sku); err == nil {
			out = append(out, lv)
		}
	}
	return out
}
