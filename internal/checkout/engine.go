package checkout

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/roach88/storefront/internal/cart"
	"github.com/roach88/storefront/internal/model"
	"github.com/roach88/storefront/internal/money"
)

// Backend is the part of the store of record checkout writes to.
// *store.Store implements it.
type Backend interface {
	InsertOrder(ctx context.Context, order model.Order) (*model.Order, error)
	DecrementStock(ctx context.Context, productID int64, qty int) error
}

// LinkOpener hands the deep link to whatever can act on it.
type LinkOpener interface {
	Open(ctx context.Context, link string) error
}

// LinkOpenerFunc adapts a function to LinkOpener.
type LinkOpenerFunc func(ctx context.Context, link string) error

// Open implements LinkOpener.
func (f LinkOpenerFunc) Open(ctx context.Context, link string) error { return f(ctx, link) }

// Settlement is the outcome of one stock decrement.
type Settlement struct {
	ProductID int64
	Qty       int
	Err       error
}

// Result describes a completed checkout, including the best-effort
// outcomes that did not stop it.
type Result struct {
	Link    string
	Summary string

	// Order is the persisted order, or nil if the insert failed.
	Order    *model.Order
	OrderErr error

	// Decrements has one entry per line item, in cart order.
	Decrements []Settlement

	OpenErr error
}

// Durable reports whether the order and every stock decrement were written.
func (r Result) Durable() bool {
	if r.OrderErr != nil {
		return false
	}
	for _, s := range r.Decrements {
		if s.Err != nil {
			return false
		}
	}
	return true
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger (default slog.Default()).
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithFormatter sets the currency formatter (default money.Default()).
func WithFormatter(f *money.Formatter) Option {
	return func(e *Engine) { e.money = f }
}

// WithBaseURL overrides DefaultBaseURL.
func WithBaseURL(base string) Option {
	return func(e *Engine) { e.baseURL = base }
}

// Engine runs checkouts against a backend.
type Engine struct {
	backend Backend
	opener  LinkOpener
	money   *money.Formatter
	logger  *slog.Logger
	baseURL string
}

// New creates an Engine. A nil opener skips opening the link.
func New(backend Backend, opener LinkOpener, opts ...Option) *Engine {
	e := &Engine{
		backend: backend,
		opener:  opener,
		logger:  slog.Default(),
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.money == nil {
		e.money = money.Default()
	}
	return e
}

// Checkout converts c into an order. It returns false without side effects
// when the cart cannot be checked out. Otherwise the cart is always cleared
// and the returned Result records what the backend accepted.
func (e *Engine) Checkout(ctx context.Context, c *cart.Cart) (Result, bool) {
	snap := c.Snapshot()
	if !snap.Ready {
		return Result{}, false
	}

	log := e.logger.With("store", snap.StoreID)
	summary := Summary(e.money, snap.Items, snap.Total)
	res := Result{
		Summary: summary,
		Link:    DeepLink(e.baseURL, snap.Contact, summary),
	}

	res.Order, res.OrderErr = e.backend.InsertOrder(ctx, model.Order{
		StoreID:    snap.StoreID,
		Items:      snap.Items,
		TotalCents: snap.Total,
	})
	switch {
	case res.OrderErr != nil:
		log.Warn("order save failed", "error", res.OrderErr)
	case res.Order != nil:
		log.Debug("order saved", "order", res.Order.ID)
	}

	res.Decrements = e.decrementAll(ctx, log, snap.Items)

	if e.opener != nil {
		if err := e.opener.Open(ctx, res.Link); err != nil {
			res.OpenErr = err
			log.Warn("open link failed", "error", err)
		}
	}

	c.Clear()
	log.Info("checkout complete", "items", len(snap.Items), "total_cents", snap.Total, "durable", res.Durable())
	return res, true
}

// decrementAll issues one decrement per line concurrently and waits for all
// of them. Each goroutine owns its slot, so no failure cancels another.
func (e *Engine) decrementAll(ctx context.Context, log *slog.Logger, items []model.LineItem) []Settlement {
	out := make([]Settlement, len(items))
	var g errgroup.Group
	for i, it := range items {
		i, it := i, it
		out[i] = Settlement{ProductID: it.ProductID, Qty: it.Qty}
		g.Go(func() error {
			if err := e.backend.DecrementStock(ctx, it.ProductID, it.Qty); err != nil {
				out[i].Err = err
				log.Warn("stock decrement failed", "product", it.ProductID, "qty", it.Qty, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return out
}
