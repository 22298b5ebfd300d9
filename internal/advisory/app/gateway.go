package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
)

const SummaryPlaceholder = "Consulting the royal advisors..."

type Outcome string

const (
	OutcomeApplied Outcome = "applied"
	OutcomeStale   Outcome = "stale"
	OutcomeFailed  Outcome = "failed"
)

// Observer is told how every advisory call ended.
type Observer func(kind string, outcome Outcome)

type Recommendations struct {
	IDs        []string `json:"ids"`
	Pending    bool     `json:"pending"`
	Generation uint64   `json:"generation"`
}

type Summary struct {
	Text       string `json:"text"`
	Pending    bool   `json:"pending"`
	Generation uint64 `json:"generation"`
}

type slot[T any] struct {
	gen     uint64
	value   T
	pending bool
}

// Gateway runs advisory calls in the background and keeps the latest result
// for display. Every request bumps a generation; a response is applied only
// if no newer request was made meanwhile.
type Gateway struct {
	rec     Recommender
	sum     Summarizer
	timeout time.Duration
	observe Observer
	log     *slog.Logger

	mu      sync.Mutex
	recs    slot[[]string]
	summary slot[string]

	// ctx outlives the triggering request; Close cancels it.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type Options struct {
	// Timeout bounds each provider call; zero leaves calls unbounded.
	Timeout  time.Duration
	Observer Observer
	Logger   *slog.Logger
}

func NewGateway(rec Recommender, sum Summarizer, opts Options) *Gateway {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	observe := opts.Observer
	if observe == nil {
		observe = func(string, Outcome) {}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Gateway{
		rec:     rec,
		sum:     sum,
		timeout: opts.Timeout,
		observe: observe,
		log:     log.With("component", "advisory"),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// RequestRecommendations starts a call and returns its generation.
func (g *Gateway) RequestRecommendations(category catalogdomain.Category, catalog []catalogdomain.Product) uint64 {
	g.mu.Lock()
	g.recs.gen++
	g.recs.pending = true
	gen := g.recs.gen
	g.mu.Unlock()

	g.run(func(ctx context.Context) {
		var ids []string
		err := g.guard("recommendations", func() (err error) {
			ids, err = g.rec.Recommend(ctx, category, catalog)
			return err
		})
		if err != nil {
			g.log.Warn("recommendations failed", slog.Any("err", err), slog.Uint64("generation", gen))
			ids = nil
		}
		g.mu.Lock()
		applied := gen == g.recs.gen
		if applied {
			g.recs.value = ids
			g.recs.pending = false
		}
		g.mu.Unlock()
		g.observe("recommendations", outcome(applied, err))
	})
	return gen
}

func (g *Gateway) RequestSalesSummary(orders []orderdomain.Order) uint64 {
	g.mu.Lock()
	g.summary.gen++
	g.summary.pending = true
	gen := g.summary.gen
	g.mu.Unlock()

	g.run(func(ctx context.Context) {
		var text string
		err := g.guard("sales_summary", func() (err error) {
			text, err = g.sum.SummarizeSales(ctx, orders)
			return err
		})
		if err != nil {
			g.log.Warn("sales summary failed", slog.Any("err", err), slog.Uint64("generation", gen))
			text = ""
		}
		g.mu.Lock()
		applied := gen == g.summary.gen
		if applied {
			g.summary.value = text
			g.summary.pending = false
		}
		g.mu.Unlock()
		g.observe("sales_summary", outcome(applied, err))
	})
	return gen
}

func (g *Gateway) Recommendations() Recommendations {
	g.mu.Lock()
	defer g.mu.Unlock()
	return Recommendations{
		IDs:        append([]string(nil), g.recs.value...),
		Pending:    g.recs.pending,
		Generation: g.recs.gen,
	}
}

// SalesSummary shows the placeholder until a non-empty answer arrives.
func (g *Gateway) SalesSummary() Summary {
	g.mu.Lock()
	defer g.mu.Unlock()
	text := g.summary.value
	if g.summary.pending || text == "" {
		text = SummaryPlaceholder
	}
	return Summary{Text: text, Pending: g.summary.pending, Generation: g.summary.gen}
}

// Wait blocks until every in-flight call has returned.
func (g *Gateway) Wait() { g.wg.Wait() }

// Close cancels in-flight calls and waits for them.
func (g *Gateway) Close() {
	g.cancel()
	g.wg.Wait()
}

func (g *Gateway) run(fn func(ctx context.Context)) {
	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		ctx := g.ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}
		fn(ctx)
	}()
}

// guard turns a provider panic into an error so the slot is still settled.
func (g *Gateway) guard(kind string, call func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error("advisory provider panicked", slog.String("kind", kind), slog.Any("panic", r))
			err = fmt.Errorf("%s provider panicked: %v", kind, r)
		}
	}()
	return call()
}

func outcome(applied bool, err error) Outcome {
	switch {
	case !applied:
		return OutcomeStale
	case err != nil:
		return OutcomeFailed
	default:
		return OutcomeApplied
	}
}
