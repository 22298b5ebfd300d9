package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reply struct {
	ids  []string
	text string
	err  error
}

// scripted answers each call with whatever is sent on the channel for the
// category (or summary) it was asked about.
type scripted struct {
	mu      sync.Mutex
	answers map[string]chan reply
}

func newScripted() *scripted { return &scripted{answers: map[string]chan reply{}} }

func (s *scripted) ch(key string) chan reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.answers[key]; !ok {
		s.answers[key] = make(chan reply, 1)
	}
	return s.answers[key]
}

func (s *scripted) Recommend(ctx context.Context, c catalogdomain.Category, _ []catalogdomain.Product) ([]string, error) {
	select {
	case r := <-s.ch(string(c)):
		return r.ids, r.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (s *scripted) SummarizeSales(ctx context.Context, orders []orderdomain.Order) (string, error) {
	select {
	case r := <-s.ch("summary"):
		return r.text, r.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

type outcomes struct {
	mu  sync.Mutex
	got []Outcome
}

func (o *outcomes) record(_ string, out Outcome) {
	o.mu.Lock()
	o.got = append(o.got, out)
	o.mu.Unlock()
}

func TestStaleRecommendationIsDiscarded(t *testing.T) {
	p := newScripted()
	obs := &outcomes{}
	g := NewGateway(p, p, Options{Observer: obs.record})
	defer g.Close()

	first := g.RequestRecommendations(catalogdomain.CategoryShoes, nil)
	second := g.RequestRecommendations(catalogdomain.CategoryWatches, nil)
	require.Equal(t, first+1, second)
	assert.True(t, g.Recommendations().Pending)

	// newest answers first, then the old one resolves late
	p.ch(string(catalogdomain.CategoryWatches)) <- reply{ids: []string{"3"}}
	require.Eventually(t, func() bool { return !g.Recommendations().Pending }, time.Second, time.Millisecond)

	p.ch(string(catalogdomain.CategoryShoes)) <- reply{ids: []string{"1"}}
	g.Wait()

	got := g.Recommendations()
	assert.Equal(t, []string{"3"}, got.IDs)
	assert.Equal(t, second, got.Generation)
	assert.ElementsMatch(t, []Outcome{OutcomeApplied, OutcomeStale}, obs.got)
}

func TestFailedRecommendationIsEmpty(t *testing.T) {
	p := newScripted()
	g := NewGateway(p, p, Options{})
	defer g.Close()

	g.RequestRecommendations(catalogdomain.CategoryShoes, nil)
	p.ch(string(catalogdomain.CategoryShoes)) <- reply{ids: []string{"1"}}
	g.Wait()
	require.Equal(t, []string{"1"}, g.Recommendations().IDs)

	g.RequestRecommendations(catalogdomain.CategoryShoes, nil)
	p.ch(string(catalogdomain.CategoryShoes)) <- reply{err: errors.New("quota")}
	g.Wait()

	got := g.Recommendations()
	assert.Empty(t, got.IDs)
	assert.False(t, got.Pending)
}

func TestSummaryPlaceholder(t *testing.T) {
	p := newScripted()
	g := NewGateway(p, p, Options{})
	defer g.Close()

	assert.Equal(t, SummaryPlaceholder, g.SalesSummary().Text)

	g.RequestSalesSummary(nil)
	s := g.SalesSummary()
	assert.True(t, s.Pending)
	assert.Equal(t, SummaryPlaceholder, s.Text)

	p.ch("summary") <- reply{text: "Shoes are flying off the shelves."}
	g.Wait()
	s = g.SalesSummary()
	assert.False(t, s.Pending)
	assert.Equal(t, "Shoes are flying off the shelves.", s.Text)

	g.RequestSalesSummary(nil)
	p.ch("summary") <- reply{err: errors.New("boom")}
	g.Wait()
	assert.Equal(t, SummaryPlaceholder, g.SalesSummary().Text)
}

func TestTimeoutDowngradesToEmpty(t *testing.T) {
	p := newScripted()
	obs := &outcomes{}
	g := NewGateway(p, p, Options{Timeout: 10 * time.Millisecond, Observer: obs.record})
	defer g.Close()

	g.RequestRecommendations(catalogdomain.CategoryBelts, nil)
	g.Wait()

	got := g.Recommendations()
	assert.False(t, got.Pending)
	assert.Empty(t, got.IDs)
	assert.Equal(t, []Outcome{OutcomeFailed}, obs.got)
}

func TestCloseCancelsPendingCalls(t *testing.T) {
	p := newScripted()
	g := NewGateway(p, p, Options{})

	g.RequestSalesSummary(nil)
	done := make(chan struct{})
	go func() {
		g.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Close did not return")
	}
}

type panicking struct{}

func (panicking) Recommend(context.Context, catalogdomain.Category, []catalogdomain.Product) ([]string, error) {
	panic("model exploded")
}

func (panicking) SummarizeSales(context.Context, []orderdomain.Order) (string, error) {
	panic("model exploded")
}

func TestPanickingProviderSettlesAsFailed(t *testing.T) {
	obs := &outcomes{}
	g := NewGateway(panicking{}, panicking{}, Options{Observer: obs.record})
	defer g.Close()

	g.RequestRecommendations(catalogdomain.CategoryShoes, nil)
	g.RequestSalesSummary(nil)
	g.Wait()

	recs := g.Recommendations()
	assert.False(t, recs.Pending)
	assert.Empty(t, recs.IDs)

	s := g.SalesSummary()
	assert.False(t, s.Pending)
	assert.Equal(t, SummaryPlaceholder, s.Text)

	assert.Equal(t, []Outcome{OutcomeFailed, OutcomeFailed}, obs.got)
}
