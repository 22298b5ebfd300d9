package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	catalogdomain "github.com/dwikikusuma/storefront/internal/catalog/domain"
	orderdomain "github.com/dwikikusuma/storefront/internal/order/domain"
	"golang.org/x/sync/errgroup"
)

type Snapshot struct {
	Products []catalogdomain.Product
	Orders   []orderdomain.Order
}

type Loaded struct {
	Snapshot
	// Seeded is set when the catalog came from the built-in seed list.
	Seeded bool
	// Degraded is set when the store could not be read or written.
	Degraded bool
}

// Adapter mirrors the catalog and the order ledger into a KV store as full
// snapshots under their own keys.
type Adapter struct {
	kv   KV
	seed []catalogdomain.Product
	log  *slog.Logger
}

func NewAdapter(kv KV, seed []catalogdomain.Product, log *slog.Logger) *Adapter {
	if log == nil {
		log = slog.Default()
	}
	return &Adapter{kv: kv, seed: seed, log: log.With("component", "persistence")}
}

// Load never fails: unreadable or corrupt data falls back to the seed
// catalog and an empty ledger.
func (a *Adapter) Load(ctx context.Context) Loaded {
	var (
		rawProducts, rawOrders []byte
		hasProducts, hasOrders bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rawProducts, hasProducts, err = a.kv.Get(gctx, KeyProducts)
		return err
	})
	g.Go(func() error {
		var err error
		rawOrders, hasOrders, err = a.kv.Get(gctx, KeyOrders)
		return err
	})
	if err := g.Wait(); err != nil {
		a.log.Warn("storage unavailable, running in memory with seed data", slog.Any("err", err))
		return Loaded{Snapshot: Snapshot{Products: a.seedCopy()}, Seeded: true, Degraded: true}
	}

	out := Loaded{}

	switch {
	case !hasProducts:
		out.Products = a.seedCopy()
		out.Seeded = true
		raw, err := marshalList(out.Products)
		if err == nil {
			err = a.kv.Put(ctx, KeyProducts, raw)
		}
		if err != nil {
			a.log.Warn("persist seed catalog failed", slog.Any("err", err))
			out.Degraded = true
		}
	default:
		if err := json.Unmarshal(rawProducts, &out.Products); err != nil {
			a.log.Warn("corrupt catalog snapshot, using seed data", slog.Any("err", err))
			out.Products = a.seedCopy()
			out.Seeded = true
		}
	}

	if hasOrders {
		if err := json.Unmarshal(rawOrders, &out.Orders); err != nil {
			a.log.Warn("corrupt order snapshot, starting with an empty ledger", slog.Any("err", err))
			out.Orders = nil
		}
	}

	a.log.Info("state loaded",
		slog.Int("products", len(out.Products)),
		slog.Int("orders", len(out.Orders)),
		slog.Bool("seeded", out.Seeded),
	)
	return out
}

// Save overwrites both snapshots. Each key is written whole, so a reader
// never sees a partially written list.
func (a *Adapter) Save(ctx context.Context, products []catalogdomain.Product, orders []orderdomain.Order) error {
	rawProducts, err := marshalList(products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}
	rawOrders, err := marshalList(orders)
	if err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}

	var g errgroup.Group
	var productsErr, ordersErr error
	g.Go(func() error {
		productsErr = a.kv.Put(ctx, KeyProducts, rawProducts)
		return nil
	})
	g.Go(func() error {
		ordersErr = a.kv.Put(ctx, KeyOrders, rawOrders)
		return nil
	})
	_ = g.Wait()

	if productsErr != nil {
		productsErr = fmt.Errorf("save %s: %w", KeyProducts, productsErr)
	}
	if ordersErr != nil {
		ordersErr = fmt.Errorf("save %s: %w", KeyOrders, ordersErr)
	}
	return errors.Join(productsErr, ordersErr)
}

func (a *Adapter) seedCopy() []catalogdomain.Product {
	out := make([]catalogdomain.Product, 0, len(a.seed))
	for _, p := range a.seed {
		out = append(out, p.Clone())
	}
	return out
}

// marshalList encodes a nil slice as [] rather than null.
func marshalList[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
