package projection

import (
	"context"

	"github.com/rmorales-dev/tienda-sync/internal/model"
	"github.com/rmorales-dev/tienda-sync/internal/repository"
	"github.com/rmorales-dev/tienda-sync/pkg/logger"
)

// Projector composes local-store change signals into live read-only
// streams. Every Watch channel emits the current snapshot immediately,
// re-emits on each underlying change, and closes when the context is
// cancelled. Projections never mutate; they only transform and re-emit.
type Projector struct {
	broker      *Broker
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
}

func NewProjector(
	broker *Broker,
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
) *Projector {
	return &Projector{
		broker:      broker,
		productRepo: productRepo,
		cartRepo:    cartRepo,
	}
}

// Broker exposes the underlying change broker for the mutating engines.
func (p *Projector) Broker() *Broker {
	return p.broker
}

// WatchCatalog streams the full local product list on every catalog
// change.
func (p *Projector) WatchCatalog(ctx context.Context) <-chan []model.Product {
	return watch(ctx, p.broker, TopicCatalog, func() ([]model.Product, error) {
		return p.productRepo.FindAll()
	})
}

// WatchCart streams the full cart line list on every cart change.
func (p *Projector) WatchCart(ctx context.Context) <-chan []model.CartLine {
	return watch(ctx, p.broker, TopicCart, func() ([]model.CartLine, error) {
		return p.cartRepo.FindAll()
	})
}

// WatchTotal streams the recomputed cart total on every cart change.
// An empty cart yields 0.
func (p *Projector) WatchTotal(ctx context.Context) <-chan float64 {
	return watch(ctx, p.broker, TopicCart, func() (float64, error) {
		return p.cartRepo.Total()
	})
}

// watch runs the subscribe/snapshot/re-emit loop shared by every stream.
// A failed snapshot read is logged and skipped; the stream stays alive.
func watch[T any](ctx context.Context, broker *Broker, topic Topic, load func() (T, error)) <-chan T {
	out := make(chan T, 1)
	signal := broker.Subscribe(topic)

	go func() {
		defer close(out)
		defer broker.Unsubscribe(topic, signal)

		if !emit(ctx, out, topic, load) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				if !emit(ctx, out, topic, load) {
					return
				}
			}
		}
	}()

	return out
}

func emit[T any](ctx context.Context, out chan T, topic Topic, load func() (T, error)) bool {
	snapshot, err := load()
	if err != nil {
		logger.Error("Failed to load projection snapshot", err, map[string]interface{}{
			"topic": string(topic),
		})
		return true
	}

	// Latest-wins: replace a pending snapshot the observer has not
	// consumed yet rather than blocking the loop.
	select {
	case out <- snapshot:
		return true
	case <-ctx.Done():
		return false
	default:
	}
	select {
	case <-out:
	default:
	}
	select {
	case out <- snapshot:
		return true
	case <-ctx.Done():
		return false
	}
}
