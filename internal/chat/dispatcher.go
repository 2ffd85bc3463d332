package chat

import (
	"context"
	"log"

	"github.com/nmh2003/shopchat/internal/store"
)

// ConfidenceThreshold gates dispatch: classifications below it get a
// clarification prompt instead of a handler, whatever their intent.
const ConfidenceThreshold = 0.5

type handlerFunc func(ctx context.Context, req Request, res Result) Response

// Dispatcher routes a classified turn to exactly one handler. Handlers catch
// their own data-access failures and answer with a templated message, so
// Dispatch never returns an error to the HTTP layer.
type Dispatcher struct {
	store    *store.Store
	logger   *log.Logger
	handlers map[Intent]handlerFunc
}

func NewDispatcher(st *store.Store, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = log.New(log.Writer(), "[CHAT] ", log.LstdFlags)
	}
	d := &Dispatcher{store: st, logger: logger}
	d.handlers = map[Intent]handlerFunc{
		IntentViewFeaturedProducts:   d.handleFeaturedProducts,
		IntentViewCategories:         d.handleCategories,
		IntentViewProductsInCategory: d.handleProductsInCategory,
		IntentAddToCart:              d.handleAddToCart,
		IntentPlaceOrder:             d.handlePlaceOrder,
	}
	return d
}

func (d *Dispatcher) Dispatch(ctx context.Context, req Request, res Result) Response {
	chatRequests.WithLabelValues(string(res.Intent)).Inc()

	if res.Confidence < ConfidenceThreshold {
		return respond(res, msgClarify)
	}
	h, ok := d.handlers[res.Intent]
	if !ok {
		return respond(res, msgCannotProcess)
	}
	return h(ctx, req, res)
}

// failure logs the underlying error and answers with the generic template,
// echoing the original classification.
func (d *Dispatcher) failure(res Result, op string, err error) Response {
	d.logger.Printf("%s: %v", op, err)
	return respond(res, msgFailure)
}
