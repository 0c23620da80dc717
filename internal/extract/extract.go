// Package extract orchestrates the four-phase extraction pipeline that
// turns a mailbox of Spanish purchase-order emails into order-line rows:
// customer identification, product-line resolution, parallel field
// extraction, and the deterministic merge.
package extract

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ohmyshower/order-cli/internal/match"
	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/oracle"
	"github.com/ohmyshower/order-cli/internal/registry"
	"github.com/ohmyshower/order-cli/internal/sku"
)

// Pipeline processes emails one at a time. Reference data (the customer
// matcher and the family/color listings) is loaded from the registry once,
// on first use, and shared across every email in the run.
type Pipeline struct {
	oracle        oracle.Oracle
	reg           registry.Registry
	threshold     float64
	attrThreshold float64

	refOnce  sync.Once
	refErr   error
	matcher  *match.Matcher
	families []sku.Family
	colors   []sku.Color
}

// New creates a Pipeline. customerThreshold <= 0 selects the default
// matcher threshold; attributeThreshold <= 0 selects the default
// family/color threshold.
func New(o oracle.Oracle, reg registry.Registry, customerThreshold, attributeThreshold float64) *Pipeline {
	return &Pipeline{
		oracle:        o,
		reg:           reg,
		threshold:     customerThreshold,
		attrThreshold: attributeThreshold,
	}
}

// warm loads reference data and builds the matcher exactly once.
func (p *Pipeline) warm(ctx context.Context) error {
	p.refOnce.Do(func() {
		customers, err := p.reg.Customers(ctx)
		if err != nil {
			p.refErr = eris.Wrap(err, "extract: load customers")
			return
		}
		families, err := p.reg.Families(ctx)
		if err != nil {
			p.refErr = eris.Wrap(err, "extract: load families")
			return
		}
		colors, err := p.reg.Colors(ctx)
		if err != nil {
			p.refErr = eris.Wrap(err, "extract: load colors")
			return
		}

		recs := make([]match.Customer, len(customers))
		for i, c := range customers {
			recs[i] = match.Customer{ID: c.ID, Name: c.Name}
		}
		p.matcher = match.NewMatcher(recs, p.threshold)
		p.families = families
		p.colors = colors

		zap.L().Info("extract: reference data loaded",
			zap.Int("customers", len(customers)),
			zap.Int("families", len(families)),
			zap.Int("colors", len(colors)))
	})
	return p.refErr
}

// ProcessEmail runs the four phases over one email. A phase-1 or phase-2
// failure yields a single stub line plus a failure context; a failure in
// any phase-3 task degrades that task's fields to their defaults without
// failing the email. The returned error is reserved for the registry being
// unreachable.
func (p *Pipeline) ProcessEmail(ctx context.Context, orderNo int, em model.Email) (model.EmailResult, error) {
	if err := p.warm(ctx); err != nil {
		return model.EmailResult{}, err
	}

	log := zap.L().With(zap.Int("order_no", orderNo), zap.String("message_id", em.MessageID))
	text := em.FormatText()

	// Phase 1: customer identification.
	cust, fctx := p.resolveCustomer(ctx, orderNo, em)
	if fctx != nil {
		log.Warn("extract: customer identification failed", zap.String("kind", string(fctx.Kind)))
		stub := model.FailureStub(orderNo, em.MessageID, nil, nil, "Customer ID extraction failed")
		return model.EmailResult{
			Lines:    []model.OrderLine{stub},
			Failures: []model.FailureContext{*fctx},
		}, nil
	}
	log.Info("extract: customer identified", zap.Int("customer_id", cust.ID), zap.String("customer_name", cust.Name))

	// Phase 2: product-line resolution.
	lines, fctx := p.resolveOrderLines(ctx, orderNo, em, text)
	if fctx != nil {
		fctx.CustomerID = model.Ptr(cust.ID)
		log.Warn("extract: sku extraction failed", zap.String("reason", string(fctx.Reason)))
		stub := model.FailureStub(orderNo, em.MessageID, model.Ptr(cust.ID), model.Ptr(cust.Name), "SKU extraction failed")
		return model.EmailResult{
			Lines:    []model.OrderLine{stub},
			Failures: []model.FailureContext{*fctx},
		}, nil
	}
	log.Info("extract: product lines resolved", zap.Int("lines", len(lines)))

	// Phase 3: independent field extractions, in parallel.
	par := p.extractParallel(ctx, text, cust, lines)

	// Phase 4: deterministic merge.
	return model.EmailResult{Lines: merge(orderNo, em, cust, lines, par)}, nil
}
