package extract

import (
	"context"

	"go.uber.org/zap"

	"github.com/ohmyshower/order-cli/internal/match"
	"github.com/ohmyshower/order-cli/internal/model"
)

// resolvedCustomer is the phase-1 output attached to every order line.
type resolvedCustomer struct {
	ID   int
	Name string
}

// resolveCustomer identifies the ordering customer. Hardcoded accounts skip
// fuzzy matching; otherwise the extracted names run through the matcher,
// and a sender-address registry lookup is the fallback when no name clears
// the threshold or no names were extracted at all.
func (p *Pipeline) resolveCustomer(ctx context.Context, orderNo int, em model.Email) (resolvedCustomer, *model.FailureContext) {
	text := em.FormatWithMetadata()

	res, err := p.oracle.Customer(ctx, text)
	if err != nil {
		return resolvedCustomer{}, &model.FailureContext{
			Kind:             model.FailureException,
			OrderNo:          orderNo,
			EntryID:          em.MessageID,
			EmailSnip:        model.Snippet(text),
			ExceptionMessage: err.Error(),
		}
	}

	if res.CustomerID != nil && !res.NeedsFuzzyMatch {
		name := ""
		if res.CustomerName != nil {
			name = *res.CustomerName
		}
		return resolvedCustomer{ID: *res.CustomerID, Name: name}, nil
	}

	fctx := &model.FailureContext{
		Kind:           model.FailureCustomerID,
		OrderNo:        orderNo,
		EntryID:        em.MessageID,
		EmailSnip:      model.Snippet(text),
		ExtractedNames: res.Names,
		Threshold:      p.matcher.Threshold(),
	}

	if len(res.Names) > 0 {
		best, ok := p.matcher.Best(res.Names)
		if ok {
			return resolvedCustomer{ID: best.Customer.ID, Name: best.Customer.Name}, nil
		}
		fctx.BestMatchName = model.Ptr(best.Customer.Name)
		fctx.BestMatchID = model.Ptr(best.Customer.ID)
		fctx.BestMatchScore = best.Score
	}

	if c := p.lookupBySender(ctx, em, fctx); c != nil {
		return *c, nil
	}
	return resolvedCustomer{}, fctx
}

// lookupBySender tries the sender email address against the registry's
// email lookup table, recording the attempt on fctx either way.
func (p *Pipeline) lookupBySender(ctx context.Context, em model.Email, fctx *model.FailureContext) *resolvedCustomer {
	// The outer From header is the forwarding salesperson; the customer's
	// address only appears on a "De:" line inside the quoted thread.
	addr := match.SenderAddress(em.Body)
	fctx.EmailLookupAttempted = true
	fctx.EmailLookupAddress = addr
	if addr == "" {
		return nil
	}

	c, err := p.reg.CustomerByEmail(ctx, addr)
	if err != nil {
		zap.L().Warn("extract: email lookup failed", zap.String("address", addr), zap.Error(err))
		return nil
	}
	if c == nil {
		return nil
	}
	zap.L().Info("extract: customer resolved via email lookup",
		zap.String("address", addr), zap.Int("customer_id", c.ID))
	return &resolvedCustomer{ID: c.ID, Name: c.Name}
}
