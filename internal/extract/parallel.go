package extract

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ohmyshower/order-cli/internal/align"
	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/registry"
	"github.com/ohmyshower/order-cli/internal/sku"
)

// parallelResults collects the five independent phase-3 extractions. Each
// field is written by exactly one goroutine before Wait returns.
type parallelResults struct {
	refs   []string
	valves []model.Valve

	address *string
	phone   *string
	contact *string

	dates   []string
	entryID string

	optionSKU *string
	optionQty *int
}

// extractParallel fans out the independent extractions. A task failure
// degrades its fields to defaults and never fails the email, so the group
// always waits for all five.
func (p *Pipeline) extractParallel(ctx context.Context, text string, cust resolvedCustomer, lines []model.ProductLine) parallelResults {
	var res parallelResults
	log := zap.L()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(5)

	// A panicking task degrades like an erroring one; the merge still runs.
	run := func(task string, fn func()) func() error {
		return func() error {
			defer func() {
				if r := recover(); r != nil {
					log.Error("extract: task panicked", zap.String("task", task), zap.Any("panic", r))
				}
			}()
			fn()
			return nil
		}
	}

	g.Go(run("references", func() {
		refs, err := p.oracle.References(gctx, text, cust.ID)
		if err != nil {
			log.Warn("extract: reference extraction degraded", zap.Error(err))
			return
		}
		res.refs = refs
	}))

	g.Go(run("valves", func() {
		valves, err := p.oracle.Valves(gctx, text, len(lines))
		if err != nil {
			log.Warn("extract: valve extraction degraded", zap.Error(err))
			return
		}
		res.valves = valves
	}))

	g.Go(run("address", func() {
		res.address, res.phone, res.contact = p.resolveAddress(gctx, text, cust)
	}))

	g.Go(run("ship_dates", func() {
		dates, err := p.oracle.ShipDates(gctx, text)
		if err != nil {
			log.Warn("extract: ship-date extraction degraded", zap.Error(err))
			return
		}
		res.dates = dates.Dates
		res.entryID = dates.EntryID
	}))

	g.Go(run("options", func() {
		res.optionSKU, res.optionQty = p.resolveOptions(gctx, text, lines)
	}))

	_ = g.Wait()
	return res
}

// resolveAddress asks the model for a delivery address first; when the email
// carries none and the customer has exactly one known address on file, that
// address stands in. Telephone and contact only come from the email itself.
func (p *Pipeline) resolveAddress(ctx context.Context, text string, cust resolvedCustomer) (address, phone, contact *string) {
	res, err := p.oracle.Address(ctx, text, model.Ptr(cust.ID), model.Ptr(cust.Name))
	if err != nil {
		zap.L().Warn("extract: address extraction degraded", zap.Error(err))
		return nil, nil, nil
	}
	if res.Address != nil {
		return res.Address, res.Telephone, res.Contact
	}

	addrs, err := p.reg.CustomerAddresses(ctx, cust.ID)
	if err != nil {
		zap.L().Warn("extract: address lookup failed", zap.Int("customer_id", cust.ID), zap.Error(err))
		return nil, nil, nil
	}
	if len(addrs) == 1 {
		return model.Ptr(addrs[0].Format()), nil, nil
	}
	return nil, nil, nil
}

// resolveOptions extracts any grid/cover accessory request and resolves it
// to an option SKU keyed on the first product line's family.
func (p *Pipeline) resolveOptions(ctx context.Context, text string, lines []model.ProductLine) (*string, *int) {
	res, err := p.oracle.Options(ctx, text, p.colors)
	if err != nil {
		zap.L().Warn("extract: options extraction degraded", zap.Error(err))
		return nil, nil
	}
	if !res.HasOptions || len(lines) == 0 {
		return nil, nil
	}

	colorCode := ""
	if res.Color != "" {
		if code, _, ok := sku.ResolveColor(res.Color, p.colors, p.attrThreshold); ok {
			colorCode = code
		}
	}

	code, err := p.reg.OptionSKU(ctx, registry.OptionQuery{
		Family:    lines[0].FamilyDesc,
		ColorCode: colorCode,
		Size:      res.Size,
		Type:      res.Type,
	})
	if err != nil {
		zap.L().Warn("extract: option sku lookup failed", zap.Error(err))
		return nil, nil
	}
	if code == "" {
		return nil, nil
	}
	return model.Ptr(code), model.Ptr(res.Quantity)
}

// merge assembles the final order lines: per-line fields aligned to the
// product-line count, scalar fields broadcast to every line.
func merge(orderNo int, em model.Email, cust resolvedCustomer, lines []model.ProductLine, par parallelResults) []model.OrderLine {
	n := len(lines)
	entryID := em.MessageID
	if par.entryID != "" {
		entryID = par.entryID
	}

	cpsds := align.Dates(par.dates, n)
	refs := align.References(par.refs, n)
	valves := align.Valves(par.valves, n)

	out := make([]model.OrderLine, n)
	for i, pl := range lines {
		out[i] = model.OrderLine{
			OrderNo:         orderNo,
			CustomerID:      model.Ptr(cust.ID),
			CustomerName:    model.Ptr(cust.Name),
			SKU:             model.Ptr(pl.SKU),
			Quantity:        model.Ptr(pl.Quantity),
			ReferenceNo:     refs[i],
			Valve:           valves[i],
			DeliveryAddress: par.address,
			CPSD:            cpsds[i],
			EntryID:         entryID,
			OptionSKU:       par.optionSKU,
			OptionQty:       par.optionQty,
			TelephoneNumber: par.phone,
			ContactName:     par.contact,
		}
	}
	return out
}
