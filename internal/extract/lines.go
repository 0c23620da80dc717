package extract

import (
	"context"

	"github.com/ohmyshower/order-cli/internal/model"
	"github.com/ohmyshower/order-cli/internal/sku"
)

// resolveOrderLines extracts the product lines and resolves each one to a
// SKU. Individual line failures are tolerated as long as at least one line
// resolves; the failure context covers the no-lines and all-failed cases.
func (p *Pipeline) resolveOrderLines(ctx context.Context, orderNo int, em model.Email, text string) ([]model.ProductLine, *model.FailureContext) {
	raw, err := p.oracle.OrderLines(ctx, text, p.families, p.colors)
	if err != nil {
		return nil, &model.FailureContext{
			Kind:             model.FailureException,
			OrderNo:          orderNo,
			EntryID:          em.MessageID,
			EmailSnip:        model.Snippet(text),
			ExceptionMessage: err.Error(),
		}
	}

	if len(raw) == 0 {
		return nil, &model.FailureContext{
			Kind:      model.FailureSKUExtraction,
			OrderNo:   orderNo,
			EntryID:   em.MessageID,
			EmailSnip: model.Snippet(text),
			Reason:    model.ReasonNoOrderLines,
		}
	}

	lines := make([]model.ProductLine, 0, len(raw))
	var failed []model.FailedLine
	for i, rl := range raw {
		line, fl := sku.ResolveLine(rl, i+1, p.families, p.colors, p.attrThreshold)
		if fl != nil {
			failed = append(failed, *fl)
			continue
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return nil, &model.FailureContext{
			Kind:           model.FailureSKUExtraction,
			OrderNo:        orderNo,
			EntryID:        em.MessageID,
			EmailSnip:      model.Snippet(text),
			Reason:         model.ReasonAllLinesFailed,
			LinesAttempted: len(raw),
			FailedLines:    failed,
		}
	}
	return lines, nil
}
