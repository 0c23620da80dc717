package extract

import (
	"context"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ohmyshower/order-cli/internal/model"
)

// JobResult is the accumulated output of one run over a mailbox.
type JobResult struct {
	JobID    string
	Lines    []model.OrderLine
	Failures []model.FailureContext
}

// Run processes the emails strictly in order, numbering them 1..N. Emails
// are never skipped: a failed email contributes its stub line and failure
// context and the run continues. Only a registry outage or context
// cancellation aborts the run.
func (p *Pipeline) Run(ctx context.Context, emails []model.Email) (*JobResult, error) {
	out := &JobResult{JobID: uuid.New().String()}
	log := zap.L().With(zap.String("job_id", out.JobID))
	log.Info("extract: job starting", zap.Int("emails", len(emails)))

	for i, em := range emails {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "extract: run cancelled")
		}

		res, err := p.ProcessEmail(ctx, i+1, em)
		if err != nil {
			return nil, err
		}
		out.Lines = append(out.Lines, res.Lines...)
		out.Failures = append(out.Failures, res.Failures...)

		log.Info("extract: email processed",
			zap.Int("order_no", i+1),
			zap.Int("of", len(emails)),
			zap.Int("lines", len(res.Lines)),
			zap.Int("failures", len(res.Failures)))
	}

	log.Info("extract: job finished",
		zap.Int("lines", len(out.Lines)),
		zap.Int("failures", len(out.Failures)))
	return out, nil
}

// Persist writes the job's order lines and failure contexts to the registry.
func (p *Pipeline) Persist(ctx context.Context, res *JobResult) error {
	inserted, err := p.reg.InsertOrderLines(ctx, res.JobID, res.Lines)
	if err != nil {
		return eris.Wrap(err, "extract: insert order lines")
	}
	if err := p.reg.SaveFailureContexts(ctx, res.JobID, res.Failures); err != nil {
		return eris.Wrap(err, "extract: save failure contexts")
	}
	zap.L().Info("extract: job persisted",
		zap.String("job_id", res.JobID),
		zap.Int64("rows", inserted),
		zap.Int("failures", len(res.Failures)))
	return nil
}
