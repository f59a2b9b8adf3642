package dispatch

import (
	"context"

	"relaybot/internal/domain"
)

// BulkResult is the per-item outcome of a bulk send, in input order.
type BulkResult struct {
	Target  string
	Success bool
	Receipt Receipt // zero value when Success is false
	Err     string
}

// BulkReport aggregates a bulk send.
type BulkReport struct {
	Results   []BulkResult
	Successes int
}

// SendBulk dispatches intents strictly sequentially: item i+1 does not start
// until item i has returned. This preserves per-target ordering and avoids
// bursting the Gateway; do not parallelize without revisiting both.
// A single item's failure never aborts the remaining items. Context
// cancellation is the one exception: once ctx is done, the remaining items
// are reported as failed without being attempted.
func (e *Engine) SendBulk(ctx context.Context, intents []domain.SendIntent) BulkReport {
	report := BulkReport{Results: make([]BulkResult, 0, len(intents))}

	for _, in := range intents {
		if err := ctx.Err(); err != nil {
			report.Results = append(report.Results, BulkResult{Target: in.Target, Err: err.Error()})
			continue
		}
		receipt, err := e.Send(ctx, in)
		if err != nil {
			report.Results = append(report.Results, BulkResult{Target: in.Target, Err: err.Error()})
			continue
		}
		report.Results = append(report.Results, BulkResult{Target: in.Target, Success: true, Receipt: receipt})
		report.Successes++
	}

	e.logger.Info("bulk send finished", "total", len(intents), "successes", report.Successes)
	return report
}
