package calculation

import (
	"context"
	"runtime"
	"sync"

	"github.com/rgehrsitz/sspricer/internal/domain"
)

// PriceBatch prices rows in parallel and returns results in input order.
// cfg is snapshotted before any worker starts, so later changes by the
// caller do not reach rows already queued. Invalid rows are recorded with
// their error and do not stop the batch; a cancelled context does.
func (pe *PricingEngine) PriceBatch(ctx context.Context, rows []domain.PricingRow, cfg domain.PricingConfig) (*domain.BatchResult, error) {
	snapshot := cfg.Clone()
	for _, name := range snapshot.InvertedBounds() {
		pe.logger().Warnf("%s.min exceeds %s.max: low offers may exceed high offers", name, name)
	}
	out := &domain.BatchResult{Rows: make([]domain.RowResult, len(rows))}

	workers := pe.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(rows) {
		workers = len(rows)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res, err := pe.PriceRow(rows[i], snapshot)
				rr := domain.RowResult{Row: rows[i], Result: res}
				if err != nil {
					rr.Error = err.Error()
				}
				out.Rows[i] = rr
			}
		}()
	}

	var ctxErr error
feed:
	for i := range rows {
		if ctxErr = ctx.Err(); ctxErr != nil {
			break
		}
		select {
		case <-ctx.Done():
			ctxErr = ctx.Err()
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if ctxErr != nil {
		return nil, ctxErr
	}
	out.Summarize()
	pe.logger().Infof("priced %d rows: %d offers, %d no offer, %d invalid",
		out.Summary.Total, out.Summary.Offers, out.Summary.NoOffers, out.Summary.Invalid)
	return out, nil
}

// RowsNeedingRecalculation returns the IDs of rows in next whose pricing
// inputs differ from the row with the same ID in prev. Rows absent from
// prev are not reported.
func RowsNeedingRecalculation(prev, next []domain.PricingRow) []string {
	byID := make(map[string]domain.PricingRow, len(prev))
	for _, r := range prev {
		byID[r.ID] = r
	}
	var ids []string
	for _, r := range next {
		if old, ok := byID[r.ID]; ok && !old.SameInputs(r) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
