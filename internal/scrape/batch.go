package scrape

import (
	"context"
	"sync"

	"github.com/licitavision/placsp-connector/internal/domain"
	"github.com/licitavision/placsp-connector/internal/logger"
)

// EnrichBatch scrapes every URL of the current session and stores the
// reported CPV string per URL, an empty string where the worker failed.
// Launches are rate limited and run under a bounded worker pool. The
// previous CPV map is discarded before the batch starts.
func (o *Orchestrator) EnrichBatch(ctx context.Context) (map[string]string, error) {
	urls := o.session.URLs()
	if len(urls) == 0 {
		return nil, domain.ErrIngestRequired
	}

	o.session.ResetCPVs()
	o.log.Info("starting detail batch",
		logger.Int("urls", len(urls)),
		logger.Int("concurrency", o.cfg.Concurrency),
	)

	sem := make(chan struct{}, o.cfg.Concurrency)
	var wg sync.WaitGroup
	for _, url := range urls {
		if err := o.limiter.Wait(ctx); err != nil {
			// Context gone; unstarted URLs still get an entry so the
			// batch result covers the whole session.
			o.session.SetCPV(url, "")
			continue
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(u string) {
			defer wg.Done()
			defer func() { <-sem }()

			cpv := ""
			if detail, err := o.Scrape(ctx, u); err == nil {
				cpv = detail.CPV
			}
			o.session.SetCPV(u, cpv)
		}(url)
	}
	wg.Wait()

	results := o.session.CPVs()
	o.log.Info("detail batch finished",
		logger.Int("urls", len(urls)),
		logger.Int("with_cpv", countNonEmpty(results)),
	)
	return results, nil
}

func countNonEmpty(m map[string]string) int {
	n := 0
	for _, v := range m {
		if v != "" {
			n++
		}
	}
	return n
}
