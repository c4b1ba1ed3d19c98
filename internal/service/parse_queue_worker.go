package service

import (
	"context"
	"log"
	"sync"
	"time"

	"beanvault/internal/port"
)

// ParseQueueConfig holds settings for the parse queue worker.
type ParseQueueConfig struct {
	PollInterval time.Duration
	MaxRetries   int
	Concurrency  int
}

// ParseQueueWorker polls for queued price lists and dispatches them for parsing.
type ParseQueueWorker struct {
	priceListRepo port.PriceListRepository
	ingestService IngestService
	cfg           ParseQueueConfig
	wg            sync.WaitGroup
}

// NewParseQueueWorker creates a new ParseQueueWorker.
func NewParseQueueWorker(priceListRepo port.PriceListRepository, ingestService IngestService, cfg ParseQueueConfig) *ParseQueueWorker {
	return &ParseQueueWorker{
		priceListRepo: priceListRepo,
		ingestService: ingestService,
		cfg:           cfg,
	}
}

// Start runs the polling loop until ctx is canceled. It blocks until all
// in-flight parse goroutines have finished.
func (w *ParseQueueWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	sem := make(chan struct{}, w.cfg.Concurrency)

	log.Printf("parseQueueWorker: started (poll=%s, concurrency=%d, maxRetries=%d)",
		w.cfg.PollInterval, w.cfg.Concurrency, w.cfg.MaxRetries)

	for {
		select {
		case <-ctx.Done():
			log.Printf("parseQueueWorker: shutting down, waiting for in-flight parses...")
			w.wg.Wait()
			log.Printf("parseQueueWorker: shutdown complete")
			return
		case <-ticker.C:
			available := w.cfg.Concurrency - len(sem)
			if available <= 0 {
				continue
			}

			lists, err := w.priceListRepo.ClaimQueued(ctx, available)
			if err != nil {
				if ctx.Err() != nil {
					continue
				}
				log.Printf("parseQueueWorker: ClaimQueued error: %v", err)
				continue
			}

			for i := range lists {
				pl := lists[i] // copy for goroutine

				sem <- struct{}{} // acquire
				w.wg.Add(1)
				go func() {
					defer w.wg.Done()
					defer func() { <-sem }() // release

					// Use a fresh context independent of the poll context
					// so in-flight parses complete even during shutdown.
					parseCtx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
					defer cancel()

					log.Printf("parseQueueWorker: dispatching price list %s (attempt %d)", pl.ID, pl.ParseAttempts)
					w.ingestService.ParsePriceList(parseCtx, &pl, w.cfg.MaxRetries)
				}()
			}
		}
	}
}
