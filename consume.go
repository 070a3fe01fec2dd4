package main

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/muhammadolammi/skillscan/internal/worker"
)

func runWorker(ctx context.Context, id int, processor *worker.Processor, transport *Transport, wg *sync.WaitGroup) {
	defer wg.Done()

	processor.Run(ctx, id, transport.NewConsumer)
	log.WithField("worker_id", id).Info("worker exited")
}

// StartConsumerWorkerPool blocks until every worker has returned.
func StartConsumerWorkerPool(ctx context.Context, processor *worker.Processor, transport *Transport, numWorkers int) {
	var wg sync.WaitGroup
	wg.Add(numWorkers)

	for i := range numWorkers {
		go runWorker(ctx, i+1, processor, transport, &wg)
	}
	wg.Wait()
}
