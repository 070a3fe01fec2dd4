package main

import (
	"github.com/muhammadolammi/skillscan/internal/queue"
	"github.com/muhammadolammi/skillscan/internal/worker"
)

// Transport bundles the queue side of the worker: one publisher shared by
// every worker and a factory handing each worker its own consumer.
type Transport struct {
	Publisher   worker.Publisher
	NewConsumer func() (queue.Consumer, error)
	closers     []func()
}

func (t *Transport) Close() {
	for _, c := range t.closers {
		c()
	}
}
