package generator

import "errors"

// WorkerPool is a fixed set of interchangeable clients, one per worker
// slot. It is read-only after construction, so any number of concurrent
// dispatchers may call Select without synchronization.
type WorkerPool struct {
	clients []LLMClient
}

// NewWorkerPool builds a pool of size clients over the given factory. The
// key index cycles when size exceeds the number of keys, mirroring how a
// few credentials can back a wider pool.
func NewWorkerPool(size int, keys []string, build func(apiKey string) (LLMClient, error)) (*WorkerPool, error) {
	if size <= 0 {
		return nil, errors.New("worker pool size must be positive")
	}
	if len(keys) == 0 {
		return nil, errors.New("worker pool needs at least one credential")
	}
	clients := make([]LLMClient, size)
	for i := 0; i < size; i++ {
		c, err := build(keys[i%len(keys)])
		if err != nil {
			return nil, err
		}
		clients[i] = c
	}
	return &WorkerPool{clients: clients}, nil
}

// NewWorkerPoolFromClients wraps pre-built clients, mainly for tests.
func NewWorkerPoolFromClients(clients []LLMClient) (*WorkerPool, error) {
	if len(clients) == 0 {
		return nil, errors.New("worker pool needs at least one client")
	}
	return &WorkerPool{clients: clients}, nil
}

// Select maps a worker index onto a client. Deterministic:
// Select(i) == Select(i+Size()).
func (p *WorkerPool) Select(i int) LLMClient {
	if i < 0 {
		i = -i
	}
	return p.clients[i%len(p.clients)]
}

func (p *WorkerPool) Size() int {
	return len(p.clients)
}
