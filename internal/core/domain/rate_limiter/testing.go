package ratelimiter

import (
	"context"
	"sync"
)

type FakeRateLimiter struct {
	Result     Result
	CheckedFor []string
	lock       sync.Mutex
}

func NewFakeRateLimiter(result Result) *FakeRateLimiter {
	return &FakeRateLimiter{Result: result}
}

func (r *FakeRateLimiter) CheckLimit(ctx context.Context, key string, limit Limit) Result {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.CheckedFor = append(r.CheckedFor, key)
	return r.Result
}
