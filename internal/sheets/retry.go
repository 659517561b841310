package sheets

import (
	"context"
	"math/rand"
	"time"
)

// Backoff is the retry policy applied to transient upstream failures. It is
// defined once here so the attempt count, base delay and jitter are testable
// in isolation rather than duplicated per operation.
type Backoff struct {
	// Attempts is the total number of tries, including the first.
	Attempts int
	// Base is the delay before the first retry.
	Base time.Duration
	// Factor multiplies the delay after each retry.
	Factor float64
	// Cap bounds the delay regardless of attempt number.
	Cap time.Duration
}

// DefaultBackoff is the policy used against the Sheets API: three attempts,
// 500 ms base, doubling, capped at 4 s.
func DefaultBackoff() Backoff {
	return Backoff{
		Attempts: 3,
		Base:     500 * time.Millisecond,
		Factor:   2,
		Cap:      4 * time.Second,
	}
}

// delay returns the sleep before retry number retry (0-based), with jitter in
// [d/2, d] to spread concurrent callers hitting the same quota window.
func (b Backoff) delay(retry int) time.Duration {
	d := time.Duration(float64(b.Base) * pow(b.Factor, retry))
	if b.Cap > 0 && d > b.Cap {
		d = b.Cap
	}
	half := d / 2
	return half + time.Duration(rand.Int63n(int64(half)+1))
}

func pow(factor float64, n int) float64 {
	out := 1.0
	for i := 0; i < n; i++ {
		out *= factor
	}
	return out
}

// sleepCtx waits for d on a timer. It suspends only this call; concurrent
// in-process requests keep proceeding, and cancellation cuts the wait short.
func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
