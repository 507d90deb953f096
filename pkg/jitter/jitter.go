// Package jitter добавляет случайность в интервалы повторов, чтобы клиенты не повторяли запросы синхронно.
package jitter

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter — стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает d с джиттером в диапазоне [d, d*(1+jitterFactor)].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	defer randMutex.Unlock()

	return DurationWithRand(d, jitterFactor, globalRand)
}

// DurationWithRand работает как Duration, но с заданным генератором. Нужен для детерминированных тестов.
func DurationWithRand(d time.Duration, jitterFactor float64, rng *rand.Rand) time.Duration {
	if d <= 0 || jitterFactor <= 0 {
		return max(d, 0)
	}

	return d + time.Duration(rng.Float64()*jitterFactor*float64(d))
}

// ExponentialBackoff вычисляет задержку перед повтором номер attempt (с нуля):
// base удваивается на каждой попытке, но не превышает maxDelay, затем добавляется джиттер.
func ExponentialBackoff(base, maxDelay time.Duration, attempt int, jitterFactor float64) time.Duration {
	return Duration(backoff(base, maxDelay, attempt), jitterFactor)
}

func backoff(base, maxDelay time.Duration, attempt int) time.Duration {
	d := base
	for i := 0; i < attempt; i++ {
		d *= 2
		if maxDelay > 0 && d >= maxDelay {
			return maxDelay
		}
	}

	if maxDelay > 0 && d > maxDelay {
		return maxDelay
	}

	return d
}

// Sleep ждёт d или отмены контекста. Возвращает ctx.Err() при отмене.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
