package common

import (
	"context"
	"math/rand"
	"time"
)

// waitStep — шаг, с которым проверяется отмена контекста во время ожидания.
const waitStep = 5 * time.Second

// RandomDelay возвращает случайную задержку в диапазоне [min, max].
func RandomDelay(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// WaitWithCancellation ждёт случайное время из диапазона [min, max],
// прерываясь при отмене контекста.
func WaitWithCancellation(ctx context.Context, min, max time.Duration) error {
	return Sleep(ctx, RandomDelay(min, max))
}

// Sleep ждёт d шагами по пять секунд и возвращает ошибку контекста при отмене.
func Sleep(ctx context.Context, d time.Duration) error {
	for remaining := d; remaining > 0; {
		step := min(waitStep, remaining)
		timer := time.NewTimer(step)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		remaining -= step
	}
	return ctx.Err()
}
