package redispass

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetry(t *testing.T) {
	ctx := context.Background()
	refused := errors.New("connection refused")
	fatal := errors.New("NOAUTH")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{"first try", 0, nil, 1, nil},
		{"recovers", 2, retryable(refused), 3, nil},
		{"gives up", 5, retryable(refused), 3, refused},
		{"not retryable", 5, fatal, 1, fatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := retry(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("retry() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry(ctx, 3, time.Hour, func() error { return retryable(errors.New("down")) })
	if err != context.Canceled {
		t.Errorf("retry() = %v, want context.Canceled", err)
	}
}

func TestRetryableNil(t *testing.T) {
	if retryable(nil) != nil {
		t.Error("retryable(nil) should be nil")
	}
}
