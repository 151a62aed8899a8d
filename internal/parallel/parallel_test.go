package parallel

import (
	"errors"
	"sync/atomic"
	"testing"
)

func TestFor(t *testing.T) {
	for _, cfg := range []Config{DefaultConfig(), {Enabled: true, NumWorkers: 4}, {}} {
		var counter int64
		n := 1000

		err := For(n, func(_ int) error {
			atomic.AddInt64(&counter, 1)
			return nil
		}, cfg)

		if err != nil {
			t.Fatalf("For(%+v) returned %v", cfg, err)
		}
		if counter != int64(n) {
			t.Errorf("For(%+v): expected %d calls, got %d", cfg, n, counter)
		}
	}
}

func TestFor_LowestIndexError(t *testing.T) {
	errAt := func(i int) error { return errors.New(string(rune('a' + i))) }

	for _, cfg := range []Config{{Enabled: true, NumWorkers: 8}, {}} {
		err := For(10, func(i int) error {
			if i == 3 || i == 7 {
				return errAt(i)
			}
			return nil
		}, cfg)

		if err == nil || err.Error() != "d" {
			t.Errorf("For(%+v) = %v, want error from index 3", cfg, err)
		}
	}
}

func TestFor_Empty(t *testing.T) {
	called := false
	err := For(0, func(int) error {
		called = true
		return nil
	}, Config{Enabled: true, NumWorkers: 4})

	if err != nil || called {
		t.Errorf("For(0) = %v, called = %v", err, called)
	}
}
