package fn

import (
	"context"
	"errors"
	"reflect"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

func TestResult(t *testing.T) {
	ok := Ok(42)
	if !ok.IsOk() || ok.IsErr() {
		t.Fatal("Ok result must report success")
	}
	v, err := ok.Unwrap()
	if v != 42 || err != nil {
		t.Fatalf("unexpected unwrap: %d, %v", v, err)
	}

	boom := errors.New("boom")
	bad := Err[int](boom)
	if bad.IsOk() || !bad.IsErr() {
		t.Fatal("Err result must report failure")
	}
	if _, err := bad.Unwrap(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if got := bad.UnwrapOr(7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}

	if _, err := Errf[int]("code %d", 5).Unwrap(); err == nil || err.Error() != "code 5" {
		t.Fatalf("unexpected Errf error: %v", err)
	}
}

func TestCollect(t *testing.T) {
	got := Collect([]Result[int]{Ok(1), Ok(2), Ok(3)})
	vals, err := got.Unwrap()
	if err != nil || !reflect.DeepEqual(vals, []int{1, 2, 3}) {
		t.Fatalf("unexpected collect: %v, %v", vals, err)
	}

	boom := errors.New("boom")
	bad := Collect([]Result[int]{Ok(1), Err[int](boom)})
	if _, err := bad.Unwrap(); !errors.Is(err, boom) {
		t.Fatalf("expected first error, got %v", err)
	}
}

func TestThenShortCircuits(t *testing.T) {
	boom := errors.New("boom")
	first := func(_ context.Context, n int) Result[int] { return Err[int](boom) }
	called := false
	second := func(_ context.Context, n int) Result[string] {
		called = true
		return Ok(strconv.Itoa(n))
	}

	res := Then(first, second)(context.Background(), 1)
	if _, err := res.Unwrap(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if called {
		t.Fatal("second stage must not run after failure")
	}
}

func TestThenComposes(t *testing.T) {
	double := MapStage(func(n int) int { return n * 2 })
	str := MapStage(strconv.Itoa)

	v, err := Then(double, str)(context.Background(), 21).Unwrap()
	if err != nil || v != "42" {
		t.Fatalf("unexpected result: %q, %v", v, err)
	}
}

func TestTapStage(t *testing.T) {
	seen := 0
	tap := TapStage(func(_ context.Context, n int) { seen = n })
	v, err := tap(context.Background(), 9).Unwrap()
	if err != nil || v != 9 || seen != 9 {
		t.Fatalf("tap must pass through and observe: %d, %d, %v", v, seen, err)
	}
}

func TestTracedStagePreservesOutcome(t *testing.T) {
	double := TracedStage("double", func(_ context.Context, n int) Result[int] {
		return Ok(n * 2)
	})
	if v, err := double(context.Background(), 21).Unwrap(); err != nil || v != 42 {
		t.Fatalf("unexpected traced result: %d, %v", v, err)
	}

	boom := errors.New("boom")
	failing := TracedStage("failing", func(_ context.Context, _ int) Result[int] {
		return Err[int](boom)
	})
	if _, err := failing(context.Background(), 0).Unwrap(); !errors.Is(err, boom) {
		t.Fatalf("expected boom through traced stage, got %v", err)
	}
}

func TestSliceHelpers(t *testing.T) {
	if got := Map([]int{1, 2, 3}, func(n int) int { return n * n }); !reflect.DeepEqual(got, []int{1, 4, 9}) {
		t.Fatalf("Map: %v", got)
	}
	if got := Filter([]int{1, 2, 3, 4}, func(n int) bool { return n%2 == 0 }); !reflect.DeepEqual(got, []int{2, 4}) {
		t.Fatalf("Filter: %v", got)
	}
	got := FilterMap([]string{"1", "x", "3"}, func(s string) (int, bool) {
		n, err := strconv.Atoi(s)
		return n, err == nil
	})
	if !reflect.DeepEqual(got, []int{1, 3}) {
		t.Fatalf("FilterMap: %v", got)
	}
}

func TestChunk(t *testing.T) {
	got := Chunk([]int{1, 2, 3, 4, 5}, 2)
	want := [][]int{{1, 2}, {3, 4}, {5}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Chunk: %v", got)
	}
	if Chunk([]int{1}, 0) != nil {
		t.Fatal("Chunk with n <= 0 must be nil")
	}
}

func TestParMapPreservesOrder(t *testing.T) {
	items := make([]int, 100)
	for i := range items {
		items[i] = i
	}
	got := ParMap(items, 8, func(n int) int { return n * 2 })
	for i, v := range got {
		if v != i*2 {
			t.Fatalf("index %d: got %d", i, v)
		}
	}
}

func TestParMapEmptyAndZeroWorkers(t *testing.T) {
	if got := ParMap[int, int](nil, 4, func(n int) int { return n }); len(got) != 0 {
		t.Fatalf("empty input: %v", got)
	}
	got := ParMap([]int{1, 2}, 0, func(n int) int { return n + 1 })
	if !reflect.DeepEqual(got, []int{2, 3}) {
		t.Fatalf("zero workers: %v", got)
	}
}

func TestParMapResultIsolatesFailures(t *testing.T) {
	boom := errors.New("boom")
	results := ParMapResult([]int{1, 2, 3}, 2, func(n int) Result[int] {
		if n == 2 {
			return Err[int](boom)
		}
		return Ok(n * 10)
	})

	if v, err := results[0].Unwrap(); err != nil || v != 10 {
		t.Fatalf("unexpected first result: %d, %v", v, err)
	}
	if _, err := results[1].Unwrap(); !errors.Is(err, boom) {
		t.Fatalf("expected boom for second item, got %v", err)
	}
	if v, err := results[2].Unwrap(); err != nil || v != 30 {
		t.Fatalf("failure must not affect siblings: %d, %v", v, err)
	}
}

func TestRetryEventuallySucceeds(t *testing.T) {
	var attempts atomic.Int32
	opts := RetryOpts{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: time.Millisecond}

	res := Retry(context.Background(), opts, func(_ context.Context) Result[string] {
		if attempts.Add(1) < 3 {
			return Errf[string]("transient")
		}
		return Ok("done")
	})
	v, err := res.Unwrap()
	if err != nil || v != "done" {
		t.Fatalf("unexpected result: %q, %v", v, err)
	}
	if attempts.Load() != 3 {
		t.Fatalf("expected 3 attempts, got %d", attempts.Load())
	}
}

func TestRetryExhausted(t *testing.T) {
	boom := errors.New("boom")
	opts := RetryOpts{MaxAttempts: 2, InitialWait: time.Millisecond, MaxWait: time.Millisecond}

	res := Retry(context.Background(), opts, func(_ context.Context) Result[int] {
		return Err[int](boom)
	})
	if _, err := res.Unwrap(); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestRetryRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	opts := RetryOpts{MaxAttempts: 5, InitialWait: time.Minute, MaxWait: time.Minute}

	res := Retry(ctx, opts, func(_ context.Context) Result[int] {
		return Errf[int]("transient")
	})
	if _, err := res.Unwrap(); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
