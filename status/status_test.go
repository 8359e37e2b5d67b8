package status

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMetricMapCachesPointers(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get(KeyCellsLive)
	b := r.Ints.Get(KeyCellsLive)
	if a != b {
		t.Fatal("Get returned different pointers for the same key")
	}
	a.Add(3)
	if r.Int(KeyCellsLive) != 3 {
		t.Errorf("Int = %d, want 3", r.Int(KeyCellsLive))
	}
	if r.Int("missing") != 0 {
		t.Error("unregistered metric should read 0")
	}
	if r.Ints.Has("missing") {
		t.Error("Int must not register missing keys")
	}
}

func TestRangeSorted(t *testing.T) {
	r := NewRegistry()
	r.Ints.Get("b")
	r.Ints.Get("a")
	r.Ints.Get("c")

	var keys []string
	r.Ints.Range(func(k string, _ *atomic.Int64) { keys = append(keys, k) })
	want := []string{"a", "b", "c"}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Range order = %v, want %v", keys, want)
		}
	}
	if r.TotalCount() != 3 {
		t.Errorf("TotalCount = %d, want 3", r.TotalCount())
	}
}

func TestAtomicFloatConcurrentAdd(t *testing.T) {
	var f AtomicFloat
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				f.Add(0.5)
			}
		}()
	}
	wg.Wait()
	if f.Get() != 4000 {
		t.Errorf("Get = %v, want 4000", f.Get())
	}
}

func TestAtomicFloatMax(t *testing.T) {
	var f AtomicFloat
	f.Max(2)
	f.Max(1)
	if f.Get() != 2 {
		t.Errorf("Max kept %v, want 2", f.Get())
	}
}
