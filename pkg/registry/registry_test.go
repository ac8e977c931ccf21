package registry

import (
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/arthur-debert/yuma/pkg/errors"
)

type testKey string

// TestItem is a simple type for testing
type TestItem struct {
	ID   int
	Name string
}

func TestNew(t *testing.T) {
	reg := New[testKey, TestItem]()

	if reg == nil {
		t.Fatal("New() returned nil")
	}

	if reg.Count() != 0 {
		t.Errorf("New registry should be empty, got count %d", reg.Count())
	}
}

func TestRegister(t *testing.T) {
	reg := New[testKey, TestItem]()

	t.Run("register valid item", func(t *testing.T) {
		err := reg.Register("item1", TestItem{ID: 1, Name: "test"})

		if err != nil {
			t.Fatalf("Register() error = %v, want nil", err)
		}

		if reg.Count() != 1 {
			t.Errorf("Count() = %d, want 1", reg.Count())
		}
	})

	t.Run("register with empty key", func(t *testing.T) {
		err := reg.Register("", TestItem{ID: 2})

		if !errors.IsErrorCode(err, errors.ErrInvalidInput) {
			t.Errorf("Register() with empty key should return ErrInvalidInput, got %v", err)
		}
	})

	t.Run("register duplicate", func(t *testing.T) {
		err := reg.Register("item1", TestItem{ID: 3})

		if !errors.IsErrorCode(err, errors.ErrAlreadyExists) {
			t.Errorf("Register() duplicate should return ErrAlreadyExists, got %v", err)
		}
	})
}

func TestGet(t *testing.T) {
	reg := New[testKey, TestItem]()
	item := TestItem{ID: 1, Name: "test"}
	_ = reg.Register("item1", item)

	t.Run("get existing item", func(t *testing.T) {
		got, err := reg.Get("item1")

		if err != nil {
			t.Fatalf("Get() error = %v, want nil", err)
		}

		if got != item {
			t.Errorf("Get() = %+v, want %+v", got, item)
		}
	})

	t.Run("get non-existing item", func(t *testing.T) {
		_, err := reg.Get("nonexistent")

		if !errors.IsErrorCode(err, errors.ErrNotFound) {
			t.Errorf("Get() non-existing should return ErrNotFound, got %v", err)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Run("factory runs once per key", func(t *testing.T) {
		reg := New[testKey, TestItem]()
		calls := 0
		factory := func() (TestItem, error) {
			calls++
			return TestItem{ID: calls}, nil
		}

		first, err := reg.Load("paru", factory)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		second, err := reg.Load("paru", factory)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}

		if calls != 1 {
			t.Errorf("factory called %d times, want 1", calls)
		}
		if first != second {
			t.Errorf("Load() returned different items: %+v vs %+v", first, second)
		}
	})

	t.Run("failed factory is not cached", func(t *testing.T) {
		reg := New[testKey, TestItem]()
		boom := stderrors.New("boom")

		_, err := reg.Load("brew", func() (TestItem, error) { return TestItem{}, boom })
		if !stderrors.Is(err, boom) {
			t.Fatalf("Load() error = %v, want boom", err)
		}
		if reg.Has("brew") {
			t.Error("failed factory result should not be cached")
		}

		got, err := reg.Load("brew", func() (TestItem, error) { return TestItem{ID: 7}, nil })
		if err != nil || got.ID != 7 {
			t.Errorf("Load() after failure = %+v, %v", got, err)
		}
	})

	t.Run("concurrent loads share one instance", func(t *testing.T) {
		reg := New[testKey, *TestItem]()
		var calls int32
		var wg sync.WaitGroup
		results := make([]*TestItem, 20)

		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				item, _ := reg.Load("shared", func() (*TestItem, error) {
					atomic.AddInt32(&calls, 1)
					return &TestItem{ID: 1}, nil
				})
				results[i] = item
			}(i)
		}
		wg.Wait()

		if calls != 1 {
			t.Errorf("factory called %d times, want 1", calls)
		}
		for _, r := range results {
			if r != results[0] {
				t.Fatal("concurrent Load() returned different instances")
			}
		}
	})
}

func TestKeys(t *testing.T) {
	reg := New[testKey, TestItem]()

	for i, name := range []testKey{"charlie", "alpha", "bravo"} {
		_ = reg.Register(name, TestItem{ID: i})
	}

	keys := reg.Keys()
	expected := []testKey{"alpha", "bravo", "charlie"}

	if len(keys) != len(expected) {
		t.Fatalf("Keys() returned %d items, want %d", len(keys), len(expected))
	}

	for i, key := range keys {
		if key != expected[i] {
			t.Errorf("Keys()[%d] = %s, want %s", i, key, expected[i])
		}
	}
}

func TestHas(t *testing.T) {
	reg := New[testKey, TestItem]()
	_ = reg.Register("item1", TestItem{ID: 1})

	tests := []struct {
		name string
		key  testKey
		want bool
	}{
		{"existing item", "item1", true},
		{"non-existing item", "item2", false},
		{"empty key", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := reg.Has(tt.key); got != tt.want {
				t.Errorf("Has(%s) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestConcurrentRegister(t *testing.T) {
	reg := New[testKey, TestItem]()
	const goroutines = 10
	const itemsPerGoroutine = 50

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for g := 0; g < goroutines; g++ {
		go func(goroutineID int) {
			defer wg.Done()
			for i := 0; i < itemsPerGoroutine; i++ {
				key := testKey(fmt.Sprintf("g%d_item%d", goroutineID, i))
				if err := reg.Register(key, TestItem{ID: goroutineID*1000 + i}); err != nil {
					t.Errorf("Concurrent Register() failed: %v", err)
				}
			}
		}(g)
	}

	wg.Wait()

	if reg.Count() != goroutines*itemsPerGoroutine {
		t.Errorf("Count() after concurrent writes = %d, want %d", reg.Count(), goroutines*itemsPerGoroutine)
	}
}

func TestMustRegister(t *testing.T) {
	reg := New[testKey, TestItem]()
	MustRegister(reg, "item1", TestItem{ID: 1})

	defer func() {
		if r := recover(); r == nil {
			t.Error("MustRegister() duplicate should panic")
		}
	}()
	MustRegister(reg, "item1", TestItem{ID: 2})
}
