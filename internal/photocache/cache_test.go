package photocache

import (
	"path/filepath"
	"reflect"
	"sync"
	"testing"
)

// caches returns every Cache implementation, each backed by fresh storage.
func caches(t *testing.T) map[string]Cache {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return map[string]Cache{
		"memory": NewMemoryCache(),
		"sqlite": db,
	}
}

func TestCache_ClearAndRepopulate(t *testing.T) {
	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			first := []Entry{{Key: "cache-b", Image: "data:b"}, {Key: "cache-a", Image: "data:a"}}
			if err := c.ClearAndRepopulate(first); err != nil {
				t.Fatalf("ClearAndRepopulate failed: %v", err)
			}

			got, err := c.Entries()
			if err != nil {
				t.Fatalf("Entries failed: %v", err)
			}
			want := []Entry{{Key: "cache-a", Image: "data:a"}, {Key: "cache-b", Image: "data:b"}}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Entries: got %+v, want %+v", got, want)
			}

			// The second cycle must drop entries it does not mention.
			if err := c.ClearAndRepopulate([]Entry{{Key: "cache-c", Image: "data:c"}}); err != nil {
				t.Fatalf("second ClearAndRepopulate failed: %v", err)
			}
			if _, ok, _ := c.Get("cache-a"); ok {
				t.Error("cache-a should have been cleared")
			}
			img, ok, err := c.Get("cache-c")
			if err != nil || !ok || img != "data:c" {
				t.Errorf("Get(cache-c): got %q, %v, %v", img, ok, err)
			}

			if err := c.ClearAndRepopulate(nil); err != nil {
				t.Fatalf("clearing failed: %v", err)
			}
			if got, _ := c.Entries(); len(got) != 0 {
				t.Errorf("cache should be empty, got %+v", got)
			}
		})
	}
}

func TestCache_GetMissing(t *testing.T) {
	for name, c := range caches(t) {
		t.Run(name, func(t *testing.T) {
			img, ok, err := c.Get("cache-nope")
			if err != nil {
				t.Fatalf("Get failed: %v", err)
			}
			if ok || img != "" {
				t.Errorf("got %q, %v, want a miss", img, ok)
			}
		})
	}
}

func TestSQLiteCache_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	c, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite failed: %v", err)
	}
	if err := c.ClearAndRepopulate([]Entry{{Key: "cache-1", Image: "data:1"}}); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if img, ok, _ := reopened.Get("cache-1"); !ok || img != "data:1" {
		t.Errorf("entry should survive reopening, got %q, %v", img, ok)
	}
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := NewMemoryCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			c.ClearAndRepopulate([]Entry{{Key: "k", Image: "v"}})
		}()
		go func() {
			defer wg.Done()
			c.Get("k")
			c.Entries()
		}()
	}
	wg.Wait()
}
