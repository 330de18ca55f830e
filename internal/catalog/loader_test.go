package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestLoader_FetchesIndexJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/menu/roti/index.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"sizes": ["Small"], "items": ["Small", "-", 30]}`))
	}))
	defer srv.Close()

	loader := NewLoader()
	opts := loader.Load(context.Background(), srv.URL+"/menu/roti", nil)

	if len(opts.Prices) != 1 || opts.Prices[0].Price != 30 {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestLoader_FallsBackToLegacyLocation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/menu/doubles.json" {
			w.Write([]byte(`{"items": ["-", "-", 7]}`))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	loader := NewLoader()
	opts := loader.Load(context.Background(), srv.URL+"/menu/doubles", nil)

	if len(opts.Prices) != 1 || opts.Prices[0].Price != 7 {
		t.Fatalf("legacy .json location not used: %+v", opts)
	}
}

func TestLoader_SnapshotFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	snap := &Snapshot{
		PricesArray: `["Large", "-", 18]`,
		Sizes:       []string{"Large"},
	}

	loader := NewLoader()
	opts := loader.Load(context.Background(), srv.URL+"/menu/pelau", snap)

	if len(opts.Prices) != 1 || opts.Prices[0].Price != 18 {
		t.Fatalf("snapshot values not used: %+v", opts)
	}
}

func TestLoader_SynthesizesFromBasePrice(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	snap := &Snapshot{BasePrice: 10, Flavours: []string{"Vanilla", "Chocolate"}}

	loader := NewLoader()
	opts := loader.Load(context.Background(), srv.URL+"/menu/icecream", snap)

	if len(opts.Prices) != 2 {
		t.Fatalf("expected one synthesized entry per flavour, got %+v", opts.Prices)
	}
	for _, e := range opts.Prices {
		if e.Price != 10 || e.Size != Sentinel {
			t.Fatalf("unexpected synthesized entry %+v", e)
		}
	}
}

func TestLoader_NeverFailsOnGarbage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{{{not json`))
	}))
	defer srv.Close()

	loader := NewLoader()
	opts := loader.Load(context.Background(), srv.URL+"/menu/broken", nil)

	if opts == nil {
		t.Fatal("load must degrade, never return nil")
	}
	if len(opts.Prices) != 0 {
		t.Fatalf("expected empty options from garbage, got %+v", opts)
	}
}

func TestLoader_CachesDecodedOptions(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.Write([]byte(`{"items": ["-", "-", 5]}`))
	}))
	defer srv.Close()

	loader := NewLoader()
	url := srv.URL + "/menu/bake"

	loader.Load(context.Background(), url, nil)
	loader.Load(context.Background(), url, nil)

	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Fatalf("expected 1 fetch with cache warm, got %d", got)
	}

	loader.Invalidate(url)
	loader.Load(context.Background(), url, nil)
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Fatalf("expected re-fetch after invalidation, got %d fetches", got)
	}
}
