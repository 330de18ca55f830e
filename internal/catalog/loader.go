package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Snapshot carries option values already rendered onto an item card.
// It is the fallback data source when the structured fetch yields
// nothing, and doubles as a cache written back after a successful load
// so a collapse/re-expand cycle costs no second fetch. Losing it only
// costs a re-fetch, never correctness.
type Snapshot struct {
	PricesArray    string `json:"prices_array"`    // JSON flat [size, flavour, price, ...]
	SideCategories string `json:"side_categories"` // JSON side category docs
	Additions      string `json:"additions"`       // JSON flat [name, price, ...]
	ImagesArray    string `json:"images_array"`    // JSON image entries

	Sizes     []string `json:"sizes"`
	Flavours  []string `json:"flavours"`
	BasePrice float64  `json:"base_price"`
}

// Loader fetches and decodes item option data, falling back through
// progressively weaker sources: structured JSON, the card snapshot,
// and finally a table synthesized from a flat base price. Load never
// fails; the weakest outcome is empty options.
type Loader struct {
	client *http.Client
	cache  *gocache.Cache
}

func NewLoader() *Loader {
	return &Loader{
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  gocache.New(15*time.Minute, 30*time.Minute),
	}
}

// Load resolves option data for the item published at itemURL.
// snap may be nil when the card carries no rendered values.
func (l *Loader) Load(ctx context.Context, itemURL string, snap *Snapshot) *ItemOptions {
	if cached, ok := l.cache.Get(itemURL); ok {
		return cached.(*ItemOptions)
	}

	doc, err := l.fetchDoc(ctx, itemURL)
	if err != nil || doc == nil {
		doc = snapshotDoc(snap)
	}

	opts := DecodeOptions(doc)
	fillFromSnapshot(opts, snap)

	if len(opts.Prices) == 0 && snap != nil {
		opts.Prices = SynthesizeTable(snap.BasePrice, opts.Sizes, opts.Flavours)
	}

	if itemURL != "" {
		l.cache.Set(itemURL, opts, gocache.DefaultExpiration)
	}
	return opts
}

// Invalidate drops a cached item, used after its options are edited.
func (l *Loader) Invalidate(itemURL string) {
	l.cache.Delete(itemURL)
}

// fetchDoc tries <item-url>/index.json first, then the legacy
// <item-url>.json location.
func (l *Loader) fetchDoc(ctx context.Context, itemURL string) (*OptionsDoc, error) {
	if itemURL == "" {
		return nil, fmt.Errorf("no item url")
	}

	base := strings.TrimSuffix(itemURL, "/")
	doc, err := l.fetchOne(ctx, base+"/index.json")
	if err == nil {
		return doc, nil
	}
	return l.fetchOne(ctx, base+".json")
}

func (l *Loader) fetchOne(ctx context.Context, url string) (*OptionsDoc, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var doc OptionsDoc
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	return &doc, nil
}

// snapshotDoc rebuilds an options document from the JSON-encoded
// values a card carries. Each field decodes independently; a bad one
// is skipped, not fatal.
func snapshotDoc(snap *Snapshot) *OptionsDoc {
	if snap == nil {
		return nil
	}

	doc := &OptionsDoc{Sizes: snap.Sizes, Flavours: snap.Flavours}

	if snap.PricesArray != "" {
		_ = json.Unmarshal([]byte(snap.PricesArray), &doc.Items)
	}
	if snap.SideCategories != "" {
		_ = json.Unmarshal([]byte(snap.SideCategories), &doc.SideCategories)
	}
	if snap.Additions != "" {
		_ = json.Unmarshal([]byte(snap.Additions), &doc.Additions)
	}
	if snap.ImagesArray != "" {
		_ = json.Unmarshal([]byte(snap.ImagesArray), &doc.Images)
	}
	return doc
}

// fillFromSnapshot patches holes in fetched options with snapshot
// values, so a structured document missing a single field still gets
// the card's rendered data for it.
func fillFromSnapshot(opts *ItemOptions, snap *Snapshot) {
	if snap == nil {
		return
	}
	if len(opts.Sizes) == 0 {
		opts.Sizes = snap.Sizes
	}
	if len(opts.Flavours) == 0 {
		opts.Flavours = snap.Flavours
	}
	if len(opts.Prices) == 0 && snap.PricesArray != "" {
		var flat []json.RawMessage
		if err := json.Unmarshal([]byte(snap.PricesArray), &flat); err == nil {
			opts.Prices = DecodePriceTriples(flat)
		}
	}
}
