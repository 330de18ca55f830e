package expansion

import (
	"context"
	"sync"

	"caribmenu/internal/catalog"
	"caribmenu/internal/selection"
)

// CardState is the expansion state of one item card.
type CardState int

const (
	Collapsed CardState = iota
	Loading
	Expanded
)

func (s CardState) String() string {
	switch s {
	case Loading:
		return "loading"
	case Expanded:
		return "expanded"
	}
	return "collapsed"
}

// ClickTarget classifies where on a card a click landed. Only primary
// clicks drive expansion; clicks on nested interactive controls and on
// the drag affordance belong to other handlers and never transition.
type ClickTarget int

const (
	PrimaryTarget       ClickTarget = iota
	NestedControlTarget             // image link, title link, option controls
	DragHandleTarget                // owned by the external reordering collaborator
)

// OptionsLoader resolves option data for one item. The production
// implementation is catalog.Loader; it never fails, only degrades.
type OptionsLoader interface {
	Load(ctx context.Context, itemURL string, snap *catalog.Snapshot) *catalog.ItemOptions
}

// Card is one item card tracked by a Controller.
type Card struct {
	ID       string
	ItemName string
	ItemURL  string
	Snapshot *catalog.Snapshot

	state     CardState
	Options   *catalog.ItemOptions
	Selection *selection.State
}

// State returns the card's current expansion state.
func (c *Card) State() CardState { return c.state }

// Controller owns the expansion state of every card on a page and
// enforces the one rule that matters: at most one card is Loading or
// Expanded at any time. The active card is an explicit reference held
// here, never a marker scanned off the cards.
//
// Mutations are serialized by the mutex; a click during another card's
// load simply steals the active slot, and the stale load's result is
// discarded when it eventually lands.
type Controller struct {
	mu     sync.Mutex
	loader OptionsLoader
	cards  map[string]*Card
	active string // ID of the card currently Loading or Expanded

	loads sync.WaitGroup
}

func NewController(loader OptionsLoader) *Controller {
	return &Controller{
		loader: loader,
		cards:  make(map[string]*Card),
	}
}

// Register adds a card to the page in the collapsed state.
func (ctl *Controller) Register(card *Card) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	card.state = Collapsed
	ctl.cards[card.ID] = card
}

// Click feeds one click event into the state machine.
//
// Primary click on a collapsed card: any other active card is forced
// collapsed (its selection cleared), the clicked card enters Loading,
// and its option load runs in the background. Primary click on the
// active card collapses it. Clicks on nested controls or the drag
// handle never transition.
func (ctl *Controller) Click(ctx context.Context, cardID string, target ClickTarget) {
	if target != PrimaryTarget {
		return
	}

	ctl.mu.Lock()
	card, ok := ctl.cards[cardID]
	if !ok {
		ctl.mu.Unlock()
		return
	}

	if card.state == Expanded || card.state == Loading {
		ctl.collapseLocked(card)
		ctl.mu.Unlock()
		return
	}

	if ctl.active != "" {
		if prev, ok := ctl.cards[ctl.active]; ok {
			ctl.collapseLocked(prev)
		}
	}

	card.state = Loading
	ctl.active = card.ID
	ctl.mu.Unlock()

	ctl.loads.Add(1)
	go func() {
		defer ctl.loads.Done()
		opts := ctl.loader.Load(ctx, card.ItemURL, card.Snapshot)
		ctl.finishLoad(card.ID, opts)
	}()
}

// finishLoad applies a completed load. A result for a card that is no
// longer the active loading one is stale and dropped without comment;
// the fetch itself was never cancelled, only its relevance.
func (ctl *Controller) finishLoad(cardID string, opts *catalog.ItemOptions) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	card, ok := ctl.cards[cardID]
	if !ok || ctl.active != cardID || card.state != Loading {
		return
	}

	card.Options = opts
	card.Selection = selection.New(opts)
	card.state = Expanded
}

// Collapse force-collapses one card if it is the active one.
func (ctl *Controller) Collapse(cardID string) {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if card, ok := ctl.cards[cardID]; ok {
		ctl.collapseLocked(card)
	}
}

// Reset collapses everything, as on a full page navigation.
func (ctl *Controller) Reset() {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	for _, card := range ctl.cards {
		card.state = Collapsed
		card.Selection = nil
	}
	ctl.active = ""
}

func (ctl *Controller) collapseLocked(card *Card) {
	card.state = Collapsed
	card.Selection = nil
	if ctl.active == card.ID {
		ctl.active = ""
	}
}

// Active returns the card currently Loading or Expanded, or nil.
func (ctl *Controller) Active() *Card {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if ctl.active == "" {
		return nil
	}
	return ctl.cards[ctl.active]
}

// CardState reports one card's state.
func (ctl *Controller) CardState(cardID string) CardState {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if card, ok := ctl.cards[cardID]; ok {
		return card.state
	}
	return Collapsed
}

// Mutate runs fn against the active expanded card's selection.
// Mutations are serialized under the controller mutex, so no two
// interleave. Returns false when the card is not the active expanded
// one — a late click against a collapsed card is a no-op.
func (ctl *Controller) Mutate(cardID string, fn func(*selection.State, *catalog.ItemOptions)) bool {
	ctl.mu.Lock()
	defer ctl.mu.Unlock()

	card, ok := ctl.cards[cardID]
	if !ok || ctl.active != cardID || card.state != Expanded {
		return false
	}
	fn(card.Selection, card.Options)
	return true
}

// WaitLoads blocks until every in-flight load has settled. Tests and
// shutdown use it; normal operation never waits.
func (ctl *Controller) WaitLoads() {
	ctl.loads.Wait()
}
