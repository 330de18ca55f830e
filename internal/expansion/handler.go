package expansion

import (
	"context"
	"net/http"
	"sync"

	"caribmenu/internal/catalog"
	"caribmenu/internal/pricing"
	"caribmenu/internal/selection"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ItemSource lists the menu items a browsing session starts from. The
// production implementation is catalog.Service.
type ItemSource interface {
	ListItems(ctx context.Context) ([]catalog.MenuItem, error)
}

// Handler exposes browsing sessions over HTTP. Each session owns one
// Controller tracking a card per menu item, so clients can drive the
// expand/collapse machine and a live selection without holding any
// state themselves.
type Handler struct {
	mu       sync.Mutex
	loader   OptionsLoader
	items    ItemSource
	sessions map[string]*session
}

type session struct {
	ctl   *Controller
	cards []cardInfo // registration order, for stable listings
}

type cardInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func NewHandler(loader OptionsLoader, items ItemSource) *Handler {
	return &Handler{
		loader:   loader,
		items:    items,
		sessions: make(map[string]*session),
	}
}

// --------------------------------------------------
// POST /session — open a browsing session
// --------------------------------------------------
func (h *Handler) CreateSession(c *gin.Context) {
	items, err := h.items.ListItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	ctl := NewController(h.loader)
	sess := &session{ctl: ctl}
	for _, item := range items {
		ctl.Register(&Card{
			ID:       item.Slug,
			ItemName: item.Name,
			ItemURL:  item.SourceURL,
			Snapshot: &catalog.Snapshot{
				Sizes:     item.Sizes,
				Flavours:  item.Flavours,
				BasePrice: item.BasePrice,
			},
		})
		sess.cards = append(sess.cards, cardInfo{ID: item.Slug, Name: item.Name})
	}

	id := uuid.NewString()
	h.mu.Lock()
	h.sessions[id] = sess
	h.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"session_id": id, "cards": sess.cards})
}

// --------------------------------------------------
// POST /session/:id/cards/:card/click
// --------------------------------------------------
type clickRequest struct {
	Target string `json:"target"` // primary | nested | drag
}

func (h *Handler) Click(c *gin.Context) {
	sess, ok := h.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req clickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		req.Target = "primary"
	}

	target := PrimaryTarget
	switch req.Target {
	case "", "primary":
	case "nested":
		target = NestedControlTarget
	case "drag":
		target = DragHandleTarget
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown click target"})
		return
	}

	cardID := c.Param("card")
	sess.ctl.Click(c.Request.Context(), cardID, target)
	// The option load runs in the background; settle it so the
	// response already carries the expanded card.
	sess.ctl.WaitLoads()

	c.JSON(http.StatusOK, h.cardView(sess, cardID))
}

// --------------------------------------------------
// POST /session/:id/cards/:card/selection
// --------------------------------------------------
type mutateRequest struct {
	Action   string `json:"action"` // size | flavour | side | addition | quantity-up | quantity-down
	Value    string `json:"value"`
	Category string `json:"category"`
}

func (h *Handler) Mutate(c *gin.Context) {
	sess, ok := h.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	var req mutateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	cardID := c.Param("card")
	applied := sess.ctl.Mutate(cardID, func(sel *selection.State, opts *catalog.ItemOptions) {
		switch req.Action {
		case "size":
			sel.SetSize(req.Value)
		case "flavour":
			sel.SetFlavour(req.Value)
		case "side":
			if cat := opts.Category(req.Category); cat != nil {
				// A full category rejects the pick without comment.
				_ = sel.ToggleSide(cat, req.Value)
			}
		case "addition":
			sel.ToggleAddition(req.Value)
		case "quantity-up":
			sel.IncrementQuantity()
		case "quantity-down":
			sel.DecrementQuantity()
		}
	})
	if !applied {
		c.JSON(http.StatusConflict, gin.H{"error": "card is not expanded"})
		return
	}

	c.JSON(http.StatusOK, h.cardView(sess, cardID))
}

// --------------------------------------------------
// GET /session/:id — every card's state, expanded detail included
// --------------------------------------------------
func (h *Handler) GetState(c *gin.Context) {
	sess, ok := h.session(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	views := make([]gin.H, 0, len(sess.cards))
	for _, info := range sess.cards {
		views = append(views, h.cardView(sess, info.ID))
	}
	c.JSON(http.StatusOK, gin.H{"cards": views})
}

// --------------------------------------------------
// DELETE /session/:id
// --------------------------------------------------
func (h *Handler) EndSession(c *gin.Context) {
	id := c.Param("id")

	h.mu.Lock()
	sess, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()

	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}

	sess.ctl.WaitLoads()
	sess.ctl.Reset()
	c.JSON(http.StatusOK, gin.H{"message": "session ended"})
}

func (h *Handler) session(id string) (*session, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sess, ok := h.sessions[id]
	return sess, ok
}

// cardView renders one card for the wire. For the active expanded card
// the selection and live pricing are read under the controller lock so
// the view never interleaves with a mutation.
func (h *Handler) cardView(sess *session, cardID string) gin.H {
	view := gin.H{
		"id":    cardID,
		"state": sess.ctl.CardState(cardID).String(),
	}
	for _, info := range sess.cards {
		if info.ID == cardID {
			view["name"] = info.Name
		}
	}

	sess.ctl.Mutate(cardID, func(sel *selection.State, opts *catalog.ItemOptions) {
		unit := pricing.ResolveUnitPrice(opts.Prices, sel.Size, sel.Flavour)

		var sides []catalog.SideItem
		sideNames := make(map[string][]string)
		for _, cat := range opts.SideCategories {
			picked := sel.SelectedSides(cat.CategoryName)
			if len(picked) == 0 {
				continue
			}
			sideNames[cat.CategoryName] = picked
			for _, name := range picked {
				if item := cat.FindSide(name); item != nil {
					sides = append(sides, *item)
				}
			}
		}

		var additions []catalog.Addition
		for _, name := range sel.SelectedAdditions() {
			if add := opts.FindAddition(name); add != nil {
				additions = append(additions, *add)
			}
		}

		view["size"] = sel.Size
		view["flavour"] = sel.Flavour
		view["quantity"] = sel.Quantity
		view["sides"] = sideNames
		view["additions"] = sel.SelectedAdditions()
		view["unit_price"] = unit
		view["total"] = pricing.ResolveTotal(unit, sides, additions, sel.Quantity)
	})

	return view
}
