package cart

import (
	"context"
	"errors"
	"net/http"

	"caribmenu/internal/catalog"
	"caribmenu/internal/selection"

	"github.com/gin-gonic/gin"
)

// CatalogReader is the slice of the catalog service the cart surface
// needs: the item record plus its decoded options.
type CatalogReader interface {
	GetItemOptions(ctx context.Context, slug string) (*catalog.MenuItem, *catalog.ItemOptions, error)
}

type Handler struct {
	service *Service
	catalog CatalogReader
	repo    Repository
}

func NewHandler(service *Service, cat CatalogReader, repo Repository) *Handler {
	return &Handler{service: service, catalog: cat, repo: repo}
}

// addRequest is one add-to-cart submission. Sides and additions come
// as picked names; the handler replays them through the selection
// rules so category caps hold server-side too.
type addRequest struct {
	Slug      string              `json:"slug"`
	Size      string              `json:"size"`
	Flavour   string              `json:"flavour"`
	Sides     map[string][]string `json:"sides"`
	Additions []string            `json:"additions"`
	Quantity  int                 `json:"quantity"`
}

// --------------------------------------------------
// Add one entry
// --------------------------------------------------
func (h *Handler) AddItem(c *gin.Context) {
	userID := c.GetString("userID")

	var req addRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	item, opts, err := h.catalog.GetItemOptions(c.Request.Context(), req.Slug)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
		return
	}

	state := buildState(opts, &req)

	result, err := h.service.AttemptAdd(
		c.Request.Context(),
		userID,
		&Item{Name: item.Name, DetailURL: item.DetailURL, Options: opts},
		state,
	)
	if err != nil {
		var vf *ValidationFailure
		if errors.As(err, &vf) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": vf.Message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if result.RedirectURL != "" {
		c.JSON(http.StatusOK, gin.H{"redirect": result.RedirectURL})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"entry": result.Entry})
}

// --------------------------------------------------
// Read / remove / clear
// --------------------------------------------------
func (h *Handler) GetCart(c *gin.Context) {
	userID := c.GetString("userID")

	entries, total, err := h.repo.Get(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": total})
}

func (h *Handler) RemoveEntry(c *gin.Context) {
	userID := c.GetString("userID")
	entryID := c.Param("id")

	if err := h.repo.Remove(c.Request.Context(), userID, entryID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"removed": entryID})
}

func (h *Handler) ClearCart(c *gin.Context) {
	userID := c.GetString("userID")

	if err := h.repo.Clear(c.Request.Context(), userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": true})
}

// buildState replays a submission through the selection rules.
// Over-cap side picks are dropped the same way the cards drop them:
// silently, leaving the rest of the selection intact.
func buildState(opts *catalog.ItemOptions, req *addRequest) *selection.State {
	state := selection.New(opts)

	if req.Size != "" {
		state.SetSize(req.Size)
	}
	if req.Flavour != "" {
		state.SetFlavour(req.Flavour)
	}

	for _, cat := range opts.SideCategories {
		for _, name := range req.Sides[cat.CategoryName] {
			if cat.FindSide(name) == nil {
				continue
			}
			_ = state.ToggleSide(&cat, name)
		}
	}

	for _, name := range req.Additions {
		if opts.FindAddition(name) != nil {
			state.ToggleAddition(name)
		}
	}

	for i := 1; i < req.Quantity; i++ {
		state.IncrementQuantity()
	}
	return state
}
