package handlers

import (
	"errors"
	"net/http"

	"oesters_backend/internal/models"
	"oesters_backend/internal/services"
	"oesters_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// SessionIDHeader identifies the anonymous browsing session that owns a cart.
const SessionIDHeader = "X-Session-ID"

// CartHandler exposes the session cart over HTTP. Every route requires the
// session header; carts are never shared between sessions.
type CartHandler struct {
	cartService services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(cs services.CartService) *CartHandler {
	return &CartHandler{cartService: cs}
}

func sessionID(c *gin.Context) (string, bool) {
	id := c.GetHeader(SessionIDHeader)
	if utils.IsEmpty(id) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Missing "+SessionIDHeader+" header.", "A session identifier is required for cart operations"))
		return "", false
	}
	return id, true
}

func respondCart(c *gin.Context, cart *models.Cart) {
	c.JSON(http.StatusOK, gin.H{
		"cart":       cart,
		"total":      cart.Total(),
		"item_count": cart.Count(),
	})
}

// GetCart returns the session's cart with its aggregates.
func (h *CartHandler) GetCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.GetCart(sid)
	if err != nil {
		utils.LogError(err, "GetCart: Error from cartService.GetCart")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load cart.", "Internal error"))
		return
	}
	respondCart(c, cart)
}

type addToCartRequest struct {
	ItemID  string                  `json:"item_id" binding:"required"`
	Options models.SelectionOptions `json:"options"`
}

// AddToCart prices the selection and merges the resulting lines into the cart.
func (h *CartHandler) AddToCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	cart, err := h.cartService.AddToCart(sid, req.ItemID, req.Options)
	if err != nil {
		if errors.Is(err, services.ErrMenuItemNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Menu item not found.", err.Error()))
			return
		}
		if errors.Is(err, services.ErrItemOutOfStock) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "This item is currently out of stock.", err.Error()))
			return
		}
		utils.LogError(err, "AddToCart: Error from cartService.AddToCart")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to add item to cart.", "Internal error"))
		return
	}
	respondCart(c, cart)
}

// DecrementLine lowers a line's quantity by one. Lines already at quantity 1
// are left as-is; removal goes through DeleteLine.
func (h *CartHandler) DecrementLine(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.Decrement(sid, c.Param("lineId"))
	if err != nil {
		utils.LogError(err, "DecrementLine: Error from cartService.Decrement")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update cart.", "Internal error"))
		return
	}
	respondCart(c, cart)
}

// DeleteLine removes a line entirely regardless of its quantity.
func (h *CartHandler) DeleteLine(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	cart, err := h.cartService.DeleteLine(sid, c.Param("lineId"))
	if err != nil {
		utils.LogError(err, "DeleteLine: Error from cartService.DeleteLine")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update cart.", "Internal error"))
		return
	}
	respondCart(c, cart)
}

// ClearCart empties the session's cart.
func (h *CartHandler) ClearCart(c *gin.Context) {
	sid, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.cartService.ClearCart(sid); err != nil {
		utils.LogError(err, "ClearCart: Error from cartService.ClearCart")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to clear cart.", "Internal error"))
		return
	}
	respondCart(c, &models.Cart{Lines: []models.CartLine{}})
}
