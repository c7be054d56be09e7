package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tm-acme-shop/acme-shop-storefront/internal/notify"
)

func (h *Handlers) wishlistBody() gin.H {
	items := h.storefront.Wishlist.Items()
	return gin.H{
		"items": items,
		"count": len(items),
	}
}

// GetWishlist handles GET /api/v1/wishlist
func (h *Handlers) GetWishlist(c *gin.Context) {
	c.JSON(http.StatusOK, h.wishlistBody())
}

// ToggleWishlist handles POST /api/v1/wishlist/:id/toggle
func (h *Handlers) ToggleWishlist(c *gin.Context) {
	rec := notify.NewRecorder()
	added, err := h.storefront.ToggleWishlist(c.Request.Context(), rec, c.Param("id"))
	if err != nil && !isPersist(err) {
		handleError(c, err)
		return
	}

	body := h.wishlistBody()
	body["added"] = added
	body["notifications"] = rec.Messages()
	respond(c, http.StatusOK, body, err)
}

// RemoveWishlistItem handles DELETE /api/v1/wishlist/:id
func (h *Handlers) RemoveWishlistItem(c *gin.Context) {
	found, err := h.storefront.Wishlist.Remove(c.Request.Context(), c.Param("id"))
	if !found && err == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "wishlist item not found"})
		return
	}
	respond(c, http.StatusOK, h.wishlistBody(), err)
}
