package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/techstore/techstore-go/internal/middleware"
	"github.com/techstore/techstore-go/internal/model"
	"github.com/techstore/techstore-go/internal/service"
)

// CartHandler handles HTTP requests for cart operations. Every route is
// behind the JWT middleware; the identity comes from the request context.
type CartHandler struct {
	service *service.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(svc *service.CartService) *CartHandler {
	return &CartHandler{service: svc}
}

// HandleGetCart handles GET /api/cart requests.
func (h *CartHandler) HandleGetCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	items, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		slog.Error("cart listing failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, items)
}

// HandleAddToCart handles POST /api/cart/add requests.
func (h *CartHandler) HandleAddToCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.AddToCartRequest
	if !decodeBody(w, r, &req) {
		return
	}

	item, err := h.service.Add(r.Context(), identity.UserID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidQuantity):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrProductNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			slog.Error("cart add failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

// HandleUpdateQuantity handles PUT /api/cart/{productId} requests.
func (h *CartHandler) HandleUpdateQuantity(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid product id"))
		return
	}

	var req model.UpdateQuantityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.service.SetQuantity(r.Context(), identity.UserID, productID, req.Quantity); err != nil {
		slog.Error("cart update failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.AckResponse{Message: "cart updated"})
}

// HandleRemoveFromCart handles DELETE /api/cart/{productId} requests.
func (h *CartHandler) HandleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	productID, err := strconv.ParseInt(chi.URLParam(r, "productId"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid product id"))
		return
	}

	if err := h.service.Remove(r.Context(), identity.UserID, productID); err != nil {
		slog.Error("cart remove failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.AckResponse{Message: "item removed"})
}

// HandleClearCart handles DELETE /api/cart requests.
func (h *CartHandler) HandleClearCart(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	if err := h.service.ClearAll(r.Context(), identity.UserID); err != nil {
		slog.Error("cart clear failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.AckResponse{Message: "cart cleared"})
}
