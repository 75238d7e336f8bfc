package model

// CartItem represents one cart line item: a (user, product) pair with a
// positive quantity. At most one row exists per pair.
type CartItem struct {
	ID        int64 `json:"id"`
	UserID    int64 `json:"userId"`
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CartItemWithProduct is a cart line item hydrated with its referenced product.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// AddToCartRequest represents a request to add a product to the cart.
// Quantity omitted or zero defaults to one.
type AddToCartRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateQuantityRequest represents a request to set a line item's quantity.
// Zero or negative quantity removes the line item.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// AckResponse is a minimal confirmation body for mutations without a payload.
type AckResponse struct {
	Message string `json:"message"`
}
