package models

// AddCartItemRequest is the body of POST /checkout/sessions/:id/items.
type AddCartItemRequest struct {
	ProductID string `json:"productId" binding:"required" example:"1"`
}

// UpdateCartItemRequest is the body of PATCH /checkout/sessions/:id/items/:productId.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=5" example:"2"`
}

type SelectMethodRequest struct {
	Method string `json:"method" binding:"required" example:"mobile-money"`
}
