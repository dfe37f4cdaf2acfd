package request

type OfferRequest struct {
	SKU        string  `json:"sku" binding:"required"`
	UserID     string  `json:"user_id" binding:"required"`
	OfferPrice float64 `json:"offer_price" binding:"required"`
	Quantity   int     `json:"quantity"`
	SessionID  string  `json:"session_id"`
	Language   string  `json:"language"`
}
