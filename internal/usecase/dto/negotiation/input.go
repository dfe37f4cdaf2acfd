package negotiationdto

type SubmitOfferInput struct {
	SKU        string
	UserID     string
	OfferPrice float64
	Quantity   int
	SessionID  string
	Language   string
}
