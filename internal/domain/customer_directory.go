package domain

// CustomerDirectory is the storefront-side collaborator that knows a
// customer's purchase history. The negotiation engine only needs the
// lifetime purchase count to classify a segment.
type CustomerDirectory interface {
	PurchaseCount(userID string) (int, error)
}

// StaticCustomerDirectory answers a fixed purchase count for every
// customer. Used until the storefront customer service is wired in, and
// as the test double default: count 0 classifies everyone as new.
type StaticCustomerDirectory struct {
	Count int
}

func (d *StaticCustomerDirectory) PurchaseCount(string) (int, error) {
	return d.Count, nil
}
