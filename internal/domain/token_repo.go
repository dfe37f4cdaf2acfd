package domain

import "time"

type TokenRepository interface {
	CreateToken(token *DiscountToken) error
	GetToken(token string) (*DiscountToken, error)
	// RedeemToken atomically flips redeemed=false to true for a
	// non-expired token. Exactly one concurrent caller wins; the rest
	// get ErrTokenRedeemed or ErrTokenExpired.
	RedeemToken(token string, now time.Time) error
	DeleteExpired(now time.Time) (int64, error)
}
