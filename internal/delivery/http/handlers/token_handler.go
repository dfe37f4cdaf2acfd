package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	tokenResponse "github.com/IGIHOZO/egura-negotiation-service/internal/delivery/http/dto/token/response"
	"github.com/IGIHOZO/egura-negotiation-service/internal/usecase"
)

type TokenHandler struct {
	uc usecase.TokenUsecase
}

func NewTokenHandler(uc usecase.TokenUsecase) *TokenHandler {
	return &TokenHandler{uc: uc}
}

// ValidateToken handles GET /negotiation/tokens/:token. Checkout calls this
// to preview the locked-in price before committing an order.
func (h *TokenHandler) ValidateToken(c *gin.Context) {
	token, err := h.uc.Validate(c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, tokenResponse.FromToken(token))
}

// RedeemToken handles POST /negotiation/tokens/:token/redeem. Redemption is
// atomic; a second call for the same token gets 409.
func (h *TokenHandler) RedeemToken(c *gin.Context) {
	if err := h.uc.Redeem(c.Param("token")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "token redeemed"})
}
