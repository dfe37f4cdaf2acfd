package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	negotiationRequest "github.com/IGIHOZO/egura-negotiation-service/internal/delivery/http/dto/negotiation/request"
	negotiationResponse "github.com/IGIHOZO/egura-negotiation-service/internal/delivery/http/dto/negotiation/response"
	"github.com/IGIHOZO/egura-negotiation-service/internal/usecase/negotiation"
	negotiationdto "github.com/IGIHOZO/egura-negotiation-service/internal/usecase/dto/negotiation"
)

type NegotiationHandler struct {
	uc negotiation.NegotiationUsecase
}

func NewNegotiationHandler(uc negotiation.NegotiationUsecase) *NegotiationHandler {
	return &NegotiationHandler{uc: uc}
}

// SubmitOffer handles POST /negotiation/offer.
func (h *NegotiationHandler) SubmitOffer(c *gin.Context) {
	var req negotiationRequest.OfferRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	output, err := h.uc.SubmitOffer(&negotiationdto.SubmitOfferInput{
		SKU:        req.SKU,
		UserID:     req.UserID,
		OfferPrice: req.OfferPrice,
		Quantity:   req.Quantity,
		SessionID:  req.SessionID,
		Language:   req.Language,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, negotiationResponse.FromOfferOutput(output))
}

// GetSession handles GET /negotiation/sessions/:id.
func (h *NegotiationHandler) GetSession(c *gin.Context) {
	session, err := h.uc.GetSession(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, negotiationResponse.FromSession(session))
}
