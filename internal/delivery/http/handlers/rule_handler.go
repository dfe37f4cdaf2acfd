package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	ruleRequest "github.com/IGIHOZO/egura-negotiation-service/internal/delivery/http/dto/rule/request"
	ruleResponse "github.com/IGIHOZO/egura-negotiation-service/internal/delivery/http/dto/rule/response"
	"github.com/IGIHOZO/egura-negotiation-service/internal/usecase"
)

type RuleHandler struct {
	uc usecase.RuleUsecase
}

func NewRuleHandler(uc usecase.RuleUsecase) *RuleHandler {
	return &RuleHandler{uc: uc}
}

// ListEnabled handles GET /negotiation/rules, the storefront-facing list.
// Disabled rules are not exposed here.
func (h *RuleHandler) ListEnabled(c *gin.Context) {
	rules, err := h.uc.ListRules(true)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rules": ruleResponse.FromRules(rules),
		"count": len(rules),
	})
}

// GetRule handles GET /negotiation/rules/:sku.
func (h *RuleHandler) GetRule(c *gin.Context) {
	rule, err := h.uc.GetRule(c.Param("sku"))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ruleResponse.FromRule(rule))
}

// ListAll handles GET /negotiation/admin/rules, including disabled rules.
func (h *RuleHandler) ListAll(c *gin.Context) {
	rules, err := h.uc.ListRules(false)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rules": ruleResponse.FromRules(rules),
		"count": len(rules),
	})
}

// UpsertRule handles POST /negotiation/admin/rules. Create and update are
// the same operation keyed by SKU.
func (h *RuleHandler) UpsertRule(c *gin.Context) {
	var req ruleRequest.UpsertRuleRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rule := req.ToDomain()
	if err := h.uc.UpsertRule(rule); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ruleResponse.FromRule(rule))
}

// DeleteRule handles DELETE /negotiation/admin/rules/:sku. Rules with
// active sessions are refused with 409.
func (h *RuleHandler) DeleteRule(c *gin.Context) {
	if err := h.uc.DeleteRule(c.Param("sku")); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "rule deleted"})
}
