package handler

import (
	"github.com/gin-gonic/gin"

	"invoiceqc/internal/domain"
	"invoiceqc/internal/validator"
)

// RulesHandler exposes the rule registry.
type RulesHandler struct{}

// NewRulesHandler creates a new RulesHandler.
func NewRulesHandler() *RulesHandler {
	return &RulesHandler{}
}

type ruleInfo struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type rulesResponse struct {
	TotalRules      int                   `json:"total_rules"`
	RulesByCategory map[string][]ruleInfo `json:"rules_by_category"`
}

// List handles GET /rules: the full rule registry grouped by category.
func (h *RulesHandler) List(c *gin.Context) {
	categories := []domain.RuleCategory{
		domain.CategoryCompleteness,
		domain.CategoryFormat,
		domain.CategoryBusiness,
		domain.CategoryAnomaly,
	}

	byCategory := make(map[string][]ruleInfo, len(categories))
	total := 0
	for _, cat := range categories {
		rules := validator.RulesByCategory(cat)
		if len(rules) == 0 {
			continue
		}
		infos := make([]ruleInfo, 0, len(rules))
		for _, r := range rules {
			infos = append(infos, ruleInfo{Code: r.Code, Description: r.Description})
		}
		byCategory[string(cat)] = infos
		total += len(rules)
	}

	RespondOK(c, rulesResponse{TotalRules: total, RulesByCategory: byCategory})
}
