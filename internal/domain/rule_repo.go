package domain

type RuleRepository interface {
	GetRuleBySKU(sku string) (*NegotiationRule, error)
	ListRules(enabledOnly bool) ([]*NegotiationRule, error)
	UpsertRule(rule *NegotiationRule) error
	DeleteRule(sku string) error
}
