package entity

// KPI counter names tracked per tenant.
const (
	KpiTotalAISpend        = "Total AI API spend"
	KpiTotalTextInputTokens  = "Total text input tokens"
	KpiTotalTextOutputTokens = "Total text output tokens"
)

// KpiNames lists all tracked KPI counters.
var KpiNames = []string{
	KpiTotalAISpend,
	KpiTotalTextInputTokens,
	KpiTotalTextOutputTokens,
}
