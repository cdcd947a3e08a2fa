package validator

import (
	"github.com/queryguard/queryguard/pkg/types"
)

// mediumRiskWarningThreshold is the warning count above which an otherwise
// clean query is classified as medium risk.
const mediumRiskWarningThreshold = 3

// ClassifyRisk maps accumulated diagnostics to a risk tier. Pure function:
// high iff any security issue or error was recorded, medium iff more than
// three warnings accumulated, low otherwise.
func ClassifyRisk(result *types.ValidationResult) types.RiskLevel {
	if len(result.SecurityIssues) > 0 || len(result.Errors) > 0 {
		return types.RiskHigh
	}
	if len(result.Warnings) > mediumRiskWarningThreshold {
		return types.RiskMedium
	}
	return types.RiskLow
}
