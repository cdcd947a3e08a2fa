package validator

// Statistics is a snapshot of the engine's cumulative counters. Counters
// live only for the lifetime of the engine instance; they are never
// persisted.
type Statistics struct {
	QueriesValidated    int            `json:"queries_validated" yaml:"queries_validated"`
	QueriesPassed       int            `json:"queries_passed" yaml:"queries_passed"`
	QueriesFailed       int            `json:"queries_failed" yaml:"queries_failed"`
	PassRate            float64        `json:"pass_rate" yaml:"pass_rate"`
	SecurityViolations  int            `json:"security_violations" yaml:"security_violations"`
	SyntaxErrors        int            `json:"syntax_errors" yaml:"syntax_errors"`
	PerformanceWarnings int            `json:"performance_warnings" yaml:"performance_warnings"`
	ChecksFailed        map[string]int `json:"checks_failed" yaml:"checks_failed"`
}

// Statistics returns a copy of the current counters. PassRate is a
// percentage in [0, 100].
func (e *Engine) Statistics() Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()

	failed := make(map[string]int, len(e.stats.checksFailed))
	for name, count := range e.stats.checksFailed {
		failed[name] = count
	}

	rate := 0.0
	if e.stats.queriesValidated > 0 {
		rate = float64(e.stats.queriesPassed) / float64(e.stats.queriesValidated) * 100
	}

	return Statistics{
		QueriesValidated:    e.stats.queriesValidated,
		QueriesPassed:       e.stats.queriesPassed,
		QueriesFailed:       e.stats.queriesFailed,
		PassRate:            rate,
		SecurityViolations:  e.stats.securityViolations,
		SyntaxErrors:        e.stats.syntaxErrors,
		PerformanceWarnings: e.stats.performanceWarnings,
		ChecksFailed:        failed,
	}
}

// ResetStatistics zeroes all counters atomically.
func (e *Engine) ResetStatistics() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats = counters{checksFailed: make(map[string]int)}
}
