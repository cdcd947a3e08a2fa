package optimizer

// Statistics is a snapshot of the engine's cumulative counters. Counters
// live only for the lifetime of the engine instance; they are never
// persisted.
type Statistics struct {
	QueriesOptimized     int            `json:"queries_optimized" yaml:"queries_optimized"`
	TotalOptimizations   int            `json:"total_optimizations" yaml:"total_optimizations"`
	AverageOptimizations float64        `json:"average_optimizations" yaml:"average_optimizations"`
	RulesApplied         map[string]int `json:"rules_applied" yaml:"rules_applied"`
	MostUsedRule         string         `json:"most_used_rule" yaml:"most_used_rule"`
}

// Statistics returns a copy of the current counters.
func (e *Engine) Statistics() Statistics {
	e.mu.Lock()
	defer e.mu.Unlock()

	applied := make(map[string]int, len(e.stats.rulesApplied))
	mostUsed := ""
	best := 0
	for name, count := range e.stats.rulesApplied {
		applied[name] = count
		// Ties break lexicographically so the snapshot is deterministic.
		if count > best || (count == best && best > 0 && name < mostUsed) {
			mostUsed = name
			best = count
		}
	}

	avg := 0.0
	if e.stats.queriesOptimized > 0 {
		avg = float64(e.stats.totalOptimizations) / float64(e.stats.queriesOptimized)
	}

	return Statistics{
		QueriesOptimized:     e.stats.queriesOptimized,
		TotalOptimizations:   e.stats.totalOptimizations,
		AverageOptimizations: avg,
		RulesApplied:         applied,
		MostUsedRule:         mostUsed,
	}
}

// ResetStatistics zeroes all counters atomically.
func (e *Engine) ResetStatistics() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stats = counters{rulesApplied: make(map[string]int)}
}
