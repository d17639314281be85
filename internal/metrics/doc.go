// Package metrics provides Prometheus metrics for the rule worker.
//
// Metrics:
//   - <namespace>_rows_total{status}: rows received, by outcome
//     (evaluated, filtered, failed)
//   - <namespace>_rule_matches_total{rule}: rows for which a rule was true
//   - <namespace>_evaluation_duration_seconds: time spent checking one row
//
// Example:
//
//	collector := metrics.NewCollector("rules", nil)
//	http.Handle("/metrics", collector.Handler())
//
//	start := time.Now()
//	results, err := engine.Check(row)
//	collector.RecordEvaluation(results, time.Since(start), err)
package metrics
