// Package cel provides a CEL (Common Expression Language) row filter.
//
// A filter decides whether a data row is evaluated by the rule engine at all.
// The row is exposed to the expression as the variable "row", a map from
// data key to double.
//
// Example usage:
//
//	filter, err := cel.NewFilter(`row.k1 > 0.0 && "k2" in row`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	matched, err := filter.Match(ctx, map[string]float64{"k1": 3, "k2": 1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// matched == true
//
// Numbers in CEL are typed: compare doubles with double literals (0.0, not 0).
// An empty expression builds a filter that matches every row.
package cel
