// Package rules implements the rule engine: a fixed list of rules compiled
// once against an ordered list of data keys, then checked against any number
// of data rows.
//
// Example usage:
//
//	engine, err := rules.New(
//	    []string{"{0} + {1} > 100", "{2} == 0 || !{0}"},
//	    []string{"k1", "k2", "k3"},
//	    rules.WithLogger(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := engine.Check(map[string]float64{"k1": 60, "k2": 50, "k3": 1})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(results) // [true false]
//
// Rule sets are usually loaded from a JSON or YAML file shaped like:
//
//	{"data_keys": ["k1", "k2", "k3"], "rules": ["{0} + {1} > 100"]}
//
// An Engine is immutable after New returns and Check may be called from
// many goroutines at once.
package rules
