// Package template provides a Handlebars template engine for rendering rule
// results.
//
// The batch driver renders one line per data row with the fields:
//
//	line     - 1-based line number in the dataset
//	results  - one boolean per rule, in rule order
//	matched  - number of rules that evaluated to true
//	total    - number of rules
//	row      - the data row as decoded from the dataset
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	out, err := engine.Render(`{{line}}: [{{join results ", "}}]`, map[string]interface{}{
//	    "line":    1,
//	    "results": []interface{}{true, false},
//	})
//	// out == "1: [true, false]"
//
// Built-in helpers:
//   - join - Join array elements with separator
//   - passfail - Render a boolean as PASS or FAIL
//   - uppercase - Convert string to uppercase
//   - lowercase - Convert string to lowercase
//   - default - Return default value if first arg is empty
package template
