// Package batch runs a rule engine over a line-oriented dataset.
//
// Each non-blank line of the dataset is one JSON object mapping data keys to
// numbers. Fields that are not declared data keys may hold anything:
//
//	{"k1": 12.5, "k2": 80, "k3": 3, "id": "row-1"}
//	{"k1": 0, "k2": 1, "k3": 7}
//
// Rows are independent: a row that fails to decode or evaluate is logged and
// counted, and the run continues with the next line.
//
// Example usage:
//
//	runner, err := batch.NewRunner(engine, batch.WithLogger(logger))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := runner.Run(ctx, dataset, os.Stdout)
package batch
