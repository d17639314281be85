// Package worker implements the rule worker lifecycle and Redis Streams integration.
//
// The worker reads data rows from a Redis stream through a consumer group,
// checks each row against a rule engine and publishes one result per row.
// Rows are carried in the message's "data" field:
//
//	{"row_id": "r-17", "data": {"k1": 12.5, "k2": 80}}
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(&redis.Options{...})
//	engine, _ := rules.NewFromRuleSet(ruleSet, rules.WithLogger(logger))
//
//	worker := worker.NewWorker(cfg, redisClient, engine, filter, collector, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop()
//
// The worker handles:
//   - Redis Streams subscription and consumer group management
//   - Row filtering with an optional CEL expression
//   - Rule result publishing
//   - Error reporting on the "<result stream>.errors" stream
//   - Graceful shutdown
//
// Health checks and metrics are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8082, redisClient, collector, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
