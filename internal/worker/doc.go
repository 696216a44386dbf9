// Package worker implements the render worker lifecycle and Redis Streams integration.
//
// The worker reads render requests from a Redis stream, renders them against the stored
// execution state, and publishes results back to the orchestrator. Failed requests are
// reported on the "<result stream>.errors" stream.
//
// A request message carries a JSON document in its "data" field:
//
//	{
//	  "render_id": "optional, generated when empty",
//	  "execution_id": "state to render against",
//	  "template": "{{#forEach items}}{{name}}\n{{/forEach}}",
//	  "data": {"items": [{"name": "a"}]},
//	  "mode": "template"
//	}
//
// Example usage:
//
//	cfg, _ := config.Load()
//	redisClient := redis.NewClient(cfg.RedisOptions())
//	renderer := render.NewRenderer(engine, llmClient, cfg.LLMModel, cfg.LLMMaxTokens, logger)
//
//	worker := worker.NewWorker(cfg, redisClient, renderer, stateStore, logger)
//	if err := worker.Start(); err != nil {
//	    log.Fatal(err)
//	}
//	defer worker.Stop(5 * time.Second)
//
// Health checks are provided via a separate HTTP server:
//
//	healthServer := worker.NewHealthServer(8083, redisClient, logger)
//	healthServer.Start()
//	defer healthServer.Stop()
package worker
