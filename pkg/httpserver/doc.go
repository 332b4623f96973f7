// Package httpserver exposes schemas as an HTTP validation service.
//
// NewHandler mounts the routes on a chi router:
//
//	GET  /healthz         liveness probe, answers "ALIVE"
//	GET  /schemas         names of the available schemas
//	GET  /schemas/{name}  field declarations of one schema
//	POST /schemas/{name}  processes the request input with the schema
//	GET  /metrics         Prometheus metrics, when WithMetrics is set
//
// The input of a POST is the query string merged with the body, which may be
// JSON, urlencoded or multipart form data. A valid input is answered with
// 200 and the typed value; an invalid one with 422 and the error tree:
//
//	{"valid": false, "errors": {"age": ["must be >= 0"], "address": {"city": ["is required"]}}}
//
// Server runs a handler until its context is cancelled, then shuts down
// gracefully:
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
//	defer stop()
//
//	srv := httpserver.NewFromConfig(cfg, httpserver.WithLogger(log))
//	err := srv.Run(ctx, httpserver.NewHandler(registry))
//
// Listen and shutdown failures wrap ErrStart and ErrShutdown.
package httpserver
