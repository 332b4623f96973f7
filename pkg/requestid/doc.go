// Package requestid tags every HTTP request with a correlation ID.
//
// Middleware reuses a well-formed ID sent by the client in the X-Request-ID
// header and generates a UUID otherwise. The ID is echoed in the response
// header and stored in the request context, where FromContext and Attr read
// it, so log records of one validation request can be grouped:
//
//	r := chi.NewRouter()
//	r.Use(requestid.Middleware())
//
//	log.InfoContext(ctx, "input rejected", requestid.Attr(ctx))
package requestid
