// Package binder extracts the raw input mapping (schema.Data) that a schema
// processes from an *http.Request.
//
// Each binder reads one source: Form for urlencoded and multipart bodies,
// Query for the URL query string, JSON for JSON object bodies and Path for
// router path parameters. Bind runs several binders and merges their output,
// later binders overwriting earlier ones:
//
//	data, err := binder.Bind(r,
//	    binder.Path(chi.URLParam, "id"),
//	    binder.Query(),
//	    binder.Form(),
//	)
//	if err != nil {
//	    http.Error(w, err.Error(), http.StatusBadRequest)
//	    return
//	}
//	res := signup.Process(data)
//
// Single-valued form and query keys become strings; repeated keys become
// []any of strings, which is what converter.Slice expects. Uploaded files
// become *multipart.FileHeader values (or []any of them). JSON numbers are
// kept as json.Number so integer conversion stays exact.
//
// Binders never convert or validate values; that is the schema's job.
package binder
