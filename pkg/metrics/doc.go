// Package metrics records schema processing outcomes in Prometheus.
//
// An Observer is passed to schemas with schema.WithObserver:
//
//	obs, err := metrics.New(prometheus.DefaultRegisterer)
//	if err != nil {
//		return err
//	}
//	signup := schema.MustNew("signup", schema.WithObserver(obs), schema.Fields(...))
//
// It exports three collectors:
//
//	formkit_fields_total{schema,field,outcome}     counter
//	formkit_results_total{schema,outcome}          counter, outcome is valid or invalid
//	formkit_process_duration_seconds{schema}       histogram
//
// Handler serves the registered metrics over HTTP.
package metrics
