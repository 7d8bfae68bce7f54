/*
Package observability exports Prometheus metrics for models.

A Recorder subscribes to the events of any events.Source and counts them per model label:

	rec, err := observability.NewRecorder(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	rec.Observe(set, "team")
	defer rec.Forget(set)

Metrics:

  - soul_events_total{model,event}: triggered change, add, remove and child:change events.
  - soul_changed_attributes_total{model}: attributes reported as changed by change events.
*/
package observability
