package observability_test

import (
	"strings"
	"testing"

	"github.com/aretw0/soul/pkg/model"
	"github.com/aretw0/soul/pkg/observability"
	"github.com/aretw0/soul/pkg/soulset"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// eventCount reads soul_events_total for the given labels, 0 when absent.
func eventCount(t *testing.T, reg *prometheus.Registry, modelName, event string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, mf := range families {
		if mf.GetName() != "soul_events_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["model"] == modelName && labels["event"] == event {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func TestRecorder_CountsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := observability.NewRecorder(reg)
	require.NoError(t, err)

	soul, err := model.New(model.Attributes{"name": "John"})
	require.NoError(t, err)
	set, err := soulset.New(nil)
	require.NoError(t, err)

	rec.Observe(soul, "person")
	rec.Observe(set, "team")

	require.NoError(t, soul.Set(model.Attributes{"name": "Jack", "age": 42}))
	require.NoError(t, set.Add(soul))
	require.NoError(t, soul.SetKey("age", 43))
	require.NoError(t, set.Remove(soul))

	assert.Equal(t, 2.0, eventCount(t, reg, "person", model.EventChange))
	assert.Equal(t, 1.0, eventCount(t, reg, "team", soulset.EventAdd))
	assert.Equal(t, 1.0, eventCount(t, reg, "team", soulset.EventRemove))
	assert.Equal(t, 1.0, eventCount(t, reg, "team", soulset.EventChildChange))
	assert.Equal(t, 0.0, eventCount(t, reg, "team", model.EventChange))
}

func TestRecorder_ChangedAttributes(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := observability.NewRecorder(reg, observability.WithNamespace("test"))
	require.NoError(t, err)

	soul, err := model.New(nil)
	require.NoError(t, err)
	rec.Observe(soul, "person")

	require.NoError(t, soul.Set(model.Attributes{"name": "John", "age": 42}))
	require.NoError(t, soul.Set(model.Attributes{"name": "John", "age": 43}))

	expected := `
# HELP test_changed_attributes_total Total number of attributes reported as changed
# TYPE test_changed_attributes_total counter
test_changed_attributes_total{model="person"} 3
`
	err = testutil.GatherAndCompare(reg, strings.NewReader(expected), "test_changed_attributes_total")
	require.NoError(t, err)
}

func TestRecorder_Forget(t *testing.T) {
	reg := prometheus.NewRegistry()
	rec, err := observability.NewRecorder(reg)
	require.NoError(t, err)

	soul, err := model.New(nil)
	require.NoError(t, err)
	rec.Observe(soul, "person")
	rec.Forget(soul)

	require.NoError(t, soul.SetKey("name", "John"))
	assert.Equal(t, 0, soul.ListenerCount(model.EventChange))
	assert.Equal(t, 0.0, eventCount(t, reg, "person", model.EventChange))
}

func TestNewRecorder_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := observability.NewRecorder(reg)
	require.NoError(t, err)
	second, err := observability.NewRecorder(reg)
	require.NoError(t, err)

	soul, err := model.New(nil)
	require.NoError(t, err)
	first.Observe(soul, "person")
	second.Observe(soul, "person")

	require.NoError(t, soul.SetKey("name", "John"))
	assert.Equal(t, 2.0, eventCount(t, reg, "person", model.EventChange))
}
