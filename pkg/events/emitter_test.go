package events_test

import (
	"errors"
	"testing"

	"github.com/aretw0/soul/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmitter_OnTriggerOrder(t *testing.T) {
	var em events.Emitter
	var calls []string

	em.On("change", func(args ...any) error {
		calls = append(calls, "first")
		return nil
	})
	em.On("change", func(args ...any) error {
		calls = append(calls, "second")
		return nil
	})

	require.NoError(t, em.Trigger("change"))
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestEmitter_PassesArguments(t *testing.T) {
	var em events.Emitter
	var got []any

	em.On("change", func(args ...any) error {
		got = args
		return nil
	})

	require.NoError(t, em.Trigger("change", 1, "two", nil))
	assert.Equal(t, []any{1, "two", nil}, got)
}

func TestEmitter_BoundArgumentsComeFirst(t *testing.T) {
	var em events.Emitter
	var got []any

	em.On("change", func(args ...any) error {
		got = args
		return nil
	}, events.WithArgs("child"))

	require.NoError(t, em.Trigger("change", "old", "new"))
	assert.Equal(t, []any{"child", "old", "new"}, got)

	// Bound args must not accumulate across triggers.
	require.NoError(t, em.Trigger("change", "x"))
	assert.Equal(t, []any{"child", "x"}, got)
}

func TestEmitter_Once(t *testing.T) {
	var em events.Emitter
	count := 0

	em.Once("add", func(args ...any) error {
		count++
		return nil
	})

	require.NoError(t, em.Trigger("add"))
	require.NoError(t, em.Trigger("add"))
	assert.Equal(t, 1, count)
	assert.Equal(t, 0, em.ListenerCount("add"))
}

func TestEmitter_OnceReentrant(t *testing.T) {
	var em events.Emitter
	count := 0

	em.Once("tick", func(args ...any) error {
		count++
		return em.Trigger("tick")
	})

	require.NoError(t, em.Trigger("tick"))
	assert.Equal(t, 1, count)
}

func TestEmitter_Off(t *testing.T) {
	var em events.Emitter
	count := 0

	h := em.On("change", func(args ...any) error {
		count++
		return nil
	})
	em.Off("change", h)

	require.NoError(t, em.Trigger("change"))
	assert.Zero(t, count)
}

func TestEmitter_OffWithoutName(t *testing.T) {
	var em events.Emitter
	h := em.On("change", func(args ...any) error { return nil })
	em.On("other", func(args ...any) error { return nil })

	em.Off("", h)
	assert.Equal(t, 0, em.ListenerCount("change"))
	assert.Equal(t, 1, em.ListenerCount("other"))
}

func TestEmitter_OffContext(t *testing.T) {
	var em events.Emitter
	owner := &struct{ name string }{"owner"}
	other := &struct{ name string }{"other"}
	var calls []string

	em.On("change", func(args ...any) error {
		calls = append(calls, "owned")
		return nil
	}, events.WithContext(owner))
	em.On("remove", func(args ...any) error {
		calls = append(calls, "owned remove")
		return nil
	}, events.WithContext(owner))
	em.On("change", func(args ...any) error {
		calls = append(calls, "other")
		return nil
	}, events.WithContext(other))

	em.OffContext("change", owner)
	require.NoError(t, em.Trigger("change"))
	require.NoError(t, em.Trigger("remove"))
	assert.Equal(t, []string{"other", "owned remove"}, calls)

	em.OffContext("", owner)
	assert.Equal(t, 0, em.ListenerCount("remove"))
	assert.Equal(t, 1, em.ListenerCount("change"))
}

func TestEmitter_OffContext_NonComparable(t *testing.T) {
	var em events.Emitter
	owner := &struct{ name string }{"owner"}
	tags := map[string]string{"owner": "tags"}

	em.On("change", func(args ...any) error { return nil }, events.WithContext(tags))
	em.On("change", func(args ...any) error { return nil }, events.WithContext(owner))
	em.On("change", func(args ...any) error { return nil }, events.WithContext([]string{"a"}))

	assert.NotPanics(t, func() {
		em.OffContext("change", map[string]string{"owner": "tags"})
		em.OffContext("change", tags)
		em.OffContext("", []string{"a"})
	})
	assert.Equal(t, 3, em.ListenerCount("change"), "non-comparable contexts never match")

	assert.NotPanics(t, func() { em.OffContext("change", owner) })
	assert.Equal(t, 2, em.ListenerCount("change"))
}

func TestEmitter_Clear(t *testing.T) {
	var em events.Emitter
	em.On("a", func(args ...any) error { return nil })
	em.On("b", func(args ...any) error { return nil })

	em.Clear("a")
	assert.Equal(t, 0, em.ListenerCount("a"))
	assert.Equal(t, 1, em.ListenerCount("b"))

	em.Clear("")
	assert.Equal(t, 0, em.ListenerCount("b"))
}

func TestEmitter_ListenerErrorAbortsDelivery(t *testing.T) {
	var em events.Emitter
	boom := errors.New("boom")
	later := false

	em.On("change", func(args ...any) error { return boom })
	em.On("change", func(args ...any) error {
		later = true
		return nil
	})

	err := em.Trigger("change")
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)

	var lerr *events.ListenerError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, "change", lerr.Event)
	assert.False(t, later, "listeners after a failing one must not run")
}

func TestEmitter_SubscribeDuringTrigger(t *testing.T) {
	var em events.Emitter
	count := 0

	em.On("change", func(args ...any) error {
		em.On("change", func(args ...any) error {
			count++
			return nil
		})
		return nil
	})

	require.NoError(t, em.Trigger("change"))
	assert.Zero(t, count, "listener added during delivery must wait for the next trigger")
}

func TestEmitter_NilListenerIgnored(t *testing.T) {
	var em events.Emitter
	h := em.On("change", nil)
	assert.Zero(t, h)
	assert.Equal(t, 0, em.ListenerCount("change"))
}
