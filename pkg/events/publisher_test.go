package events

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	topics []string
	keys   []string
	events []any
	err    error
}

func (r *recorder) Publish(_ context.Context, topic, key string, event any) error {
	r.topics = append(r.topics, topic)
	r.keys = append(r.keys, key)
	r.events = append(r.events, event)
	return r.err
}

func (r *recorder) Close() error { return nil }

func TestNew_WithoutBrokersIsNop(t *testing.T) {
	p := New(nil)
	assert.IsType(t, Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), "user_events", "alice", struct{}{}))
	assert.NoError(t, p.Close())
}

func TestNew_WithBrokers(t *testing.T) {
	p := New([]string{"kafka:9092"})
	kp, ok := p.(*KafkaPublisher)
	require.True(t, ok)
	assert.Equal(t, "kafka:9092", kp.writer.Addr.String())
}

func TestEmit(t *testing.T) {
	rec := &recorder{}
	ev := NewEvent("user_registered", "alice", map[string]string{"role": "USER"})

	Emit(context.Background(), rec, "user_events", ev)

	require.Len(t, rec.events, 1)
	assert.Equal(t, "user_events", rec.topics[0])
	assert.Equal(t, "alice", rec.keys[0])
	assert.Equal(t, ev, rec.events[0])
}

func TestEmit_SwallowsErrors(t *testing.T) {
	rec := &recorder{err: errors.New("broker down")}

	assert.NotPanics(t, func() {
		Emit(context.Background(), rec, "user_events", NewEvent("user_logged_in", "alice", nil))
		Emit(context.Background(), nil, "user_events", NewEvent("user_logged_in", "alice", nil))
	})
	assert.Len(t, rec.events, 1)
}
