package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer_NoBrokersDisabled(t *testing.T) {
	t.Parallel()

	assert.Nil(t, NewProducer(nil))
	assert.Nil(t, NewProducer([]string{}))
}

func TestNilProducer_IsNoOp(t *testing.T) {
	t.Parallel()

	var p *Producer
	require.NoError(t, p.Publish(context.Background(), TopicBookEvents, "key", map[string]any{"type": "book_created"}))
	require.NoError(t, p.Close())
}

func TestNewProducer_WriterDoesNotBatchForSeconds(t *testing.T) {
	t.Parallel()

	p := NewProducer([]string{"broker:9092"})
	require.NotNil(t, p)

	assert.LessOrEqual(t, p.writer.BatchTimeout, 100*time.Millisecond)
	assert.True(t, p.writer.AllowAutoTopicCreation)

	require.NoError(t, p.Close())
}
