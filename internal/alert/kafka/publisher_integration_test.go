//go:build integration

package kafka

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"

	"safeher/internal/alert"
	"safeher/pkg/testutil/containers"
)

func TestPublisherAgainstRedpanda(t *testing.T) {
	broker := containers.NewRedpandaContainer(t)
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := NewClient([]string{broker.Broker}, "safeher-test", "safety")
	require.NoError(t, err)
	defer client.Close()
	require.NoError(t, EnsureTopic(ctx, client, "safety"))
	require.NoError(t, EnsureTopic(ctx, client, "safety"), "second call must be a no-op")

	p, err := New(client, "safety")
	require.NoError(t, err)
	sent := newAlert()
	require.NoError(t, p.Publish(ctx, sent))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(broker.Broker),
		kgo.ConsumeTopics("safety"),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	require.NoError(t, err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	require.NoError(t, fetches.Err())
	records := fetches.Records()
	require.NotEmpty(t, records)

	var got alert.Alert
	require.NoError(t, json.Unmarshal(records[0].Value, &got))
	assert.Equal(t, sent.ID, got.ID)
	assert.Equal(t, alert.KindSOS, got.Kind)
}
