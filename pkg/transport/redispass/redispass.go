package redispass

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/io"
	"github.com/matzehuels/framescope/pkg/recorder"
)

// NewClient connects to the Redis server at addr and verifies the
// connection with a PING, retrying briefly while the server starts.
func NewClient(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	err := retry(ctx, connectAttempts, connectDelay, func() error {
		return retryable(client.Ping(ctx).Err())
	})
	if err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect redis %s", addr)
	}
	return client, nil
}

// =============================================================================
// Publisher
// =============================================================================

// Publisher sends passes to a channel.
type Publisher struct {
	Logger *log.Logger

	client  redis.UniversalClient
	channel string
}

// NewPublisher creates a publisher for channel.
// If logger is nil, log.Default() is used.
func NewPublisher(client redis.UniversalClient, channel string, logger *log.Logger) *Publisher {
	if logger == nil {
		logger = log.Default()
	}
	return &Publisher{Logger: logger, client: client, channel: channel}
}

// Publish encodes f and publishes it. It returns the number of subscribers
// that received the message.
func (p *Publisher) Publish(ctx context.Context, f io.Frames) (int64, error) {
	if err := f.Validate(); err != nil {
		return 0, err
	}
	data, err := io.EncodeFrames(f)
	if err != nil {
		return 0, err
	}
	n, err := p.client.Publish(ctx, p.channel, data).Result()
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeNetwork, err, "publish to %s", p.channel)
	}
	p.Logger.Debug("published pass", "channel", p.channel, "nodes", len(f.Nodes), "receivers", n)
	return n, nil
}

// =============================================================================
// Subscriber
// =============================================================================

// Subscriber feeds passes received on a channel into a recorder.
type Subscriber struct {
	Logger *log.Logger

	client  redis.UniversalClient
	channel string
	rec     *recorder.Recorder

	// OnFrames, when set, is called with every decoded pass before it is
	// published. The CLI uses it to track the host viewport.
	OnFrames func(io.Frames)
}

// NewSubscriber creates a subscriber that publishes into rec.
// If logger is nil, log.Default() is used.
func NewSubscriber(client redis.UniversalClient, channel string, rec *recorder.Recorder, logger *log.Logger) *Subscriber {
	if logger == nil {
		logger = log.Default()
	}
	return &Subscriber{Logger: logger, client: client, channel: channel, rec: rec}
}

// Run subscribes and handles messages until ctx is cancelled. It returns nil
// on cancellation and a NETWORK_ERROR if the subscription cannot be set up.
func (s *Subscriber) Run(ctx context.Context) error {
	ps := s.client.Subscribe(ctx, s.channel)
	defer ps.Close()

	// Receive blocks until the server confirms the subscription.
	if _, err := ps.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "subscribe %s", s.channel)
	}
	s.Logger.Info("subscribed", "channel", s.channel)

	ch := ps.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			s.handle(ctx, []byte(msg.Payload))
		}
	}
}

// handle decodes one message and publishes it. It reports whether the
// message produced a pass: undecodable messages and messages arriving while
// recording is disabled do not.
func (s *Subscriber) handle(ctx context.Context, payload []byte) bool {
	f, err := io.DecodeFrames(payload)
	if err != nil {
		s.Logger.Warn("dropping pass", "channel", s.channel, "err", err)
		return false
	}
	if !s.rec.Enabled() {
		s.Logger.Debug("dropping pass, inspection disabled", "channel", s.channel)
		return false
	}
	if s.OnFrames != nil {
		s.OnFrames(f)
	}
	s.rec.Publish(ctx, f.Set().Nodes())
	return true
}
