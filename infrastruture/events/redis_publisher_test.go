package events

import (
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	logger "github.com/beka-birhanu/vinom-maze/infrastruture/log"
	"github.com/beka-birhanu/vinom-maze/maze"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type RedisPublisherSuite struct {
	suite.Suite
	server    *miniredis.Miniredis
	client    *redis.Client
	publisher i.Publisher
}

func (s *RedisPublisherSuite) SetupTest() {
	s.server = miniredis.RunT(s.T())
	s.client = redis.NewClient(&redis.Options{Addr: s.server.Addr()})

	l, err := logger.New("EVENTS", "", io.Discard)
	s.Require().NoError(err)

	s.publisher, err = NewRedisPublisher(s.client, "maze:events", l)
	s.Require().NoError(err)
}

func (s *RedisPublisherSuite) TearDownTest() {
	s.client.Close()
}

func (s *RedisPublisherSuite) event() i.GenerationEvent {
	return i.GenerationEvent{
		GenerationID:        uuid.New(),
		Kind:                i.EventGenerated,
		Width:               4,
		Height:              3,
		Origin:              maze.Coord{X: 1, Y: 2},
		Seed:                99,
		State:               maze.Generated,
		LongestWalkDistance: 6,
		RemovedWalls:        11,
		At:                  time.Date(2025, 2, 8, 12, 0, 0, 0, time.UTC),
	}
}

func (s *RedisPublisherSuite) TestPublishReachesSubscribers() {
	ctx := context.Background()
	sub := s.client.Subscribe(ctx, "maze:events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	s.Require().NoError(err)

	e := s.event()
	s.Require().NoError(s.publisher.Publish(ctx, e))

	select {
	case msg := <-sub.Channel():
		var got map[string]any
		s.Require().NoError(json.Unmarshal([]byte(msg.Payload), &got))
		s.Equal(e.GenerationID.String(), got["generation_id"])
		s.Equal("generated", got["kind"])
		s.Equal("generated", got["state"])
		s.Equal(map[string]any{"x": 1.0, "y": 2.0}, got["origin"])
		s.EqualValues(11, got["removed_walls"])
	case <-time.After(2 * time.Second):
		s.Fail("no event received")
	}
}

func (s *RedisPublisherSuite) TestPublishStoresLastEvent() {
	first, second := s.event(), s.event()
	second.Kind = i.EventStarted

	s.Require().NoError(s.publisher.Publish(context.Background(), first))
	s.Require().NoError(s.publisher.Publish(context.Background(), second))

	stored, err := s.server.Get("maze:events" + LastEventSuffix)
	s.Require().NoError(err)

	var got i.GenerationEvent
	s.Require().NoError(json.Unmarshal([]byte(stored), &got))
	s.Equal(second.GenerationID, got.GenerationID)
	s.Equal(i.EventStarted, got.Kind)
}

func (s *RedisPublisherSuite) TestPublishFailsWhenServerIsDown() {
	s.server.Close()
	err := s.publisher.Publish(context.Background(), s.event())
	s.Error(err)
}

func TestRedisPublisherSuite(t *testing.T) {
	suite.Run(t, new(RedisPublisherSuite))
}

func TestNewRedisPublisherValidation(t *testing.T) {
	l, err := logger.New("EVENTS", "", io.Discard)
	require.NoError(t, err)

	_, err = NewRedisPublisher(nil, "c", l)
	assert.Error(t, err)

	_, err = NewRedisPublisher(redis.NewClient(&redis.Options{}), "", l)
	assert.Error(t, err)
}

func TestNopPublisher(t *testing.T) {
	assert.NoError(t, NopPublisher{}.Publish(context.Background(), i.GenerationEvent{}))
}
