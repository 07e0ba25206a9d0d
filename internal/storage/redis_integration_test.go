package storage

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"storysite/internal/testutil"
)

type RedisStorageSuite struct {
	suite.Suite
	ctx       context.Context
	container *tcredis.RedisContainer
	client    *redis.Client
}

func TestRedisStorageSuite(t *testing.T) {
	testutil.RequireDocker(t)
	suite.Run(t, new(RedisStorageSuite))
}

func (s *RedisStorageSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.container, err = tcredis.Run(s.ctx,
		"docker.io/redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("* Ready to accept connections").
				WithOccurrence(1).
				WithStartupTimeout(time.Minute),
		),
	)
	s.Require().NoError(err, "Failed to start redis container")

	host, err := s.container.Host(s.ctx)
	s.Require().NoError(err)
	port, err := s.container.MappedPort(s.ctx, "6379/tcp")
	s.Require().NoError(err)

	s.client = redis.NewClient(&redis.Options{Addr: fmt.Sprintf("%s:%s", host, port.Port())})
	s.Require().NoError(s.client.Ping(s.ctx).Err())
}

func (s *RedisStorageSuite) TearDownSuite() {
	if s.client != nil {
		s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RedisStorageSuite) TestContract() {
	exerciseStorage(s.T(), NewRedis(s.client, "contract", time.Minute, zap.NewNop()))
}

func (s *RedisStorageSuite) TestSessionsAreIsolated() {
	a := NewRedis(s.client, "a", time.Minute, nil)
	b := NewRedis(s.client, "b", time.Minute, nil)

	s.Require().NoError(a.SetItem(s.ctx, "storysite_theme", "dark"))
	_, ok, err := b.GetItem(s.ctx, "storysite_theme")
	s.Require().NoError(err)
	s.False(ok)
}

func (s *RedisStorageSuite) TestAccessSlidesTTL() {
	st := NewRedis(s.client, "sliding", time.Hour, nil)
	s.Require().NoError(st.SetItem(s.ctx, "k", "v"))
	s.Require().NoError(s.client.Expire(s.ctx, SessionKey("sliding"), time.Minute).Err())

	_, _, err := st.GetItem(s.ctx, "k")
	s.Require().NoError(err)

	ttl, err := s.client.TTL(s.ctx, SessionKey("sliding")).Result()
	s.Require().NoError(err)
	s.Greater(ttl, 30*time.Minute)
}

func (s *RedisStorageSuite) TestDestroy() {
	st := NewRedis(s.client, "gone", time.Minute, nil)
	s.Require().NoError(st.SetItem(s.ctx, "k", "v"))
	s.Require().NoError(st.Destroy(s.ctx))

	n, err := s.client.Exists(s.ctx, SessionKey("gone")).Result()
	s.Require().NoError(err)
	s.Zero(n)
}
