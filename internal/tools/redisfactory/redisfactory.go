package redisfactory

import (
	"time"

	"github.com/redis/go-redis/v9"
)

// A new database gets its own URI and accessor, example: SessionsClient().

type Factory struct {
	sessions *redis.Client
}

func New(sessionsURI string) *Factory {
	opt, err := redis.ParseURL(sessionsURI)
	if err != nil {
		panic(err)
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	return &Factory{
		sessions: redis.NewClient(opt),
	}
}

// NewFromClient wraps an existing client, used by tests with redismock.
func NewFromClient(sessions *redis.Client) *Factory {
	return &Factory{
		sessions: sessions,
	}
}

func (f *Factory) SessionsClient() *redis.Client {
	return f.sessions
}

func (f *Factory) Close() error {
	return f.sessions.Close()
}
