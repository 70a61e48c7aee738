package notifier

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DriverLog   = "log"
	DriverHTTP  = "http"
	DriverRedis = "redis"
)

// Options параметры выбора диспетчера
type Options struct {
	Driver   string
	BaseURL  string
	Timeout  time.Duration
	QueueKey string
}

// New выбирает реализацию Dispatcher по драйверу.
// Для драйвера redis нужен клиент, для http - BaseURL
func New(opts Options, client *redis.Client, log Logger) (Dispatcher, error) {
	switch opts.Driver {
	case DriverLog, "":
		return NewLogDispatcher(log), nil
	case DriverHTTP:
		if opts.BaseURL == "" {
			return nil, fmt.Errorf("%w: http driver requires base url", ErrUnknownDriver)
		}
		return NewHTTPDispatcher(opts.BaseURL, opts.Timeout, log), nil
	case DriverRedis:
		if client == nil {
			return nil, fmt.Errorf("%w: redis driver requires redis connection", ErrUnknownDriver)
		}
		return NewRedisDispatcher(client, opts.QueueKey, log), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, opts.Driver)
	}
}
