package actor

type actorConfig struct {
	queueSize int
}

type ActorOpt func(*actorConfig)

// WithQueueSize sets how many events may wait before Submit blocks.
func WithQueueSize(n int) ActorOpt {
	return func(c *actorConfig) {
		if n > 0 {
			c.queueSize = n
		}
	}
}
