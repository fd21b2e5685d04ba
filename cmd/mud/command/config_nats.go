package command

import (
	"fmt"
	"time"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-mudcore/internal/listener"
	"github.com/pixil98/go-mudcore/internal/messaging"
)

type DeliveryMode int

const (
	DeliveryModeDirect DeliveryMode = iota
	DeliveryModeNats
)

func (m *DeliveryMode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "", "direct":
		*m = DeliveryModeDirect
	case "nats":
		*m = DeliveryModeNats
	default:
		return fmt.Errorf("unknown delivery mode: %s", text)
	}
	return nil
}

// DeliveryConfig chooses how output reaches sessions.
type DeliveryConfig struct {
	Mode DeliveryMode `json:"mode"`
	Nats NatsConfig   `json:"nats"`
}

func (c *DeliveryConfig) validate() error {
	if c.Mode != DeliveryModeNats {
		return nil
	}
	if err := c.Nats.validate(); err != nil {
		return fmt.Errorf("delivery: nats: %w", err)
	}
	return nil
}

// build returns the session delivery and, in nats mode, the broker that has to run
// alongside it.
func (c *DeliveryConfig) build() (listener.Delivery, *messaging.NatsServer, error) {
	if c.Mode != DeliveryModeNats {
		return listener.DirectDelivery{}, nil, nil
	}

	s, err := c.Nats.buildNatsServer()
	if err != nil {
		return nil, nil, fmt.Errorf("creating nats server: %w", err)
	}
	return messaging.NewNatsDelivery(s), s, nil
}

type NatsConfig struct {
	Host         string `json:"host"`
	Port         int    `json:"port"`
	StartTimeout string `json:"start_timeout"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	if n.StartTimeout != "" {
		_, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			el.Add(fmt.Errorf("parsing start_timeout: %w", err))
		}
	}
	if n.Port < -1 || n.Port > 65535 {
		el.Add(fmt.Errorf("port %d is out of range", n.Port))
	}

	return el.Err()
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	if n.StartTimeout != "" {
		d, err := time.ParseDuration(n.StartTimeout)
		if err != nil {
			return nil, fmt.Errorf("parsing start_timeout: %w", err)
		}
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}

	return messaging.NewNatsServer(opts...)
}
