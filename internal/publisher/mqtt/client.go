// internal/publisher/mqtt/client.go
package mqtt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
)

// Client implements publisher.Transport using paho.mqtt.golang.
//
// paho invokes its connection handlers on its own goroutines. Client
// queues those notifications and replays them from Service, so the
// publisher only ever observes them on the caller's goroutine.
// Reconnection is driven by the publisher, so paho's auto-reconnect is off.
type Client struct {
	c   paho.Client
	qos byte

	waitTimeout time.Duration

	mu      sync.Mutex
	pending []event
	notify  chan struct{}
}

type event uint8

const (
	eventUp event = iota + 1
	eventDown
)

// Config is minimal transport config.
type Config struct {
	Server   string // tcp://host:port, ssl://..., ws://...
	ClientID string
	Username string
	Password string
	QoS      byte

	// WaitTimeout bounds how long Connect and Publish wait for the broker.
	WaitTimeout time.Duration
}

// New creates an unconnected client.
func New(cfg Config) (*Client, error) {
	if cfg.Server == "" {
		return nil, errors.New("mqtt client: server required")
	}
	if cfg.WaitTimeout <= 0 {
		cfg.WaitTimeout = 5 * time.Second
	}

	c := &Client{
		qos:         cfg.QoS,
		waitTimeout: cfg.WaitTimeout,
		notify:      make(chan struct{}, 1),
	}

	opts := paho.NewClientOptions().
		AddBroker(cfg.Server).
		SetClientID(cfg.ClientID).
		SetUsername(cfg.Username).
		SetPassword(cfg.Password).
		SetCleanSession(true).
		SetAutoReconnect(false).
		SetConnectRetry(false).
		SetConnectTimeout(cfg.WaitTimeout).
		SetOnConnectHandler(func(paho.Client) {
			c.push(eventUp)
		}).
		SetConnectionLostHandler(func(_ paho.Client, _ error) {
			c.push(eventDown)
		})

	c.c = paho.NewClient(opts)
	return c, nil
}

// ---- publisher.Transport interface ----

// Connect performs one connect attempt and waits for the CONNACK.
func (c *Client) Connect() error {
	tok := c.c.Connect()
	if !tok.WaitTimeout(c.waitTimeout) {
		return fmt.Errorf("mqtt client: connect timed out after %s", c.waitTimeout)
	}
	return tok.Error()
}

// Publish sends one message and waits for it to leave (QoS 0) or be
// acknowledged (QoS 1/2).
func (c *Client) Publish(topic string, payload []byte, retain bool) error {
	tok := c.c.Publish(topic, c.qos, retain, payload)
	if !tok.WaitTimeout(c.waitTimeout) {
		return fmt.Errorf("mqtt client: publish %s timed out after %s", topic, c.waitTimeout)
	}
	return tok.Error()
}

// Service replays queued connection events in arrival order.
// If none are queued it waits up to timeout for one.
func (c *Client) Service(timeout time.Duration, onConnected, onDisconnected func()) {
	// notify may hold a token for events already drained; re-check.
	deadline := time.Now().Add(timeout)
	for !c.hasPending() {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}
		timer := time.NewTimer(remaining)
		select {
		case <-c.notify:
		case <-timer.C:
		}
		timer.Stop()
	}

	for _, ev := range c.drain() {
		switch ev {
		case eventUp:
			onConnected()
		case eventDown:
			onDisconnected()
		}
	}
}

// Close disconnects, allowing 250ms for in-flight work.
func (c *Client) Close() {
	if c.c.IsConnected() {
		c.c.Disconnect(250)
	}
}

// ---- event queue ----

func (c *Client) push(ev event) {
	c.mu.Lock()
	c.pending = append(c.pending, ev)
	c.mu.Unlock()

	select {
	case c.notify <- struct{}{}:
	default:
	}
}

func (c *Client) hasPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.pending) > 0
}

func (c *Client) drain() []event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.pending
	c.pending = nil
	return out
}
