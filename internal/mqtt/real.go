package mqtt

import (
	"errors"
	"fmt"
	"sync"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/sweeney/alarm-clock/internal/logger"
	"github.com/sweeney/alarm-clock/internal/logic"
)

const (
	bufferCapacity = 32
	flushPoll      = 50 * time.Millisecond
)

var errFlushTimeout = errors.New("mqtt: flush timeout")

// RealPublisher publishes to an actual MQTT broker. Messages published
// before the connection is up are buffered and sent on connect.
type RealPublisher struct {
	client paho.Client

	mu      sync.Mutex
	buf     *ringBuffer
	pending []paho.Token
}

// NewRealPublisher starts connecting to broker in the background and
// returns immediately; the device must not wait on the network to boot.
func NewRealPublisher(broker string) *RealPublisher {
	p := &RealPublisher{buf: newRingBuffer(bufferCapacity)}

	opts := paho.NewClientOptions().
		AddBroker(broker).
		SetClientID("alarm-clock").
		SetAutoReconnect(true).
		SetConnectRetry(true).
		SetConnectRetryInterval(2 * time.Second).
		SetOnConnectHandler(p.onConnect)

	p.client = paho.NewClient(opts)
	p.client.Connect()
	return p
}

func (p *RealPublisher) onConnect(c paho.Client) {
	p.mu.Lock()
	defer p.mu.Unlock()

	msgs := p.buf.drainAll()
	for _, m := range msgs {
		p.pending = append(p.pending, c.Publish(m.topic, m.qos, m.retained, m.payload))
	}
	if len(msgs) > 0 {
		logger.Logger().Infof("mqtt: connected, replayed %d buffered messages", len(msgs))
	}
}

func (p *RealPublisher) send(msg bufferedMsg) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.client.IsConnectionOpen() {
		p.buf.push(msg)
		return
	}
	p.pending = append(p.pending, p.client.Publish(msg.topic, msg.qos, msg.retained, msg.payload))
}

// Publish queues a device event (QoS 1).
func (p *RealPublisher) Publish(event logic.Event) error {
	payload, err := FormatPayload(event)
	if err != nil {
		return fmt.Errorf("format payload: %w", err)
	}
	p.send(bufferedMsg{topic: Topic, payload: payload, qos: 1})
	return nil
}

// PublishSystem queues a system lifecycle event (QoS 1).
func (p *RealPublisher) PublishSystem(event SystemEvent) error {
	payload, err := FormatSystemPayload(event)
	if err != nil {
		return fmt.Errorf("format system payload: %w", err)
	}
	p.send(bufferedMsg{topic: TopicSystem, payload: payload, qos: 1, retained: event.Retained})
	return nil
}

// Flush waits until the buffer has been replayed and every in-flight
// publish has completed, or timeout elapses.
func (p *RealPublisher) Flush(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)

	for {
		p.mu.Lock()
		queued := p.buf.len()
		p.mu.Unlock()
		if queued == 0 {
			break
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("%d messages still queued: %w", queued, errFlushTimeout)
		}
		time.Sleep(flushPoll)
	}

	p.mu.Lock()
	tokens := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, tok := range tokens {
		if !tok.WaitTimeout(time.Until(deadline)) {
			return errFlushTimeout
		}
		if err := tok.Error(); err != nil {
			return fmt.Errorf("publish: %w", err)
		}
	}
	return nil
}

// IsConnected reports whether the client currently has an open connection.
func (p *RealPublisher) IsConnected() bool {
	return p.client.IsConnectionOpen()
}

// Close disconnects from the broker.
func (p *RealPublisher) Close() error {
	p.client.Disconnect(1000) // 1 second quiesce
	return nil
}
