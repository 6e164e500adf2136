// Package mqtt publishes samples and status to an MQTT broker.
package mqtt

import (
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tamzrod/mpr121d/internal/status"
	"github.com/tamzrod/mpr121d/internal/touch"
)

const publishTimeout = 2 * time.Second

// Topics, relative to the configured prefix:
//
//	<prefix>/data                 every sample (JSON)
//	<prefix>/electrode/<n>        "touched" / "released" transitions
//	<prefix>/status               status snapshot (JSON, retained)
const (
	topicData      = "data"
	topicElectrode = "electrode"
	topicStatus    = "status"
)

// publisher is the part of mqtt.Client the Publisher uses.
type publisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type Config struct {
	Broker   string
	Topic    string
	ClientID string
	Retain   bool
}

type Publisher struct {
	cli    publisher
	conn   mqtt.Client
	prefix string
	retain bool
	logger *zap.SugaredLogger
}

// Connect dials the broker and returns a ready Publisher.
func Connect(cfg Config, logger *zap.SugaredLogger) (*Publisher, error) {
	logger = logger.Named("mqtt")

	u, err := url.Parse(cfg.Broker)
	if err != nil {
		return nil, fmt.Errorf("mqtt: broker url: %w", err)
	}

	opts := mqtt.NewClientOptions()
	server := u.Host
	switch u.Scheme {
	case "mqtt", "tcp":
		server = "tcp://" + server
	case "ssl", "tls":
		server = "ssl://" + server
	case "ws", "wss":
		server = u.Scheme + "://" + server + u.Path
	}
	opts.AddBroker(server)

	clientID := cfg.ClientID
	if clientID == "" {
		clientID = "mpr121d-" + uuid.NewString()
	}
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) { logger.Infow("MQTT connected", "broker", server) }
	opts.OnConnectionLost = func(_ mqtt.Client, err error) { logger.Warnw("MQTT connection lost", "error", err) }

	if u.User != nil {
		pw, _ := u.User.Password()
		opts.SetUsername(u.User.Username())
		opts.SetPassword(pw)
	}
	if u.Scheme == "ssl" || u.Scheme == "tls" || u.Scheme == "wss" {
		opts.SetTLSConfig(&tls.Config{ServerName: u.Hostname()})
	}

	cli := mqtt.NewClient(opts)
	if t := cli.Connect(); t.Wait() && t.Error() != nil {
		return nil, fmt.Errorf("mqtt: connect %s: %w", server, t.Error())
	}

	p := newPublisher(cli, cfg.Topic, cfg.Retain, logger)
	p.conn = cli
	return p, nil
}

func newPublisher(cli publisher, prefix string, retain bool, logger *zap.SugaredLogger) *Publisher {
	return &Publisher{cli: cli, prefix: prefix, retain: retain, logger: logger}
}

// Close disconnects, allowing in-flight messages a short grace period.
func (p *Publisher) Close() {
	if p.conn != nil {
		p.conn.Disconnect(250)
	}
}

// PublishSample sends the sample and one message per touch transition.
func (p *Publisher) PublishSample(s touch.Sample) error {
	payload, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("mqtt: encode sample: %w", err)
	}
	if err := p.publish(p.topic(topicData), p.retain, payload); err != nil {
		return err
	}

	touched, released := s.Transitions()
	for _, i := range touched {
		if err := p.publish(p.topic(topicElectrode, strconv.Itoa(i)), false, []byte("touched")); err != nil {
			return err
		}
	}
	for _, i := range released {
		if err := p.publish(p.topic(topicElectrode, strconv.Itoa(i)), false, []byte("released")); err != nil {
			return err
		}
	}
	return nil
}

type statusMessage struct {
	status.Snapshot
	HealthName string `json:"healthName"`
}

// PublishStatus sends the status snapshot as a retained message.
func (p *Publisher) PublishStatus(s status.Snapshot) error {
	payload, err := json.Marshal(statusMessage{Snapshot: s, HealthName: status.HealthName(s.Health)})
	if err != nil {
		return fmt.Errorf("mqtt: encode status: %w", err)
	}
	return p.publish(p.topic(topicStatus), true, payload)
}

func (p *Publisher) topic(parts ...string) string {
	t := p.prefix
	for _, s := range parts {
		t += "/" + s
	}
	return t
}

func (p *Publisher) publish(topic string, retain bool, payload []byte) error {
	t := p.cli.Publish(topic, 0, retain, payload)
	if !t.WaitTimeout(publishTimeout) {
		return fmt.Errorf("mqtt: publish %s: timeout", topic)
	}
	if err := t.Error(); err != nil {
		return fmt.Errorf("mqtt: publish %s: %w", topic, err)
	}
	return nil
}
