// Package notify tells playback devices about changes made through the API.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/signage-console/internal/model"
)

// Notifier publishes device events.
type Notifier interface {
	DeviceStatus(ctx context.Context, d model.Device) error
	Close()
}

// Nop is used when no broker is configured.
type Nop struct{}

func (Nop) DeviceStatus(context.Context, model.Device) error { return nil }
func (Nop) Close()                                            {}

const (
	qos            = 1
	publishTimeout = 5 * time.Second
	disconnectWait = 250
)

// Topic is where a device listens for its status.
func Topic(deviceID int) string {
	return fmt.Sprintf("devices/%d/status", deviceID)
}

type statusMessage struct {
	DeviceID int                `json:"device_id"`
	Status   model.DeviceStatus `json:"status"`
	LastSeen *time.Time         `json:"last_seen,omitempty"`
}

type MQTT struct {
	client mqtt.Client
}

// Connect dials the broker once; paho reconnects on its own afterwards.
func Connect(brokerURL, clientID string) (*MQTT, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientID)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(mqtt.Client) {
		log.Info().Str("broker", brokerURL).Msg("connected to MQTT broker")
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("MQTT connection lost")
	}

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}
	return &MQTT{client: client}, nil
}

func NewMQTT(client mqtt.Client) *MQTT {
	return &MQTT{client: client}
}

// DeviceStatus publishes a retained status message on the device's topic.
func (m *MQTT) DeviceStatus(ctx context.Context, d model.Device) error {
	payload, err := json.Marshal(statusMessage{DeviceID: d.ID, Status: d.Status, LastSeen: d.LastSeen})
	if err != nil {
		return err
	}

	topic := Topic(d.ID)
	token := m.client.Publish(topic, qos, true, payload)
	select {
	case <-token.Done():
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(publishTimeout):
		return fmt.Errorf("publish to %s timed out", topic)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", topic, err)
	}

	log.Debug().Str("topic", topic).Str("status", string(d.Status)).Msg("device status published")
	return nil
}

func (m *MQTT) Close() {
	m.client.Disconnect(disconnectWait)
}
