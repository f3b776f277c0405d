package notify

import (
	"encoding/json"
	"fmt"
	"log"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTT message handler for alert acknowledgments coming back from devices
var messagePubHandler mqtt.MessageHandler = func(client mqtt.Client, msg mqtt.Message) {
	log.Printf("Received message: %s from topic: %s\n", msg.Payload(), msg.Topic())
}

var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Println("Connected to MQTT broker")
}

var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Printf("Connection lost: %v", err)
}

// MQTTSender publishes fired alerts to per-user topics so subscribed
// devices can display them.
type MQTTSender struct {
	client mqtt.Client
}

// NewMQTTSender connects to the broker and returns a sender.
func NewMQTTSender(brokerURL, clientName string) (*MQTTSender, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID(clientName)
	opts.SetDefaultPublishHandler(messagePubHandler)
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	log.Println("MQTT client initialized successfully")
	return &MQTTSender{client: client}, nil
}

// Send publishes one alert to the user's topic.
func (s *MQTTSender) Send(userID int, e Entry) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("prayer/alerts/%d", userID)
	token := s.client.Publish(topic, 1, false, payload)
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("failed to publish alert for user %d: %v", userID, token.Error())
	}
	return nil
}

// Close disconnects from the broker.
func (s *MQTTSender) Close() {
	if s.client != nil {
		s.client.Disconnect(250)
		log.Println("MQTT client disconnected")
	}
}
