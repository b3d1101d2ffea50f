package messaging

import (
	"context"
	"encoding/json"

	"github.com/segmentio/kafka-go"
)

type KafkaProducer struct {
	writers map[string]*kafka.Writer
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		writers: make(map[string]*kafka.Writer),
	}
}

func (kp *KafkaProducer) GetWriter(topic string, brokers []string) *kafka.Writer {
	if writer, exists := kp.writers[topic]; exists {
		return writer
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
	kp.writers[topic] = writer
	return writer
}

func (kp *KafkaProducer) SendMessage(topic string, brokers []string, key string, value interface{}) error {
	writer := kp.GetWriter(topic, brokers)

	jsonData, err := json.Marshal(value)
	if err != nil {
		return err
	}

	message := kafka.Message{
		Key:   []byte(key),
		Value: jsonData,
	}

	return writer.WriteMessages(context.Background(), message)
}

func (kp *KafkaProducer) Close() {
	for _, writer := range kp.writers {
		writer.Close()
	}
}

// Event types for async processing

// OrderEvent is published when a checkout produces an order.
type OrderEvent struct {
	Type         string      `json:"type"`
	OrderID      string      `json:"order_id"`
	UserID       string      `json:"user_id"`
	RestaurantID int64       `json:"restaurant_id"`
	Total        string      `json:"total"`
	Data         interface{} `json:"data"`
}

// CatalogEvent is published when the owner dashboard changes a product
// or category.
type CatalogEvent struct {
	Type         string `json:"type"`
	EntityID     string `json:"entity_id"`
	RestaurantID string `json:"restaurant_id"`
}

// NotificationEvent carries user-facing toast notifications.
type NotificationEvent struct {
	Type     string                 `json:"type"`
	UserID   string                 `json:"user_id"`
	Title    string                 `json:"title"`
	Message  string                 `json:"message"`
	Metadata map[string]interface{} `json:"metadata"`
}
