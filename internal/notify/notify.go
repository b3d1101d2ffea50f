package notify

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"golang-marketplace-backend/pkg/messaging"
)

// Sink receives fire-and-forget user-facing notifications about cart
// outcomes. Implementations must never block the mutation that emitted
// the notification and must swallow their own delivery errors.
type Sink interface {
	ItemAdded(productName string)
	ItemRemoved(productName string)
	CartCleared()
	RestaurantConflict(currentRestaurant, attemptedRestaurant string)
}

// KafkaSink publishes notifications to the notifications topic so the
// storefront can surface them as toasts.
type KafkaSink struct {
	producer *messaging.KafkaProducer
	brokers  []string
	topic    string
	userKey  string
}

func NewKafkaSink(producer *messaging.KafkaProducer, brokers []string, userKey string) *KafkaSink {
	return &KafkaSink{
		producer: producer,
		brokers:  brokers,
		topic:    "cart_notifications",
		userKey:  userKey,
	}
}

func (s *KafkaSink) publish(eventType, title, message string, metadata map[string]interface{}) {
	event := messaging.NotificationEvent{
		Type:     eventType,
		UserID:   s.userKey,
		Title:    title,
		Message:  message,
		Metadata: metadata,
	}
	if err := s.producer.SendMessage(s.topic, s.brokers, s.userKey, event); err != nil {
		logrus.WithError(err).Warn("notify: failed to publish cart notification")
	}
}

func (s *KafkaSink) ItemAdded(productName string) {
	s.publish("cart_item_added", "Added to cart", fmt.Sprintf("%s added to your cart", productName), nil)
}

func (s *KafkaSink) ItemRemoved(productName string) {
	s.publish("cart_item_removed", "Removed from cart", fmt.Sprintf("%s removed from your cart", productName), nil)
}

func (s *KafkaSink) CartCleared() {
	s.publish("cart_cleared", "Cart cleared", "All items removed from your cart", nil)
}

func (s *KafkaSink) RestaurantConflict(currentRestaurant, attemptedRestaurant string) {
	s.publish("cart_restaurant_conflict", "Start a new cart?",
		fmt.Sprintf("Your cart has items from %s. Clear it to order from %s.", currentRestaurant, attemptedRestaurant),
		map[string]interface{}{
			"current_restaurant":   currentRestaurant,
			"attempted_restaurant": attemptedRestaurant,
		})
}

// LogSink is the fallback sink used when no message broker is
// configured; it only writes structured log lines.
type LogSink struct{}

func (LogSink) ItemAdded(productName string) {
	logrus.WithField("product", productName).Info("cart: item added")
}

func (LogSink) ItemRemoved(productName string) {
	logrus.WithField("product", productName).Info("cart: item removed")
}

func (LogSink) CartCleared() {
	logrus.Info("cart: cleared")
}

func (LogSink) RestaurantConflict(currentRestaurant, attemptedRestaurant string) {
	logrus.WithFields(logrus.Fields{
		"current":   currentRestaurant,
		"attempted": attemptedRestaurant,
	}).Info("cart: restaurant conflict")
}
