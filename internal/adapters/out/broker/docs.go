// Package broker publishes order events. The adapter is chosen at start-up:
// RabbitMQ topic exchange, Kafka topic, or the application log.
package broker
