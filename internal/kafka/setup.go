package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/Dhoini/olio-backoffice/pkg/logger"
	kafkaGo "github.com/segmentio/kafka-go"
)

// RequiredTopics топики, которые сервис создает при старте
func RequiredTopics() []kafkaGo.TopicConfig {
	return []kafkaGo.TopicConfig{
		{Topic: TopicOrderReceived, NumPartitions: 1, ReplicationFactor: 1},
		{Topic: TopicMessageReceived, NumPartitions: 1, ReplicationFactor: 1},
	}
}

// EnsureKafkaTopics проверяет и создает необходимые топики Kafka.
func EnsureKafkaTopics(ctx context.Context, brokers []string, log *logger.Logger) error {
	broker, err := firstBroker(brokers)
	if err != nil {
		return err
	}

	connCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	conn, err := kafkaGo.DialLeader(connCtx, "tcp", broker, "", 0)
	if err != nil {
		log.Errorw("Failed to connect to Kafka broker for topic creation", "broker", broker, "error", err)
		return fmt.Errorf("kafka connection failed: %w", err)
	}
	defer conn.Close()

	partitions, err := conn.ReadPartitions()
	if err != nil {
		return fmt.Errorf("kafka read partitions failed: %w", err)
	}

	existing := make(map[string]bool, len(partitions))
	for _, p := range partitions {
		existing[p.Topic] = true
	}

	missing := missingTopics(RequiredTopics(), existing)
	if len(missing) == 0 {
		log.Debugw("All required topics already exist")
		return nil
	}

	if err := conn.CreateTopics(missing...); err != nil && !errors.Is(err, kafkaGo.TopicAlreadyExists) {
		log.Errorw("Failed to create topics", "error", err, "topics", topicNames(missing))
		return fmt.Errorf("kafka create topics failed: %w", err)
	}

	log.Infow("Kafka topics created", "topics", topicNames(missing))
	return nil
}

func firstBroker(brokers []string) (string, error) {
	if len(brokers) == 0 || strings.TrimSpace(brokers[0]) == "" {
		return "", errors.New("kafka broker address is empty")
	}
	broker := strings.TrimSpace(brokers[0])

	_, portStr, err := net.SplitHostPort(broker)
	if err != nil {
		return "", fmt.Errorf("invalid broker address %s: %w", broker, err)
	}
	if _, err := strconv.Atoi(portStr); err != nil {
		return "", fmt.Errorf("invalid broker port %s: %w", broker, err)
	}
	return broker, nil
}

func missingTopics(required []kafkaGo.TopicConfig, existing map[string]bool) []kafkaGo.TopicConfig {
	var missing []kafkaGo.TopicConfig
	for _, cfg := range required {
		if !existing[cfg.Topic] {
			missing = append(missing, cfg)
		}
	}
	return missing
}

func topicNames(configs []kafkaGo.TopicConfig) []string {
	names := make([]string, 0, len(configs))
	for _, tc := range configs {
		names = append(names, tc.Topic)
	}
	return names
}
