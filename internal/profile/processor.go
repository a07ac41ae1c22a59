package profile

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/kvistberg/mentor-platform/internal/modality"
)

// Processor handles parsing and validation of raw activity messages. This is
// the ingestion boundary: an unknown modality value is rejected here, never
// coerced, so the aggregation logic can assume the closed set holds.
type Processor struct {
	logger *slog.Logger
}

// NewProcessor creates a new activity message processor
func NewProcessor(logger *slog.Logger) *Processor {
	return &Processor{
		logger: logger,
	}
}

// ActivityMessage represents a parsed activity observation with metadata
type ActivityMessage struct {
	UserID        string
	OriginalTopic string
	Point         modality.DataPoint
	CollectedAt   int64 // Unix milliseconds
}

// ParseMessage parses an MQTT activity message into a validated data point.
// Topic pattern: tutoring/raw/activity/{user_id}; payloads are wrapped in
// {"data": {...}} like every other message on the platform.
func (p *Processor) ParseMessage(topic string, payload []byte) (*ActivityMessage, error) {
	parts := strings.Split(topic, "/")
	if len(parts) < 4 {
		p.logger.Warn("Invalid topic format", "topic", topic)
		return nil, fmt.Errorf("invalid topic format: %s (expected at least 4 parts)", topic)
	}

	userID := parts[3]
	if userID == "" {
		return nil, fmt.Errorf("empty user id in topic %s", topic)
	}

	var rawData map[string]interface{}
	if err := json.Unmarshal(payload, &rawData); err != nil {
		p.logger.Error("Failed to parse JSON payload", "topic", topic, "error", err)
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	data, ok := rawData["data"].(map[string]interface{})
	if !ok {
		p.logger.Warn("Missing or invalid 'data' field in payload", "topic", topic)
		data = rawData
	}

	rawModality, _ := data["modality"].(string)
	m, err := modality.Parse(rawModality)
	if err != nil {
		return nil, fmt.Errorf("rejected data point for user %s: %w", userID, err)
	}

	weight := 1.0
	if w, ok := data["weight"].(float64); ok {
		weight = w
	}

	subject, _ := data["subject"].(string)

	timestamp := time.Now().UTC()
	if ts, ok := data["timestamp"].(string); ok {
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			timestamp = parsed
		}
	}

	msg := &ActivityMessage{
		UserID:        userID,
		OriginalTopic: topic,
		Point: modality.DataPoint{
			Modality:  m,
			Weight:    weight,
			Subject:   subject,
			Timestamp: timestamp,
		},
		CollectedAt: time.Now().UnixMilli(),
	}

	p.logger.Debug("Parsed activity message",
		"user", userID,
		"modality", m,
		"weight", weight,
		"subject", subject)

	return msg, nil
}

// BuildTriggerPayload creates the payload for the trigger message published
// after a data point is stored
func (p *Processor) BuildTriggerPayload(msg *ActivityMessage) ([]byte, error) {
	payload := map[string]interface{}{
		"data": map[string]interface{}{
			"modality": msg.Point.Modality,
			"weight":   msg.Point.Weight,
			"subject":  msg.Point.Subject,
		},
		"original_topic": msg.OriginalTopic,
		"stored_at":      time.Now().UTC().Format(time.RFC3339Nano),
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal trigger payload: %w", err)
	}

	return data, nil
}
