package profile

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kvistberg/mentor-platform/internal/modality"
	"github.com/kvistberg/mentor-platform/pkg/config"
	"github.com/kvistberg/mentor-platform/pkg/mqtt"
	"github.com/kvistberg/mentor-platform/pkg/postgres"
	"github.com/kvistberg/mentor-platform/pkg/redis"
)

// Agent receives learner activity, maintains the evidence cache, and serves
// recompute triggers by publishing the active profile.
type Agent struct {
	mqtt      mqtt.Client
	redis     redis.Client
	processor *Processor
	cache     *Cache
	store     *Store
	bridge    *Bridge
	cfg       *config.Config
	logger    *slog.Logger
}

// NewAgent creates a new profile agent with the given dependencies
func NewAgent(mqttClient mqtt.Client, redisClient redis.Client, pgClient postgres.Client, cfg *config.Config, logger *slog.Logger) *Agent {
	processor := NewProcessor(logger)
	cache := NewCache(redisClient, cfg, logger)
	store := NewStore(pgClient, logger)
	bridge := NewBridge(cache, store, logger)

	return &Agent{
		mqtt:      mqttClient,
		redis:     redisClient,
		processor: processor,
		cache:     cache,
		store:     store,
		bridge:    bridge,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start starts the profile agent and begins processing activity messages
func (a *Agent) Start(ctx context.Context) error {
	a.logger.Info("Starting profile agent",
		"service_name", a.cfg.ServiceName,
		"mqtt_broker", a.cfg.MQTTAddress())

	if err := a.mqtt.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to MQTT: %w", err)
	}

	if err := a.redis.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}

	for _, topic := range a.cfg.ActivityTopics {
		if err := a.mqtt.Subscribe(topic, 0, a.handleActivity); err != nil {
			a.logger.Error("Failed to subscribe to topic", "topic", topic, "error", err)
			continue
		}
	}

	if err := a.mqtt.Subscribe(mqtt.TopicRecomputeTrigger, 0, a.handleRecompute); err != nil {
		return fmt.Errorf("failed to subscribe to recompute trigger: %w", err)
	}

	a.logger.Info("Profile agent started and ready to receive messages",
		"activity_topics", strings.Join(a.cfg.ActivityTopics, ", "))

	// Block until context is cancelled
	<-ctx.Done()
	a.logger.Info("Profile agent stopping")

	return nil
}

// Stop gracefully stops the profile agent
func (a *Agent) Stop() error {
	a.logger.Info("Stopping profile agent")

	a.mqtt.Disconnect()

	if err := a.redis.Close(); err != nil {
		a.logger.Error("Error closing Redis connection", "error", err)
		return err
	}

	a.logger.Info("Profile agent stopped")
	return nil
}

// handleActivity processes incoming raw activity messages
func (a *Agent) handleActivity(msg mqtt.Message) {
	topic := msg.Topic()
	payload := msg.Payload()

	a.logger.Debug("Received activity message", "topic", topic, "size", len(payload))

	activity, err := a.processor.ParseMessage(topic, payload)
	if err != nil {
		// Includes producer-side contract violations (unknown modality)
		a.logger.Error("Failed to parse activity message", "topic", topic, "error", err)
		return
	}

	ctx := context.Background()

	if err := a.cache.StorePoint(ctx, activity.UserID, activity.Point); err != nil {
		a.logger.Error("Failed to store data point",
			"user", activity.UserID,
			"modality", activity.Point.Modality,
			"error", err)
		// Continue to publish the trigger; downstream consumers can retry
	}

	if err := a.publishTrigger(activity); err != nil {
		a.logger.Error("Failed to publish trigger message",
			"user", activity.UserID,
			"error", err)
	}

	a.logger.Info("Activity data point processed",
		"user", activity.UserID,
		"modality", activity.Point.Modality,
		"subject", activity.Point.Subject)
}

// handleRecompute processes explicit recompute-now requests and publishes
// the resulting profile (retained) for consumers
func (a *Agent) handleRecompute(msg mqtt.Message) {
	userID := mqtt.UserIDFromTopic(msg.Topic())
	if userID == "" {
		a.logger.Warn("Recompute trigger without user id", "topic", msg.Topic())
		return
	}

	ctx := context.Background()

	profile, err := a.bridge.Profile(ctx, userID)
	if err != nil {
		a.logger.Error("Failed to resolve profile", "user", userID, "error", err)
		return
	}

	if err := a.publishProfile(userID, profile); err != nil {
		a.logger.Error("Failed to publish profile", "user", userID, "error", err)
		return
	}

	if profile == nil {
		a.logger.Info("No profile available yet", "user", userID)
	} else {
		a.logger.Info("Profile recomputed",
			"user", userID,
			"dominant", profile.DominantStyle,
			"confidence", profile.Confidence,
			"interactions", profile.TotalInteractions)
	}
}

// publishTrigger publishes a trigger message after a data point is stored
// Converts tutoring/raw/activity/{user} -> tutoring/activity/{user}
func (a *Agent) publishTrigger(activity *ActivityMessage) error {
	payload, err := a.processor.BuildTriggerPayload(activity)
	if err != nil {
		return fmt.Errorf("failed to build trigger payload: %w", err)
	}

	triggerTopic := mqtt.ActivityTriggerTopic(activity.UserID)
	if err := a.mqtt.Publish(triggerTopic, 0, false, payload); err != nil {
		return fmt.Errorf("failed to publish trigger: %w", err)
	}

	return nil
}

// publishProfile publishes the active profile as a retained message so late
// subscribers always see the current state. Absence is published explicitly
// so UIs can show "still building your profile" instead of an error.
func (a *Agent) publishProfile(userID string, profile *modality.Profile) error {
	var payload []byte
	var err error

	if profile == nil {
		payload, err = json.Marshal(map[string]string{"status": "insufficient_data"})
	} else {
		payload, err = json.Marshal(map[string]interface{}{
			"status":  "ok",
			"profile": profile,
		})
	}
	if err != nil {
		return fmt.Errorf("failed to marshal profile payload: %w", err)
	}

	return a.mqtt.Publish(mqtt.ProfileTopic(userID), 0, true, payload)
}
