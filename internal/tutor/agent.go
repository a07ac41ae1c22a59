package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/kvistberg/mentor-platform/internal/modality"
	"github.com/kvistberg/mentor-platform/pkg/config"
	"github.com/kvistberg/mentor-platform/pkg/llm"
	"github.com/kvistberg/mentor-platform/pkg/mqtt"
)

// ProfileSource resolves the active learning style profile for a learner.
// A nil profile with a nil error means no profile exists yet.
type ProfileSource interface {
	Profile(ctx context.Context, userID string) (*modality.Profile, error)
}

// ChatRequest is the payload published to tutoring/chat/request/{user_id}
type ChatRequest struct {
	Message string `json:"message"`
	Subject string `json:"subject,omitempty"`
}

// ChatResponse is the payload published to tutoring/chat/response/{user_id}
type ChatResponse struct {
	Response  string    `json:"response"`
	Subject   string    `json:"subject,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// Agent answers chat requests with the tutoring model, biased by the
// learner's style profile through the composed directive.
type Agent struct {
	mqtt     mqtt.Client
	profiles ProfileSource
	llm      llm.Client
	metrics  *llm.MetricsCollector
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAgent creates a new tutor agent with the given dependencies
func NewAgent(mqttClient mqtt.Client, profiles ProfileSource, llmClient llm.Client, cfg *config.Config, logger *slog.Logger) *Agent {
	return &Agent{
		mqtt:     mqttClient,
		profiles: profiles,
		llm:      llmClient,
		metrics:  llm.NewMetricsCollector(logger),
		cfg:      cfg,
		logger:   logger,
	}
}

// Start starts the tutor agent and begins serving chat requests
func (a *Agent) Start(ctx context.Context) error {
	a.logger.Info("Starting tutor agent",
		"service_name", a.cfg.ServiceName,
		"mqtt_broker", a.cfg.MQTTAddress(),
		"llm_model", a.cfg.LLMModel)

	if err := a.mqtt.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to MQTT: %w", err)
	}

	if err := a.llm.Health(ctx); err != nil {
		// Degraded start is allowed; requests will fail with a fallback reply
		a.logger.Warn("LLM service not reachable at startup", "error", err)
	}

	if err := a.mqtt.Subscribe(mqtt.TopicChatRequest, 0, a.handleChatRequest); err != nil {
		return fmt.Errorf("failed to subscribe to chat requests: %w", err)
	}

	a.logger.Info("Tutor agent started and ready to receive messages")

	<-ctx.Done()
	a.logger.Info("Tutor agent stopping")
	a.metrics.LogMetrics()

	return nil
}

// Stop gracefully stops the tutor agent
func (a *Agent) Stop() error {
	a.logger.Info("Stopping tutor agent")
	a.mqtt.Disconnect()
	a.logger.Info("Tutor agent stopped")
	return nil
}

// handleChatRequest resolves the learner's profile, composes the directive
// and forwards the question to the tutoring model
func (a *Agent) handleChatRequest(msg mqtt.Message) {
	userID := mqtt.UserIDFromTopic(msg.Topic())
	if userID == "" {
		a.logger.Warn("Chat request without user id", "topic", msg.Topic())
		return
	}

	var req ChatRequest
	if err := json.Unmarshal(msg.Payload(), &req); err != nil {
		a.logger.Error("Failed to parse chat request", "user", userID, "error", err)
		return
	}
	if req.Message == "" {
		a.logger.Warn("Empty chat request", "user", userID)
		return
	}

	ctx := context.Background()

	profile, err := a.profiles.Profile(ctx, userID)
	if err != nil {
		// Answer anyway with the generic directive
		a.logger.Warn("Failed to resolve profile for chat", "user", userID, "error", err)
		profile = nil
	}

	directive := ComposeDirective(profile, req.Subject)

	genReq := llm.DefaultGenerateRequest(a.cfg.LLMModel, req.Message)
	genReq.System = directive

	resp, err := a.llm.Generate(ctx, genReq)
	if err != nil {
		a.metrics.RecordError()
		a.logger.Error("LLM request failed", "user", userID, "error", err)
		a.publishResponse(userID, &ChatResponse{
			Error:     "tutor temporarily unavailable",
			Subject:   req.Subject,
			Timestamp: time.Now().UTC(),
		})
		return
	}
	a.metrics.Record(resp)

	a.publishResponse(userID, &ChatResponse{
		Response:  resp.Response,
		Subject:   req.Subject,
		Timestamp: time.Now().UTC(),
	})

	a.logger.Info("Chat request answered",
		"user", userID,
		"subject", req.Subject,
		"personalized", profile != nil,
		"response_length", len(resp.Response))
}

// publishResponse publishes a chat response for a learner
func (a *Agent) publishResponse(userID string, resp *ChatResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		a.logger.Error("Failed to marshal chat response", "user", userID, "error", err)
		return
	}

	if err := a.mqtt.Publish(mqtt.ChatResponseTopic(userID), 0, false, payload); err != nil {
		a.logger.Error("Failed to publish chat response", "user", userID, "error", err)
	}
}
