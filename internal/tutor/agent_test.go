package tutor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvistberg/mentor-platform/internal/modality"
	"github.com/kvistberg/mentor-platform/pkg/config"
	"github.com/kvistberg/mentor-platform/pkg/llm"
	"github.com/kvistberg/mentor-platform/pkg/mqtt"
)

// fakeMQTT records published messages
type fakeMQTT struct {
	published map[string][]byte
}

func newFakeMQTT() *fakeMQTT {
	return &fakeMQTT{published: make(map[string][]byte)}
}

func (f *fakeMQTT) Connect(ctx context.Context) error { return nil }
func (f *fakeMQTT) Disconnect()                       {}
func (f *fakeMQTT) IsConnected() bool                 { return true }
func (f *fakeMQTT) Subscribe(topic string, qos byte, handler mqtt.MessageHandler) error {
	return nil
}
func (f *fakeMQTT) Publish(topic string, qos byte, retained bool, payload []byte) error {
	f.published[topic] = payload
	return nil
}

// fakeMessage is an inbound MQTT message
type fakeMessage struct {
	topic   string
	payload []byte
}

func (m *fakeMessage) Topic() string   { return m.topic }
func (m *fakeMessage) Payload() []byte { return m.payload }
func (m *fakeMessage) Ack()            {}

// fakeProfiles is a canned ProfileSource
type fakeProfiles struct {
	profile *modality.Profile
	err     error
}

func (f *fakeProfiles) Profile(ctx context.Context, userID string) (*modality.Profile, error) {
	return f.profile, f.err
}

func newTestAgent(profiles ProfileSource, llmClient llm.Client) (*Agent, *fakeMQTT) {
	broker := newFakeMQTT()
	cfg := config.NewConfig()
	agent := NewAgent(broker, profiles, llmClient, cfg, slog.Default())
	return agent, broker
}

func TestHandleChatRequest_PersonalizedSystemPrompt(t *testing.T) {
	profiles := &fakeProfiles{profile: &modality.Profile{
		Scores:            modality.Scores{Kinesthetic: 100},
		DominantStyle:     modality.Style(modality.Kinesthetic),
		TotalInteractions: 50,
		Confidence:        50,
	}}

	var captured llm.GenerateRequest
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
			captured = req
			return &llm.GenerateResponse{Response: "try this experiment", Done: true}, nil
		},
	}

	agent, broker := newTestAgent(profiles, mock)
	agent.handleChatRequest(&fakeMessage{
		topic:   "tutoring/chat/request/learner-7",
		payload: []byte(`{"message": "what is torque?"}`),
	})

	assert.Equal(t, "what is torque?", captured.Prompt)
	assert.True(t, strings.Contains(captured.System, "hands-on"),
		"system prompt must carry the kinesthetic instruction")

	payload, ok := broker.published["tutoring/chat/response/learner-7"]
	require.True(t, ok, "response must be published to the learner's response topic")

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(payload, &resp))
	assert.Equal(t, "try this experiment", resp.Response)
	assert.Empty(t, resp.Error)
}

func TestHandleChatRequest_NoProfileStillAnswers(t *testing.T) {
	var captured llm.GenerateRequest
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
			captured = req
			return &llm.GenerateResponse{Response: "ok", Done: true}, nil
		},
	}

	agent, broker := newTestAgent(&fakeProfiles{}, mock)
	agent.handleChatRequest(&fakeMessage{
		topic:   "tutoring/chat/request/learner-7",
		payload: []byte(`{"message": "hello"}`),
	})

	assert.Contains(t, captured.System, "balanced mix")
	assert.Contains(t, broker.published, "tutoring/chat/response/learner-7")
}

func TestHandleChatRequest_ProfileFailureFallsBackToGeneric(t *testing.T) {
	profiles := &fakeProfiles{err: fmt.Errorf("bridge unavailable")}
	var captured llm.GenerateRequest
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
			captured = req
			return &llm.GenerateResponse{Response: "ok", Done: true}, nil
		},
	}

	agent, broker := newTestAgent(profiles, mock)
	agent.handleChatRequest(&fakeMessage{
		topic:   "tutoring/chat/request/learner-7",
		payload: []byte(`{"message": "hello"}`),
	})

	assert.Contains(t, captured.System, "balanced mix")
	assert.Contains(t, broker.published, "tutoring/chat/response/learner-7")
}

func TestHandleChatRequest_LLMFailurePublishesFallback(t *testing.T) {
	mock := &llm.MockClient{
		GenerateFunc: func(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
			return nil, fmt.Errorf("model not loaded")
		},
	}

	agent, broker := newTestAgent(&fakeProfiles{}, mock)
	agent.handleChatRequest(&fakeMessage{
		topic:   "tutoring/chat/request/learner-7",
		payload: []byte(`{"message": "hello"}`),
	})

	payload, ok := broker.published["tutoring/chat/response/learner-7"]
	require.True(t, ok, "a fallback response must still be published")

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(payload, &resp))
	assert.NotEmpty(t, resp.Error)
	assert.Empty(t, resp.Response)
}

func TestHandleChatRequest_IgnoresMalformedRequests(t *testing.T) {
	mock := llm.NewMockClient()

	agent, broker := newTestAgent(&fakeProfiles{}, mock)

	agent.handleChatRequest(&fakeMessage{topic: "tutoring/chat/request/learner-7", payload: []byte(`not json`)})
	agent.handleChatRequest(&fakeMessage{topic: "tutoring/chat/request/learner-7", payload: []byte(`{"message": ""}`)})
	agent.handleChatRequest(&fakeMessage{topic: "tutoring/chat/request/", payload: []byte(`{"message": "hi"}`)})

	assert.Empty(t, broker.published)
}
