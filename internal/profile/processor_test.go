package profile

import (
	"log/slog"
	"testing"

	"github.com/kvistberg/mentor-platform/internal/modality"
)

func TestParseMessage(t *testing.T) {
	p := NewProcessor(slog.Default())

	msg, err := p.ParseMessage(
		"tutoring/raw/activity/learner-42",
		[]byte(`{"data": {"modality": "kinesthetic", "weight": 2.5, "subject": "physics", "timestamp": "2025-03-01T10:00:00Z"}}`),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.UserID != "learner-42" {
		t.Errorf("expected user learner-42, got %s", msg.UserID)
	}
	if msg.Point.Modality != modality.Kinesthetic {
		t.Errorf("expected kinesthetic, got %s", msg.Point.Modality)
	}
	if msg.Point.Weight != 2.5 {
		t.Errorf("expected weight 2.5, got %f", msg.Point.Weight)
	}
	if msg.Point.Subject != "physics" {
		t.Errorf("expected subject physics, got %s", msg.Point.Subject)
	}
}

func TestParseMessage_Defaults(t *testing.T) {
	p := NewProcessor(slog.Default())

	msg, err := p.ParseMessage(
		"tutoring/raw/activity/learner-1",
		[]byte(`{"data": {"modality": "visual"}}`),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if msg.Point.Weight != 1.0 {
		t.Errorf("expected default weight 1.0, got %f", msg.Point.Weight)
	}
	if msg.Point.Subject != "" {
		t.Errorf("expected empty subject, got %s", msg.Point.Subject)
	}
	if msg.Point.Timestamp.IsZero() {
		t.Error("expected a default timestamp")
	}
}

func TestParseMessage_NegativeWeight(t *testing.T) {
	p := NewProcessor(slog.Default())

	msg, err := p.ParseMessage(
		"tutoring/raw/activity/learner-1",
		[]byte(`{"data": {"modality": "verbal", "weight": -0.5}}`),
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.Point.Weight != -0.5 {
		t.Errorf("disengagement signals must keep their sign, got %f", msg.Point.Weight)
	}
}

func TestParseMessage_RejectsUnknownModality(t *testing.T) {
	p := NewProcessor(slog.Default())

	tests := []struct {
		name    string
		payload string
	}{
		{"unknown value", `{"data": {"modality": "auditory"}}`},
		{"missing modality", `{"data": {"weight": 1}}`},
		{"wrong type", `{"data": {"modality": 7}}`},
		{"empty string", `{"data": {"modality": ""}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := p.ParseMessage("tutoring/raw/activity/learner-1", []byte(tt.payload))
			if err == nil {
				t.Error("expected rejection, got nil error")
			}
		})
	}
}

func TestParseMessage_InvalidTopic(t *testing.T) {
	p := NewProcessor(slog.Default())

	if _, err := p.ParseMessage("tutoring/raw", []byte(`{"data": {"modality": "visual"}}`)); err == nil {
		t.Error("expected error for short topic")
	}
}

func TestParseMessage_InvalidJSON(t *testing.T) {
	p := NewProcessor(slog.Default())

	if _, err := p.ParseMessage("tutoring/raw/activity/learner-1", []byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
