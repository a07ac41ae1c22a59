package mqtt

import (
	"fmt"
	"strings"
)

// Topic constants for the tutoring platform
const (
	// Raw learner activity (input from the activity tracker)
	TopicRawActivity = "tutoring/raw/activity/+"

	// Processed activity triggers (output after the profile agent stores a point)
	TopicActivityBase = "tutoring/activity"

	// Explicit recompute-now requests from the host application
	TopicRecomputeTrigger = "tutoring/trigger/recompute/+"

	// Current learning style profile per learner (retained)
	TopicProfileBase = "tutoring/profile"

	// Chat request/response pair handled by the tutor agent
	TopicChatRequest  = "tutoring/chat/request/+"
	TopicChatResponse = "tutoring/chat/response"
)

// RawActivityTopic constructs a raw activity topic for a specific learner
// Pattern: tutoring/raw/activity/{user_id}
func RawActivityTopic(userID string) string {
	return fmt.Sprintf("tutoring/raw/activity/%s", userID)
}

// ActivityTriggerTopic constructs the processed activity topic for a learner
// Pattern: tutoring/activity/{user_id}
func ActivityTriggerTopic(userID string) string {
	return fmt.Sprintf("%s/%s", TopicActivityBase, userID)
}

// RecomputeTopic constructs the recompute trigger topic for a learner
// Pattern: tutoring/trigger/recompute/{user_id}
func RecomputeTopic(userID string) string {
	return fmt.Sprintf("tutoring/trigger/recompute/%s", userID)
}

// ProfileTopic constructs the retained profile topic for a learner
// Pattern: tutoring/profile/{user_id}
func ProfileTopic(userID string) string {
	return fmt.Sprintf("%s/%s", TopicProfileBase, userID)
}

// ChatResponseTopic constructs the chat response topic for a learner
// Pattern: tutoring/chat/response/{user_id}
func ChatResponseTopic(userID string) string {
	return fmt.Sprintf("%s/%s", TopicChatResponse, userID)
}

// UserIDFromTopic extracts the trailing user id segment from a topic.
// Returns an empty string when the topic has no user segment.
func UserIDFromTopic(topic string) string {
	idx := strings.LastIndex(topic, "/")
	if idx < 0 || idx == len(topic)-1 {
		return ""
	}
	return topic[idx+1:]
}
