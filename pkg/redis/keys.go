package redis

import "fmt"

// Key construction helpers for the learner activity cache

// ActivityPointsKey returns the key for a learner's behavioral data points (list)
// Pattern: activity:points:{user_id}
func ActivityPointsKey(userID string) string {
	return fmt.Sprintf("activity:points:%s", userID)
}

// ActivityMetaKey returns the key for a learner's activity metadata (hash)
// Pattern: meta:activity:{user_id}
func ActivityMetaKey(userID string) string {
	return fmt.Sprintf("meta:activity:%s", userID)
}

// ProfileCacheKey returns the key for the last computed profile (string, JSON)
// Pattern: profile:current:{user_id}
func ProfileCacheKey(userID string) string {
	return fmt.Sprintf("profile:current:%s", userID)
}
