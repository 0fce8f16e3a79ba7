package cache

import (
	"fmt"
	"time"
)

const (
	homeFeedKey    = "feed:home:p1"
	groupKeyPrefix = "group:%s"
	userKeyPrefix  = "user:%s"
)

const (
	// HomeFeedTTL bounds how long a newly created post may be missing from
	// the home feed: the fragment is never purged on writes, only expired.
	HomeFeedTTL = 20 * time.Second
	GroupTTL    = 10 * time.Minute
	UserTTL     = 5 * time.Minute
)

// HomeFeedKey is the fixed key for the rendered first page of the home feed.
// The feed is not parameterized by viewer, so all viewers share one entry.
func HomeFeedKey() string {
	return homeFeedKey
}

// GroupKey caches the group record behind a slug lookup; invalidated when
// the group is deleted.
func GroupKey(slug string) string {
	return fmt.Sprintf(groupKeyPrefix, slug)
}

// UserKey caches the user record behind a profile lookup; invalidated when
// the user is updated.
func UserKey(username string) string {
	return fmt.Sprintf(userKeyPrefix, username)
}
