package redisrepo

import "fmt"

const (
	POST_LOCK_KEY = "post-lock:%s" // <postID>
)

func PostLockKey(postID string) string {
	return fmt.Sprintf(POST_LOCK_KEY, postID)
}
