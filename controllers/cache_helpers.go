package controllers

import (
	"context"

	"Scribbler/cache"
)

// invalidateFeedCache drops every cached feed page. Any post, like, or
// follow mutation can change some viewer's page, so invalidation is by
// prefix; misses just fall through to the database.
func invalidateFeedCache() {
	_ = cache.DeleteByPrefix(context.Background(), "feed:")
}
