package models

import (
	"time"

	"gorm.io/gorm"
)

// FeedPageSize is fixed; the original UI paginates in steps of ten.
const FeedPageSize = 10

type FeedQuery struct {
	ViewerID      uint
	OwnerID       uint // 0 means no owner filter
	FollowingOnly bool
	Page          int // 1-based; values below 1 are treated as 1
}

type FeedItem struct {
	ID             uint      `json:"id"`
	PublicID       string    `json:"public_id"`
	OwnerID        uint      `json:"owner_id"`
	AuthorUsername string    `json:"author_username"`
	Contents       string    `json:"contents"`
	Likes          int64     `json:"likes"`
	UserHasLiked   bool      `json:"user_has_liked"`
	CreatedAt      time.Time `json:"created_at"`
}

type FeedPage struct {
	Posts            []FeedItem `json:"posts"`
	TotalPages       int        `json:"total_pages"`
	CurrentPageCount int        `json:"current_page_count"`
}

// ComposeFeed builds one page of view-ready posts: filter, order, paginate,
// annotate. Ordering is creation time descending with id descending as the
// tie-break so pages are deterministic. Like-state is annotated per viewer
// with an EXISTS subquery and the author username comes from a join, so the
// page is a single SQL round-trip plus the count.
func ComposeFeed(db *gorm.DB, q FeedQuery) (*FeedPage, error) {
	if q.Page < 1 {
		q.Page = 1
	}

	filtered := func() *gorm.DB {
		query := db.Model(&Post{})
		if q.OwnerID != 0 {
			query = query.Where("posts.owner_id = ?", q.OwnerID)
		}
		if q.FollowingOnly {
			query = query.Where(
				"posts.owner_id IN (SELECT followed_id FROM follows WHERE follower_id = ?)",
				q.ViewerID,
			)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, err
	}

	items := []FeedItem{}
	err := filtered().
		Select(`posts.id, posts.public_id, posts.owner_id, users.username AS author_username,
			posts.contents, posts.likes,
			EXISTS(SELECT 1 FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS user_has_liked,
			posts.created_at`, q.ViewerID).
		Joins("JOIN users ON users.id = posts.owner_id").
		Order("posts.created_at DESC, posts.id DESC").
		Offset((q.Page - 1) * FeedPageSize).
		Limit(FeedPageSize).
		Scan(&items).Error
	if err != nil {
		return nil, err
	}

	totalPages := int((total + FeedPageSize - 1) / FeedPageSize)

	return &FeedPage{
		Posts:            items,
		TotalPages:       totalPages,
		CurrentPageCount: len(items),
	}, nil
}
