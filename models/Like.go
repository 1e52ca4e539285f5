package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Like existence IS the liked state; there is no boolean column. The
// composite unique index makes duplicate rows impossible even when two
// toggles for the same pair race.
type Like struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"user_id"`
	PostID    uint      `gorm:"not null;index;uniqueIndex:idx_likes_user_post" json:"post_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

type LikeToggleResult struct {
	IsNowLiked bool  `json:"is_now_liked"`
	TotalLikes int64 `json:"total_likes"`
}

// ToggleLike flips the like relation for (userID, postID) and refreshes the
// post's denormalized counter from the authoritative like count. The whole
// read-modify-write runs in one transaction: the OnConflict-guarded create
// doubles as the existence check, so concurrent toggles on the same pair
// cannot both insert.
func ToggleLike(db *gorm.DB, userID, postID uint) (*LikeToggleResult, error) {
	result := &LikeToggleResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		like := Like{UserID: userID, PostID: postID}
		created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if created.Error != nil {
			return created.Error
		}

		if created.RowsAffected == 0 {
			// Already liked, so this toggle removes it.
			if err := tx.Where("user_id = ? AND post_id = ?", userID, postID).
				Delete(&Like{}).Error; err != nil {
				return err
			}
			result.IsNowLiked = false
		} else {
			result.IsNowLiked = true
		}

		// Recompute from the like table rather than incrementing, so the
		// counter can never drift from the rows it summarizes.
		var total int64
		if err := tx.Model(&Like{}).Where("post_id = ?", postID).Count(&total).Error; err != nil {
			return err
		}
		if err := tx.Model(&Post{}).Where("id = ?", postID).
			UpdateColumn("likes", total).Error; err != nil {
			return err
		}
		result.TotalLikes = total
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// HasLiked reports whether the pair exists at query time.
func HasLiked(db *gorm.DB, userID, postID uint) (bool, error) {
	var count int64
	err := db.Model(&Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func CountPostLikes(db *gorm.DB, postID uint) (int64, error) {
	var total int64
	err := db.Model(&Like{}).Where("post_id = ?", postID).Count(&total).Error
	return total, err
}
