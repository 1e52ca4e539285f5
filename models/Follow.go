package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Follow struct {
	ID         uint      `gorm:"primary_key;autoIncrement" json:"id"`
	FollowerID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique;index:idx_follows_follower_created,priority:1" json:"follower_id"`
	FollowedID uint      `gorm:"not null;index;uniqueIndex:idx_follows_unique;index:idx_follows_followed_created,priority:1" json:"followed_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index:idx_follows_followed_created,priority:2;index:idx_follows_follower_created,priority:2" json:"created_at"`
}

// ErrSelfFollow is returned before any mutation when a user tries to follow
// themselves. The follows_no_self_follow CHECK constraint backs this up at
// the database layer.
var ErrSelfFollow = errors.New("cannot follow yourself")

type FollowToggleResult struct {
	IsNowFollowing bool  `json:"is_now_following"`
	FollowerCount  int64 `json:"follower_count"`
	FollowingCount int64 `json:"following_count"`
}

// ToggleFollow flips the follow relation for (followerID, targetID) and
// recomputes the denormalized follower/following counters on both user rows
// from the follows table inside the same transaction. The returned counts
// are the TARGET's: its followers, and the accounts it follows.
func ToggleFollow(db *gorm.DB, followerID, targetID uint) (*FollowToggleResult, error) {
	if followerID == targetID {
		return nil, ErrSelfFollow
	}

	result := &FollowToggleResult{}

	err := db.Transaction(func(tx *gorm.DB) error {
		follow := Follow{FollowerID: followerID, FollowedID: targetID}
		created := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&follow)
		if created.Error != nil {
			return created.Error
		}

		if created.RowsAffected == 0 {
			if err := tx.Where("follower_id = ? AND followed_id = ?", followerID, targetID).
				Delete(&Follow{}).Error; err != nil {
				return err
			}
			result.IsNowFollowing = false
		} else {
			result.IsNowFollowing = true
		}

		if err := refreshFollowCounters(tx, targetID); err != nil {
			return err
		}
		if err := refreshFollowCounters(tx, followerID); err != nil {
			return err
		}

		var target User
		if err := tx.Select("followers_count", "following_count").
			Where("id = ?", targetID).Take(&target).Error; err != nil {
			return err
		}
		result.FollowerCount = target.FollowersCount
		result.FollowingCount = target.FollowingCount
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// refreshFollowCounters rewrites both counters from the follows table. The
// counters are a cache of these counts, never incremented in place.
func refreshFollowCounters(tx *gorm.DB, userID uint) error {
	var followers, following int64
	if err := tx.Model(&Follow{}).Where("followed_id = ?", userID).Count(&followers).Error; err != nil {
		return err
	}
	if err := tx.Model(&Follow{}).Where("follower_id = ?", userID).Count(&following).Error; err != nil {
		return err
	}
	return tx.Model(&User{}).Where("id = ?", userID).UpdateColumns(map[string]interface{}{
		"followers_count": followers,
		"following_count": following,
	}).Error
}

// IsFollowing reports whether the ordered pair exists.
func IsFollowing(db *gorm.DB, followerID, followedID uint) (bool, error) {
	var count int64
	err := db.Model(&Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func CountFollowers(db *gorm.DB, userID uint) (int64, error) {
	var total int64
	err := db.Model(&Follow{}).Where("followed_id = ?", userID).Count(&total).Error
	return total, err
}

func CountFollowing(db *gorm.DB, userID uint) (int64, error) {
	var total int64
	err := db.Model(&Follow{}).Where("follower_id = ?", userID).Count(&total).Error
	return total, err
}
