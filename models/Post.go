package models

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MaxPostLength bounds scribble contents in code points, not bytes.
const MaxPostLength = 280

type Post struct {
	ID        uint      `gorm:"primary_key;autoIncrement" json:"id"`
	PublicID  string    `gorm:"type:uuid;uniqueIndex;column:public_id" json:"public_id"`
	OwnerID   uint      `gorm:"not null;index:idx_posts_owner_created,priority:1" json:"owner_id"`
	Owner     User      `gorm:"foreignKey:OwnerID" json:"-"`
	Contents  string    `gorm:"size:280;not null" json:"contents"`
	Likes     int64     `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_posts_owner_created,priority:2" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if strings.TrimSpace(p.PublicID) == "" {
		p.PublicID = uuid.NewString()
	}
	return nil
}

func (p *Post) Prepare() {
	p.Contents = html.EscapeString(strings.TrimSpace(p.Contents))
	p.Owner = User{}
}

func (p *Post) Validate() map[string]string {
	var errorMessages = make(map[string]string)

	if p.Contents == "" {
		errorMessages["Required_contents"] = "Required Contents"
	}
	if utf8.RuneCountInString(p.Contents) > MaxPostLength {
		errorMessages["Invalid_contents"] = "Contents should be at most 280 characters"
	}
	return errorMessages
}

func (p *Post) SavePost(db *gorm.DB) (*Post, error) {
	// The id, like counter, and timestamps are server-assigned; whatever was
	// bound from a request body is discarded before the insert.
	p.ID = 0
	p.Likes = 0
	p.CreatedAt = time.Time{}
	p.UpdatedAt = time.Time{}
	if err := db.Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindPostByID(db *gorm.DB, pid uint) (*Post, error) {
	var post Post
	err := db.Where("id = ?", pid).Take(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateContents replaces the post body only. Creation time and the
// denormalized like counter are never touched here; the counter belongs to
// the like toggle.
func (p *Post) UpdateContents(db *gorm.DB) (*Post, error) {
	err := db.Model(&Post{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"contents":   p.Contents,
		"updated_at": time.Now(),
	}).Error
	if err != nil {
		return nil, err
	}
	err = db.Where("id = ?", p.ID).Take(&p).Error
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Post) FindUserPosts(db *gorm.DB, uid uint) (*[]Post, error) {
	var posts []Post
	result := db.Where("owner_id = ?", uid).
		Order("created_at desc, id desc").
		Limit(100).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return &posts, nil
}

// CountUserPosts backs the profile endpoint.
func CountUserPosts(db *gorm.DB, uid uint) (int64, error) {
	var total int64
	err := db.Model(&Post{}).Where("owner_id = ?", uid).Count(&total).Error
	return total, err
}
