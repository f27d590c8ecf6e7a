package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment represents a comment on a post in the Brainwave application.
// The foreign key on PostID keeps comments from outliving their post.
type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Content   string         `gorm:"not null" json:"content"`
	Options   *PostOptions   `gorm:"serializer:json" json:"options,omitempty"`
	AuthorID  uint           `gorm:"not null;index" json:"author_id"`
	PostID    uint           `gorm:"not null;index" json:"post_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author"`
	Post      Post           `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
