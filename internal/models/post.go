package models

import (
	"time"

	"gorm.io/gorm"
)

// PostOptions holds optional presentation settings attached to a post or
// comment. Stored as a JSON column.
type PostOptions struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Post represents a post in the Brainwave application.
// AuthorID is immutable after creation; updates never touch it.
type Post struct {
	ID       uint         `gorm:"primaryKey" json:"id"`
	Content  string       `gorm:"type:text;not null" json:"content"`
	Options  *PostOptions `gorm:"serializer:json" json:"options,omitempty"`
	AuthorID uint         `gorm:"not null;index" json:"author_id"`
	Author   User         `gorm:"foreignKey:AuthorID" json:"author"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int            `gorm:"->" json:"comments_count"`
	Comments      []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
