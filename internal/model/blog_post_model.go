package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BlogPost struct {
	Id            uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title         string     `gorm:"type:varchar(255);not null"`
	Slug          string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Content       string     `gorm:"type:text;not null"`
	Excerpt       string     `gorm:"type:text"`
	FeaturedImage *string    `gorm:"type:text"`
	IsPublished   bool       `gorm:"not null;default:false;index"`
	PublishedAt   *time.Time `gorm:"index"`
	AuthorId      uuid.UUID  `gorm:"type:uuid;not null;index"`

	Author *BlogAuthor `gorm:"foreignKey:AuthorId"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}
