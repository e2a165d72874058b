package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BlogAuthor struct {
	Id          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string         `gorm:"type:varchar(255);not null"`
	Title       string         `gorm:"type:varchar(255);not null;default:'Author'"`
	Bio         string         `gorm:"type:text"`
	AvatarURL   *string        `gorm:"type:text"`
	SocialLinks datatypes.JSON `gorm:"type:jsonb"`
	UserId      *uuid.UUID     `gorm:"type:uuid;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (BlogAuthor) TableName() string {
	return "blog_authors"
}
