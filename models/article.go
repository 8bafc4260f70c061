package models

import "time"

type Publish string

const (
	PublishDraft     Publish = "draft"
	PublishPublished Publish = "publish"
)

type Article struct {
	ID          uint       `json:"id" gorm:"primarykey"`
	Title       string     `json:"title" gorm:"uniqueIndex;not null"`
	Slug        string     `json:"slug" gorm:"index;not null"`
	Content     string     `json:"content" gorm:"type:text"`
	Thumbnail   string     `json:"thumbnail"`
	AuthorID    uint       `json:"author_id" gorm:"not null"`
	Author      User       `json:"author" gorm:"foreignKey:AuthorID"`
	Categories  []Category `json:"categories" gorm:"many2many:article_categories;"`
	Publish     Publish    `json:"publish" gorm:"default:'draft'"`
	DatePublish *time.Time `json:"date_publish"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
