package specification

import "gorm.io/gorm"

// BySlug filters posts by their unique slug.
type BySlug struct {
	Slug string
}

func (s BySlug) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("slug = ?", s.Slug)
}

// PublishedOnly restricts the query to publicly visible posts.
type PublishedOnly struct{}

func (s PublishedOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_published = ?", true)
}

// TitleSearch performs a case-insensitive substring match on post titles.
type TitleSearch struct {
	Query string
}

func (s TitleSearch) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("title ILIKE ?", "%"+s.Query+"%")
}

// ByUser filters authors linked to a CMS user account.
type ByUser struct {
	UserId interface{}
}

func (s ByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserId)
}

// ByAuthor filters posts by author.
type ByAuthor struct {
	AuthorId interface{}
}

func (s ByAuthor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("author_id = ?", s.AuthorId)
}
