package models

import (
	"time"

	"github.com/lib/pq"
)

type Post struct {
	ID            int64          `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Content       string         `db:"content" json:"content"`
	Slug          string         `db:"slug" json:"slug"`
	Category      string         `db:"category" json:"category"`
	Author        string         `db:"author" json:"author"`
	AuthorEmail   string         `db:"author_email" json:"authorEmail"`
	Published     bool           `db:"published" json:"published"`
	Tags          pq.StringArray `db:"tags" json:"tags"`
	FeaturedImage string         `db:"featured_image" json:"featuredImage,omitempty"`
	CreatedAt     time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updatedAt"`
}

// PostFilters narrows List and Count. Zero values mean "no filter".
type PostFilters struct {
	Published   *bool
	Category    string
	AuthorEmail string
	Tags        []string
	Search      string
}
