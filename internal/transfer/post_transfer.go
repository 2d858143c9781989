package transfer

import "github.com/maheshrc27/dagbok/internal/models"

// PostCreation is the JSON body of create and update requests. Pointer fields
// distinguish "absent" from "empty" for partial updates.
type PostCreation struct {
	Title         *string   `json:"title"`
	Content       *string   `json:"content"`
	Category      *string   `json:"category"`
	Slug          *string   `json:"slug"`
	Author        *string   `json:"author"`
	Published     *bool     `json:"published"`
	Tags          *[]string `json:"tags"`
	FeaturedImage *string   `json:"featuredImage"`
}

// PostQuery carries the list filters of GET /api/posts. A nil Published
// lists published posts.
type PostQuery struct {
	Category  string
	Search    string
	Tag       string
	Published *bool
	Page      int
	Limit     int
}

type Pagination struct {
	Total      int  `json:"total"`
	Page       int  `json:"page"`
	Limit      int  `json:"limit"`
	TotalPages int  `json:"totalPages"`
	HasMore    bool `json:"hasMore"`
}

func NewPagination(total, page, limit int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (total + limit - 1) / limit
	}
	return Pagination{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}
}

type PostListItem struct {
	*models.Post
	Excerpt string `json:"excerpt"`
}

type PostList struct {
	Posts      []PostListItem `json:"posts"`
	Pagination Pagination     `json:"pagination"`
}
