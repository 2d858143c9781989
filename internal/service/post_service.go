package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"
	"github.com/maheshrc27/dagbok/internal/models"
	"github.com/maheshrc27/dagbok/internal/repository"
	"github.com/maheshrc27/dagbok/internal/richtext"
	"github.com/maheshrc27/dagbok/internal/transfer"
)

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
	defaultAuthor    = "User"
)

type PostService interface {
	List(ctx context.Context, viewerEmail string, q transfer.PostQuery) (*transfer.PostList, error)
	Create(ctx context.Context, authorEmail, authorName string, pc *transfer.PostCreation) (*models.Post, error)
	GetByID(ctx context.Context, id int64, viewerEmail string) (*models.Post, error)
	GetBySlug(ctx context.Context, slug, viewerEmail string) (*models.Post, error)
	Update(ctx context.Context, id int64, viewerEmail string, pc *transfer.PostCreation) (*models.Post, error)
	Remove(ctx context.Context, id int64, viewerEmail string) error
}

type postService struct {
	pr repository.PostRepository
}

func NewPostService(pr repository.PostRepository) PostService {
	return &postService{pr: pr}
}

// NormalizePage clamps page to >= 1 and limit to [1, MaxPageLimit], using
// DefaultPageLimit for a zero limit.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return page, limit
}

func (s *postService) List(ctx context.Context, viewerEmail string, q transfer.PostQuery) (*transfer.PostList, error) {
	page, limit := NormalizePage(q.Page, q.Limit)

	filters := models.PostFilters{
		Category: strings.TrimSpace(q.Category),
		Search:   strings.TrimSpace(q.Search),
	}
	if tag := strings.TrimSpace(q.Tag); tag != "" {
		filters.Tags = []string{tag}
	}

	published := true
	if q.Published != nil && !*q.Published {
		// Drafts are only ever listed for their author.
		if viewerEmail == "" {
			return nil, ErrUnauthorized
		}
		published = false
		filters.AuthorEmail = viewerEmail
	}
	filters.Published = &published

	posts, err := s.pr.List(ctx, filters, limit, (page-1)*limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	total, err := s.pr.Count(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}

	items := make([]transfer.PostListItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, transfer.PostListItem{Post: p, Excerpt: richtext.Excerpt(p.Content)})
	}

	return &transfer.PostList{
		Posts:      items,
		Pagination: transfer.NewPagination(total, page, limit),
	}, nil
}

func value(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

func cleanTags(tags []string) pq.StringArray {
	out := pq.StringArray{}
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// preparePost validates pc and builds the post to insert, without a slug.
func preparePost(authorEmail, authorName string, pc *transfer.PostCreation) (*models.Post, error) {
	if authorEmail == "" {
		return nil, ErrUnauthorized
	}
	if pc == nil {
		pc = &transfer.PostCreation{}
	}

	var missing []string
	if value(pc.Title) == "" {
		missing = append(missing, "title")
	}
	if value(pc.Content) == "" {
		missing = append(missing, "content")
	}
	if value(pc.Category) == "" {
		missing = append(missing, "category")
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Key: "errors.missingFields", Message: "missing required fields", Fields: missing}
	}

	author := value(pc.Author)
	if author == "" {
		author = strings.TrimSpace(authorName)
	}
	if author == "" {
		author = defaultAuthor
	}

	post := &models.Post{
		Title:         value(pc.Title),
		Content:       richtext.Sanitize(*pc.Content),
		Category:      value(pc.Category),
		Author:        author,
		AuthorEmail:   authorEmail,
		Published:     pc.Published != nil && *pc.Published,
		Tags:          pq.StringArray{},
		FeaturedImage: value(pc.FeaturedImage),
	}
	if pc.Tags != nil {
		post.Tags = cleanTags(*pc.Tags)
	}
	return post, nil
}

func slugBase(pc *transfer.PostCreation, title string) string {
	if base := Slugify(value(pc.Slug)); base != "" {
		return base
	}
	return Slugify(title)
}

func (s *postService) Create(ctx context.Context, authorEmail, authorName string, pc *transfer.PostCreation) (*models.Post, error) {
	post, err := preparePost(authorEmail, authorName, pc)
	if err != nil {
		return nil, err
	}
	base := slugBase(pc, post.Title)

	// Retry once if a concurrent insert took the slug.
	for attempt := 0; attempt < 2; attempt++ {
		post.Slug, err = uniqueSlug(ctx, s.pr, base, "")
		if err != nil {
			return nil, err
		}
		_, err = s.pr.Create(ctx, post)
		if !errors.Is(err, repository.ErrDuplicate) {
			break
		}
		slog.Info("slug taken during insert, retrying", "slug", post.Slug)
	}
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	return post, nil
}

func visible(post *models.Post, viewerEmail string) bool {
	return post.Published || (viewerEmail != "" && post.AuthorEmail == viewerEmail)
}

func (s *postService) GetByID(ctx context.Context, id int64, viewerEmail string) (*models.Post, error) {
	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil || !visible(post, viewerEmail) {
		return nil, ErrNotFound
	}
	return post, nil
}

func (s *postService) GetBySlug(ctx context.Context, slug, viewerEmail string) (*models.Post, error) {
	post, err := s.pr.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil || !visible(post, viewerEmail) {
		return nil, ErrNotFound
	}
	return post, nil
}

// owned loads a post for modification by viewerEmail.
func (s *postService) owned(ctx context.Context, id int64, viewerEmail string) (*models.Post, error) {
	if viewerEmail == "" {
		return nil, ErrUnauthorized
	}
	post, err := s.pr.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if post.AuthorEmail != viewerEmail {
		slog.Info("post modification denied", "post_id", id, "email", viewerEmail)
		return nil, ErrForbidden
	}
	return post, nil
}

func (s *postService) Update(ctx context.Context, id int64, viewerEmail string, pc *transfer.PostCreation) (*models.Post, error) {
	post, err := s.owned(ctx, id, viewerEmail)
	if err != nil {
		return nil, err
	}
	if pc == nil {
		return post, nil
	}

	var empty []string
	if pc.Title != nil && value(pc.Title) == "" {
		empty = append(empty, "title")
	}
	if pc.Content != nil && value(pc.Content) == "" {
		empty = append(empty, "content")
	}
	if pc.Category != nil && value(pc.Category) == "" {
		empty = append(empty, "category")
	}
	if len(empty) > 0 {
		return nil, &ValidationError{Key: "errors.missingFields", Message: "missing required fields", Fields: empty}
	}

	if pc.Content != nil {
		post.Content = richtext.Sanitize(*pc.Content)
	}
	if pc.Category != nil {
		post.Category = value(pc.Category)
	}
	if pc.Published != nil {
		post.Published = *pc.Published
	}
	if pc.Tags != nil {
		post.Tags = cleanTags(*pc.Tags)
	}
	if pc.FeaturedImage != nil {
		post.FeaturedImage = value(pc.FeaturedImage)
	}

	// The slug only follows the title when the title changes.
	if pc.Title != nil && value(pc.Title) != post.Title {
		post.Title = value(pc.Title)
		post.Slug, err = uniqueSlug(ctx, s.pr, slugBase(pc, post.Title), post.Slug)
		if err != nil {
			return nil, err
		}
	}

	if err := s.pr.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (s *postService) Remove(ctx context.Context, id int64, viewerEmail string) error {
	if _, err := s.owned(ctx, id, viewerEmail); err != nil {
		return err
	}

	removed, err := s.pr.Remove(ctx, id)
	if err != nil {
		return fmt.Errorf("remove post: %w", err)
	}
	if !removed {
		return ErrNotFound
	}
	return nil
}
