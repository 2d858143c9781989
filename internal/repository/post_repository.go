package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lib/pq"
	"github.com/maheshrc27/dagbok/internal/models"
)

type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	List(ctx context.Context, filters models.PostFilters, limit, skip int) ([]*models.Post, error)
	Count(ctx context.Context, filters models.PostFilters) (int, error)
	Update(ctx context.Context, post *models.Post) error
	Remove(ctx context.Context, id int64) (bool, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

const postColumns = "id, title, content, slug, category, author, author_email, published, tags, featured_image, created_at, updated_at"

func scanPost(row rowScanner) (*models.Post, error) {
	var post models.Post
	err := row.Scan(&post.ID, &post.Title, &post.Content, &post.Slug, &post.Category, &post.Author,
		&post.AuthorEmail, &post.Published, &post.Tags, &post.FeaturedImage, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// insertPost inserts post through q, which may be the pool or a transaction.
func insertPost(ctx context.Context, q queryRower, post *models.Post) error {
	query := `
		INSERT INTO posts (title, content, slug, category, author, author_email, published, tags, featured_image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRowContext(ctx, query, post.Title, post.Content, post.Slug, post.Category, post.Author,
		post.AuthorEmail, post.Published, post.Tags, post.FeaturedImage).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		slog.Info(err.Error())
		return uniqueViolation(err)
	}
	return nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	if err := insertPost(ctx, r.db, post); err != nil {
		return 0, err
	}
	return post.ID, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE id = $1"
	post, err := scanPost(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	query := "SELECT " + postColumns + " FROM posts WHERE slug = $1"
	post, err := scanPost(r.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}
	return post, nil
}

func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	query := "SELECT 1 FROM posts WHERE slug = $1"

	var result int
	err := r.db.QueryRowContext(ctx, query, slug).Scan(&result)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}

	return result == 1, nil
}

// postWhere renders filters as a WHERE clause with positional args.
func postWhere(filters models.PostFilters) (string, []any) {
	var conds []string
	var args []any

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filters.Published != nil {
		add("published = $%d", *filters.Published)
	}
	if filters.Category != "" {
		add("category = $%d", filters.Category)
	}
	if filters.AuthorEmail != "" {
		add("author_email = $%d", filters.AuthorEmail)
	}
	if len(filters.Tags) > 0 {
		add("tags && $%d", pq.StringArray(filters.Tags))
	}
	if filters.Search != "" {
		args = append(args, "%"+escapeLike(filters.Search)+"%")
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", len(args), len(args)))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func (r *postRepository) List(ctx context.Context, filters models.PostFilters, limit, skip int) ([]*models.Post, error) {
	where, args := postWhere(filters)
	args = append(args, limit, skip)
	query := fmt.Sprintf("SELECT %s FROM posts%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		postColumns, where, len(args)-1, len(args))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postRepository) Count(ctx context.Context, filters models.PostFilters) (int, error) {
	where, args := postWhere(filters)

	var total int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM posts"+where, args...).Scan(&total)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET title = $1,
			content = $2,
			slug = $3,
			category = $4,
			published = $5,
			tags = $6,
			featured_image = $7,
			updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, post.Title, post.Content, post.Slug, post.Category, post.Published,
		post.Tags, post.FeaturedImage, post.ID).Scan(&post.UpdatedAt)
	if err != nil {
		slog.Info(err.Error())
		return uniqueViolation(err)
	}
	return nil
}

func (r *postRepository) Remove(ctx context.Context, id int64) (bool, error) {
	query := `DELETE FROM posts WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return false, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
