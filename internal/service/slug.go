package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/maheshrc27/dagbok/internal/repository"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugStrip  = regexp.MustCompile(`[^\w\s-]`)
	slugSpaces = regexp.MustCompile(`\s+`)
	slugDashes = regexp.MustCompile(`-{2,}`)
)

const (
	fallbackSlug  = "post"
	maxSlugSuffix = 100
)

// Slugify lowercases s, folds accents and joins words with single dashes.
func Slugify(s string) string {
	// Transformers are stateful, so the chain is built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, strings.ToLower(s))
	if err != nil {
		folded = strings.ToLower(s)
	}

	slug := slugStrip.ReplaceAllString(folded, "")
	slug = slugSpaces.ReplaceAllString(strings.TrimSpace(slug), "-")
	slug = slugDashes.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug returns base, or base-2, base-3 ... for the first value not
// taken by another post. current is the slug the post already owns.
func uniqueSlug(ctx context.Context, posts repository.PostRepository, base, current string) (string, error) {
	if base == "" {
		base = fallbackSlug
	}

	candidate := base
	for i := 2; i <= maxSlugSuffix+1; i++ {
		if candidate == current {
			return candidate, nil
		}
		exists, err := posts.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", fmt.Errorf("no free slug for %q", base)
}
