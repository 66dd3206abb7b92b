package app

import (
	"strings"

	"github.com/hafilati/hafilati-be/model"
)

// PostFilter narrows a fetched list the way the console list views do:
// substring search over title/content plus exact-match facets. All
// clauses compose conjunctively.
type PostFilter struct {
	Search   string
	Category model.Category
	Audience model.Audience
}

func (f *PostFilter) Matches(post *model.AwarenessPost) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(post.Title), needle) &&
			!strings.Contains(strings.ToLower(post.Content), needle) {
			return false
		}
	}
	if f.Category != "" && post.Category != f.Category {
		return false
	}
	if f.Audience != "" && post.TargetAudience != f.Audience {
		return false
	}
	return true
}

// FilterPosts never returns a nil slice: list endpoints serialize [].
func FilterPosts(posts []*model.AwarenessPost, filter *PostFilter) []*model.AwarenessPost {
	filtered := []*model.AwarenessPost{}
	for _, post := range posts {
		if filter.Matches(post) {
			filtered = append(filtered, post)
		}
	}
	return filtered
}
