package app

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hafilati/hafilati-be/model"
)

func filterPosts() []*model.AwarenessPost {
	return []*model.AwarenessPost{
		{Id: 1, Title: "Van Safety Week", Content: "<p>Buckle up</p>", Category: model.CategorySafety, TargetAudience: model.AudienceAll},
		{Id: 2, Title: "Flu season", Content: "<p>Wash hands before PICKUP</p>", Category: model.CategoryHealth, TargetAudience: model.AudienceGuardians},
		{Id: 3, Title: "Road works on 5th", Content: "<p>Expect delays</p>", Category: model.CategoryTraffic, TargetAudience: model.AudienceDrivers},
	}
}

func filteredIds(posts []*model.AwarenessPost) []int64 {
	ids := make([]int64, len(posts))
	for i, post := range posts {
		ids[i] = post.Id
	}
	return ids
}

func TestFilterSearchIsCaseInsensitiveSubstring(t *testing.T) {
	got := FilterPosts(filterPosts(), &PostFilter{Search: "sAfEtY"})
	assert.Equal(t, []int64{1}, filteredIds(got))

	// matches content as well as title
	got = FilterPosts(filterPosts(), &PostFilter{Search: "pickup"})
	assert.Equal(t, []int64{2}, filteredIds(got))
}

func TestFilterCategoryAndAudienceAreExactMatch(t *testing.T) {
	got := FilterPosts(filterPosts(), &PostFilter{Category: model.CategoryTraffic})
	assert.Equal(t, []int64{3}, filteredIds(got))

	got = FilterPosts(filterPosts(), &PostFilter{Audience: model.AudienceGuardians})
	assert.Equal(t, []int64{2}, filteredIds(got))

	// no substring matching on facets
	got = FilterPosts(filterPosts(), &PostFilter{Category: "TRAF"})
	assert.Empty(t, got)
}

func TestFilterClausesComposeConjunctively(t *testing.T) {
	got := FilterPosts(filterPosts(), &PostFilter{
		Search:   "season",
		Category: model.CategoryHealth,
		Audience: model.AudienceGuardians,
	})
	assert.Equal(t, []int64{2}, filteredIds(got))

	got = FilterPosts(filterPosts(), &PostFilter{
		Search:   "season",
		Category: model.CategoryTraffic,
	})
	assert.Empty(t, got)
}

func TestFilterPostsNeverReturnsNil(t *testing.T) {
	got := FilterPosts(nil, &PostFilter{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	got := FilterPosts(filterPosts(), &PostFilter{})
	assert.Len(t, got, 3)
}
