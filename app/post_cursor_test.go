package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appDb "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/model"
)

type stubAwarenessDB struct {
	appDb.AwarenessDatabase
	lastQuery *appDb.AwarenessListQuery
	posts     []*model.AwarenessPost
}

func (s *stubAwarenessDB) GetAwarenessPosts(ctx context.Context, query *appDb.AwarenessListQuery) ([]*model.AwarenessPost, error) {
	s.lastQuery = query
	return s.posts, nil
}

func TestCursorFromParams(t *testing.T) {
	cursor, err := CursorFromParams("", "")
	require.NoError(t, err)
	assert.Nil(t, cursor)

	cursor, err = CursorFromParams("2024-03-01T10:00:00Z", "42")
	require.NoError(t, err)
	require.NotNil(t, cursor)
	assert.Equal(t, int64(42), cursor.LastId)
	assert.Equal(t, 2024, cursor.LastDate.Year())

	_, err = CursorFromParams("yesterday", "")
	assert.Error(t, err)
}

func TestNextPostsPageBuildsCursorFromLastPost(t *testing.T) {
	first := time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
	second := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	db := &stubAwarenessDB{posts: []*model.AwarenessPost{
		{Id: 7, CreatedAt: first},
		{Id: 3, CreatedAt: second},
	}}

	page, err := NextPostsPage(context.Background(), db, model.PostStatePublished, nil, 2)

	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	require.NotNil(t, page.Cursor)
	assert.Equal(t, int64(3), page.Cursor.LastId)
	assert.Equal(t, second, page.Cursor.LastDate)
	assert.Equal(t, model.PostStatePublished, db.lastQuery.State)
	assert.Nil(t, db.lastQuery.From)
}

func TestNextPostsPagePassesCursorToQuery(t *testing.T) {
	db := &stubAwarenessDB{}
	lastDate := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

	page, err := NextPostsPage(context.Background(), db, model.PostStatePublished,
		&PageCursor{LastDate: lastDate, LastId: 3}, 2)

	require.NoError(t, err)
	require.NotNil(t, db.lastQuery.From)
	assert.Equal(t, lastDate, *db.lastQuery.From)
	assert.Equal(t, int64(3), db.lastQuery.LastId)
	// empty page means the feed is exhausted
	assert.Nil(t, page.Cursor)
}
