package app

import (
	"context"
	"time"

	appDb "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/model"
	"github.com/hafilati/hafilati-be/util"
)

// PageCursor pages the public published feed by (createdAt, id)
// descending keyset. A nil cursor means the first page.
type PageCursor struct {
	LastDate time.Time `json:"lastDate"`
	LastId   int64     `json:"lastId"`
}

type PostPage struct {
	Posts  []*model.AwarenessPost `json:"posts"`
	Cursor *PageCursor            `json:"cursor"`
}

// CursorFromParams parses the before/lastId query params. Both empty
// means first page.
func CursorFromParams(beforeStr, lastIdStr string) (*PageCursor, error) {
	if beforeStr == "" {
		return nil, nil
	}
	before, err := util.ParseTime(beforeStr)
	if err != nil {
		return nil, err
	}
	cursor := &PageCursor{LastDate: before}
	if lastIdStr != "" {
		lastId, httpErr := util.ParseId(lastIdStr)
		if httpErr != nil {
			return nil, httpErr
		}
		cursor.LastId = lastId
	}
	return cursor, nil
}

// NextPostsPage fetches one page of posts in the given lifecycle state
// and builds the cursor for the page after it.
func NextPostsPage(ctx context.Context, database appDb.AwarenessDatabase, state model.PostState,
	cursor *PageCursor, limit int16) (*PostPage, error) {
	query := &appDb.AwarenessListQuery{
		State: state,
		Limit: limit,
	}
	if cursor != nil {
		query.From = &cursor.LastDate
		query.LastId = cursor.LastId
	}
	posts, err := database.GetAwarenessPosts(ctx, query)
	if err != nil {
		return nil, err
	}
	return &PostPage{
		Posts:  posts,
		Cursor: buildCursorForNextPage(posts),
	}, nil
}

func buildCursorForNextPage(previousPosts []*model.AwarenessPost) *PageCursor {
	if len(previousPosts) == 0 {
		return nil
	}
	last := previousPosts[len(previousPosts)-1]
	return &PageCursor{
		LastDate: last.CreatedAt,
		LastId:   last.Id,
	}
}
