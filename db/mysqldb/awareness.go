package mysqldb

import (
	"context"
	"database/sql"
	"time"

	db2 "github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/model"

	"github.com/upper/db/v4"
)

type AwarenessDB struct {
	sess db.Session
}

func getAwarenessDB(sess db.Session) *AwarenessDB {
	return &AwarenessDB{sess}
}

var awarenessColumns = []interface{}{
	"id",
	"title",
	"content",
	"category",
	"target_audience",
	"priority",
	"image_url",
	"is_published",
	"scheduled_at",
	"published_at",
	"author_id",
	"views",
	"created_at",
	"updated_at",
}

func (adb *AwarenessDB) CreateAwarenessPost(ctx context.Context, req *db2.CreateAwarenessPost) (int64, error) {
	res, err := adb.sess.SQL().
		InsertInto("awareness_post").
		Columns("title", "content", "category", "target_audience", "priority",
			"image_url", "scheduled_at", "author_id").
		Values(req.Title, req.Content, req.Category, req.TargetAudience, req.Priority,
			req.ImageUrl, req.ScheduledAt, req.AuthorId).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (adb *AwarenessDB) GetAwarenessPostById(ctx context.Context, id int64) (*model.AwarenessPost, error) {
	var post model.AwarenessPost
	if err := adb.sess.SQL().
		Select(awarenessColumns...).
		From("awareness_post").
		Where("id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (adb *AwarenessDB) GetAwarenessPosts(ctx context.Context, query *db2.AwarenessListQuery) ([]*model.AwarenessPost, error) {
	selector := adb.sess.SQL().
		Select(awarenessColumns...).
		From("awareness_post")

	switch query.State {
	case model.PostStateDraft:
		// scheduled rows also carry is_published=0, so drafts must
		// exclude them explicitly
		selector = selector.Where("is_published = ? AND scheduled_at IS NULL", false)
	case model.PostStateScheduled:
		selector = selector.Where("is_published = ? AND scheduled_at IS NOT NULL", false)
	case model.PostStatePublished:
		selector = selector.Where("is_published = ?", true)
	}

	if query.From != nil {
		selector = selector.And("(created_at < ? OR (created_at = ? AND id < ?))",
			query.From, query.From, query.LastId)
	}

	limit := int(query.Limit)
	if limit <= 0 {
		limit = 100
	}

	var posts []*model.AwarenessPost
	if err := selector.
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		IteratorContext(ctx).
		All(&posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []*model.AwarenessPost{}
	}
	return posts, nil
}

func (adb *AwarenessDB) UpdateAwarenessPost(ctx context.Context, id int64, req *db2.UpdateAwarenessPost) error {
	return adb.sess.TxContext(ctx, func(sess db.Session) error {
		if req.ExpectedUpdatedAt != nil {
			row, err := sess.SQL().QueryRowContext(ctx,
				`SELECT updated_at FROM awareness_post WHERE id = ? FOR UPDATE`, id)
			if err != nil {
				return err
			}
			var updatedAt time.Time
			if err := row.Scan(&updatedAt); err != nil {
				return err
			}
			if !updatedAt.Equal(*req.ExpectedUpdatedAt) {
				return db2.ErrStaleRecord
			}
		}
		_, err := sess.SQL().
			Update("awareness_post").
			Set(
				"title", req.Title,
				"content", req.Content,
				"category", req.Category,
				"target_audience", req.TargetAudience,
				"priority", req.Priority,
				"image_url", req.ImageUrl,
				"scheduled_at", req.ScheduledAt,
			).
			Where("id = ?", id).
			ExecContext(ctx)
		return err
	}, &sql.TxOptions{})
}

func (adb *AwarenessDB) PublishAwarenessPost(ctx context.Context, id int64, at time.Time) error {
	_, err := adb.sess.SQL().
		Update("awareness_post").
		Set(
			"is_published", true,
			"published_at", at,
			"scheduled_at", nil,
		).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

// PublishDueAwarenessPosts promotes every scheduled post whose
// scheduled_at has elapsed, in one statement so the lifecycle invariant
// holds even if the process dies mid-sweep.
func (adb *AwarenessDB) PublishDueAwarenessPosts(ctx context.Context, now time.Time) (int64, error) {
	res, err := adb.sess.SQL().ExecContext(ctx, db.Raw(`
UPDATE awareness_post
	SET is_published = 1, published_at = ?, scheduled_at = NULL
	WHERE is_published = 0 AND scheduled_at IS NOT NULL AND scheduled_at <= ?
`, now, now))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (adb *AwarenessDB) DeleteAwarenessPost(ctx context.Context, id int64) error {
	_, err := adb.sess.SQL().
		DeleteFrom("awareness_post").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

func (adb *AwarenessDB) IncrementAwarenessPostViews(ctx context.Context, id int64) error {
	_, err := adb.sess.SQL().
		Update("awareness_post").
		Set("views = views + 1").
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}
