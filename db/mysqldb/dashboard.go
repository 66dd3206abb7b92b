package mysqldb

import (
	"context"
	"time"

	"github.com/hafilati/hafilati-be/model"

	"github.com/upper/db/v4"
)

type DashboardDB struct {
	sess db.Session
}

func getDashboardDB(sess db.Session) *DashboardDB {
	return &DashboardDB{sess}
}

// GetDashboardStats runs the stat-card aggregates in one round trip.
func (ddb *DashboardDB) GetDashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	row, err := ddb.sess.SQL().QueryRowContext(ctx, `
SELECT
	(SELECT COUNT(*) FROM school),
	(SELECT COUNT(*) FROM guardian),
	(SELECT COUNT(*) FROM student),
	(SELECT COUNT(*) FROM van),
	(SELECT COUNT(*) FROM driver),
	(SELECT COUNT(*) FROM awareness_post WHERE is_published = 0 AND scheduled_at IS NULL),
	(SELECT COUNT(*) FROM awareness_post WHERE is_published = 0 AND scheduled_at IS NOT NULL),
	(SELECT COUNT(*) FROM awareness_post WHERE is_published = 1),
	(SELECT COALESCE(SUM(views), 0) FROM awareness_post)
`)
	if err != nil {
		return nil, err
	}
	stats := &model.DashboardStats{RefreshedAt: time.Now()}
	if err := row.Scan(
		&stats.Schools,
		&stats.Guardians,
		&stats.Students,
		&stats.Vans,
		&stats.Drivers,
		&stats.DraftPosts,
		&stats.ScheduledPosts,
		&stats.PublishedPosts,
		&stats.TotalPostViews,
	); err != nil {
		return nil, err
	}
	return stats, nil
}
