package controllers

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hafilati/hafilati-be/db"
)

type fakeSweepDB struct {
	db.AwarenessDatabase
	sweeps []time.Time
	count  int64
	err    error
}

func (f *fakeSweepDB) PublishDueAwarenessPosts(ctx context.Context, now time.Time) (int64, error) {
	f.sweeps = append(f.sweeps, now)
	return f.count, f.err
}

func TestAttemptToSweepPassesCurrentTime(t *testing.T) {
	fake := &fakeSweepDB{count: 2}
	publisher := &ScheduledPublisher{db: fake}
	before := time.Now()

	publisher.attemptToSweep(context.Background())

	assert.Len(t, fake.sweeps, 1)
	assert.False(t, fake.sweeps[0].Before(before))
}

func TestAttemptToSweepSwallowsStoreErrors(t *testing.T) {
	fake := &fakeSweepDB{err: errors.New("connection lost")}
	publisher := &ScheduledPublisher{db: fake}

	assert.NotPanics(t, func() {
		publisher.attemptToSweep(context.Background())
	})
	assert.Len(t, fake.sweeps, 1)
}

func TestScheduledPublisherStop(t *testing.T) {
	fake := &fakeSweepDB{}
	publisher := NewScheduledPublisher(context.Background(), fake)

	assert.NotPanics(t, publisher.Stop)
}
