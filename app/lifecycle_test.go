package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/model"
)

func validWrite() *db.WriteAwarenessPost {
	return &db.WriteAwarenessPost{
		Title:          "Van safety week",
		Content:        "<p>Buckle up</p>",
		Category:       model.CategorySafety,
		TargetAudience: model.AudienceAll,
		Priority:       model.PriorityMedium,
	}
}

func TestStateOf(t *testing.T) {
	scheduledAt := time.Now().Add(time.Hour)
	publishedAt := time.Now()

	tests := []struct {
		name string
		post *model.AwarenessPost
		want model.PostState
	}{
		{"draft", &model.AwarenessPost{}, model.PostStateDraft},
		{"scheduled", &model.AwarenessPost{ScheduledAt: &scheduledAt}, model.PostStateScheduled},
		{"published", &model.AwarenessPost{IsPublished: true, PublishedAt: &publishedAt}, model.PostStatePublished},
		// external data can violate the exclusivity invariant; the
		// published flag wins classification
		{"published wins over lingering schedule", &model.AwarenessPost{
			IsPublished: true,
			ScheduledAt: &scheduledAt,
		}, model.PostStatePublished},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StateOf(tt.post))
		})
	}
}

func TestApplyPublishNow(t *testing.T) {
	scheduledAt := time.Now().Add(time.Hour)
	post := &model.AwarenessPost{
		Title:       "Gate change",
		ScheduledAt: &scheduledAt,
	}
	invokedAt := time.Now()

	ApplyPublishNow(post, time.Now())

	assert.True(t, post.IsPublished)
	assert.Nil(t, post.ScheduledAt)
	require.NotNil(t, post.PublishedAt)
	assert.False(t, post.PublishedAt.Before(invokedAt))
	assert.Equal(t, model.PostStatePublished, StateOf(post))
}

func TestApplyPublishNowKeepsStateExclusive(t *testing.T) {
	scheduledAt := time.Now().Add(time.Hour)
	post := &model.AwarenessPost{ScheduledAt: &scheduledAt}

	ApplyPublishNow(post, time.Now())

	// at most one of {scheduled, published} after any transition
	assert.False(t, post.ScheduledAt != nil && post.IsPublished)
}

func TestValidateSchedule(t *testing.T) {
	now := time.Now()

	assert.Error(t, ValidateSchedule(now.Add(10*time.Minute), now))
	assert.Error(t, ValidateSchedule(now.Add(-time.Hour), now))
	assert.NoError(t, ValidateSchedule(now.Add(30*time.Minute), now))
	assert.NoError(t, ValidateSchedule(now.Add(MinScheduleLead), now))
}

func TestValidateWriteAcceptsValidPayload(t *testing.T) {
	assert.Nil(t, ValidateWrite(validWrite(), time.Now()))
}

func TestValidateWriteRequiredFields(t *testing.T) {
	now := time.Now()

	req := validWrite()
	req.Title = "   "
	errs := ValidateWrite(req, now)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "title")

	req = validWrite()
	req.Content = ""
	errs = ValidateWrite(req, now)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "content")

	req = validWrite()
	req.Category = ""
	req.TargetAudience = ""
	errs = ValidateWrite(req, now)
	require.NotNil(t, errs)
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "targetAudience")
}

func TestValidateWriteUnknownEnums(t *testing.T) {
	req := validWrite()
	req.Category = "GOSSIP"
	req.TargetAudience = "ALIENS"
	req.Priority = "URGENT"

	errs := ValidateWrite(req, time.Now())

	require.NotNil(t, errs)
	assert.Contains(t, errs, "category")
	assert.Contains(t, errs, "targetAudience")
	assert.Contains(t, errs, "priority")
}

func TestValidateWriteScheduleLead(t *testing.T) {
	now := time.Now()

	req := validWrite()
	tooSoon := now.Add(10 * time.Minute)
	req.ScheduledAt = &tooSoon
	errs := ValidateWrite(req, now)
	require.NotNil(t, errs)
	assert.Contains(t, errs["scheduledAt"], "at least 20 minutes")

	req = validWrite()
	farEnough := now.Add(30 * time.Minute)
	req.ScheduledAt = &farEnough
	assert.Nil(t, ValidateWrite(req, now))
}
