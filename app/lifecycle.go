package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/hafilati/hafilati-be/db"
	"github.com/hafilati/hafilati-be/model"
)

// MinScheduleLead is the minimum gap between submission time and a
// post's scheduled publication time.
const MinScheduleLead = 20 * time.Minute

// StateOf derives the lifecycle state of a post. A published flag wins
// over a lingering scheduled date: external writers can leave both set,
// and viewers classify by publication first. The stored record is not
// repaired here.
func StateOf(post *model.AwarenessPost) model.PostState {
	if post.IsPublished {
		return model.PostStatePublished
	}
	if post.ScheduledAt != nil {
		return model.PostStateScheduled
	}
	return model.PostStateDraft
}

// ApplyPublishNow moves a post to the published state in place:
// published flag on, publication stamped, schedule cleared.
func ApplyPublishNow(post *model.AwarenessPost, now time.Time) {
	post.IsPublished = true
	publishedAt := now
	post.PublishedAt = &publishedAt
	post.ScheduledAt = nil
}

func ValidateSchedule(scheduledAt, now time.Time) error {
	if scheduledAt.Before(now.Add(MinScheduleLead)) {
		return fmt.Errorf("scheduled time must be at least %v minutes from now", int(MinScheduleLead.Minutes()))
	}
	return nil
}

type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for field, msg := range fe {
		parts = append(parts, fmt.Sprintf("%v: %v", field, msg))
	}
	return strings.Join(parts, "; ")
}

// ValidateWrite checks a create/update payload before anything touches
// the store. The schedule lead is computed against now so a slow client
// that validated earlier still fails here.
func ValidateWrite(req *db.WriteAwarenessPost, now time.Time) FieldErrors {
	errs := FieldErrors{}
	if strings.TrimSpace(req.Title) == "" {
		errs["title"] = "title is required"
	}
	if strings.TrimSpace(req.Content) == "" {
		errs["content"] = "content is required"
	}
	if strings.TrimSpace(string(req.Category)) == "" {
		errs["category"] = "category is required"
	} else if !validCategory(req.Category) {
		errs["category"] = fmt.Sprintf("unknown category %q", req.Category)
	}
	if strings.TrimSpace(string(req.TargetAudience)) == "" {
		errs["targetAudience"] = "target audience is required"
	} else if !validAudience(req.TargetAudience) {
		errs["targetAudience"] = fmt.Sprintf("unknown target audience %q", req.TargetAudience)
	}
	if !validPriority(req.Priority) {
		errs["priority"] = fmt.Sprintf("unknown priority %q", req.Priority)
	}
	if req.ScheduledAt != nil {
		if err := ValidateSchedule(*req.ScheduledAt, now); err != nil {
			errs["scheduledAt"] = err.Error()
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validCategory(category model.Category) bool {
	for _, known := range model.Categories {
		if category == known {
			return true
		}
	}
	return false
}

func validAudience(audience model.Audience) bool {
	for _, known := range model.Audiences {
		if audience == known {
			return true
		}
	}
	return false
}

func validPriority(priority model.Priority) bool {
	for _, known := range model.Priorities {
		if priority == known {
			return true
		}
	}
	return false
}
