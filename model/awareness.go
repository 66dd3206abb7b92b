package model

import (
	"time"
)

type Category string

const (
	CategorySafety  Category = "SAFETY"
	CategoryHealth           = "HEALTH"
	CategoryTraffic          = "TRAFFIC"
	CategoryEvents           = "EVENTS"
	CategoryGeneral          = "GENERAL"
)

var Categories = []Category{CategorySafety, CategoryHealth, CategoryTraffic, CategoryEvents, CategoryGeneral}

type Audience string

const (
	AudienceAll       Audience = "ALL"
	AudienceGuardians          = "GUARDIANS"
	AudienceDrivers            = "DRIVERS"
	AudienceVanOwners          = "VAN_OWNERS"
)

var Audiences = []Audience{AudienceAll, AudienceGuardians, AudienceDrivers, AudienceVanOwners}

type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium          = "MEDIUM"
	PriorityHigh            = "HIGH"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// PostState is the derived lifecycle state of an awareness post. It is
// never persisted: it is computed from IsPublished and ScheduledAt.
type PostState string

const (
	PostStateDraft     PostState = "DRAFT"
	PostStateScheduled PostState = "SCHEDULED"
	PostStatePublished PostState = "PUBLISHED"
)

type AwarenessPost struct {
	Id             int64      `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Content        string     `db:"content" json:"content"`
	Category       Category   `db:"category" json:"category"`
	TargetAudience Audience   `db:"target_audience" json:"targetAudience"`
	Priority       Priority   `db:"priority" json:"priority"`
	ImageUrl       string     `db:"image_url" json:"imageUrl,omitempty"`
	IsPublished    bool       `db:"is_published" json:"isPublished"`
	ScheduledAt    *time.Time `db:"scheduled_at" json:"scheduledAt,omitempty"`
	PublishedAt    *time.Time `db:"published_at" json:"publishedAt,omitempty"`
	AuthorId       string     `db:"author_id" json:"authorId"`
	Views          int64      `db:"views" json:"views"`
	CreatedAt      time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updatedAt"`
}
