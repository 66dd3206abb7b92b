package model

import "time"

// DashboardStats feeds the stat cards on the admin console home screen.
type DashboardStats struct {
	Schools        int64     `json:"schools"`
	Guardians      int64     `json:"guardians"`
	Students       int64     `json:"students"`
	Vans           int64     `json:"vans"`
	Drivers        int64     `json:"drivers"`
	DraftPosts     int64     `json:"draftPosts"`
	ScheduledPosts int64     `json:"scheduledPosts"`
	PublishedPosts int64     `json:"publishedPosts"`
	TotalPostViews int64     `json:"totalPostViews"`
	RefreshedAt    time.Time `json:"refreshedAt"`
}
