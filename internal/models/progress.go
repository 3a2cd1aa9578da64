package models

// CourseProgress is the computed completion state of one course for one user.
// Recomputed from the current tree on every request, so watched records that
// reference lessons removed by a rebuild just don't count.
type CourseProgress struct {
	CourseID       string  `json:"course_id"`
	UserID         string  `json:"user_id"`
	CompletedItems int     `json:"completed_items"`
	TotalItems     int     `json:"total_items"`
	CompletionPct  float32 `json:"completion_pct"` // 0-100
	IsCompleted    bool    `json:"is_completed"`
}

// CatalogStats gives a rough picture of what the system is holding.
// Served by the admin stats endpoint.
type CatalogStats struct {
	Courses      int `json:"courses"`
	Lessons      int `json:"lessons"`
	Users        int `json:"users"`
	CachedViews  int `json:"cached_views"`  // live entries in the view-url cache
	WatchedTotal int `json:"watched_total"` // watched records across all users
}
