package jobs

const (
	// TaskDailyAdvice requests coaching advice for one check-in day. Issued
	// after the check-in is persisted; at most one per day per user.
	TaskDailyAdvice = "advice:daily"

	// TaskWeeklyReview runs the periodic recalibration review for a user.
	TaskWeeklyReview = "review:weekly"
)

type DailyAdvicePayload struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}

type WeeklyReviewPayload struct {
	UserID string `json:"user_id"`
	Date   string `json:"date"`
}
