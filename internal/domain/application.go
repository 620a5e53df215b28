package domain

// ApplicationStatus is the lifecycle state of a join application.
// The only legal transitions are pending -> accepted and pending -> rejected,
// and only the receiving user (the activity creator) triggers them.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

// Display returns the user-facing status text and its style class
func (s ApplicationStatus) Display() (text, class string) {
	switch s {
	case StatusPending:
		return "等待结果", "status-pending"
	case StatusAccepted:
		return "已接受", "status-accepted"
	case StatusRejected:
		return "已拒绝", "status-rejected"
	default:
		return string(s), ""
	}
}

// ApplicationInfo is an application the current user made, joined with the
// activity it targets
type ApplicationInfo struct {
	ApplicationID string            `json:"application_id"`
	ActivityID    int               `json:"activity_id"`
	Title         string            `json:"title"`
	Time          string            `json:"time"`
	Location      string            `json:"location"`
	Tags          []string          `json:"tags"`
	CreatorName   string            `json:"creator_name"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     string            `json:"created_at"`
}

// ReceivedApplicationInfo is an application someone else made to one of the
// current user's activities
type ReceivedApplicationInfo struct {
	ApplicationID string            `json:"application_id"`
	ActivityID    int               `json:"activity_id"`
	ActivityTitle string            `json:"activity_title"`
	UserID        int               `json:"user_id"`
	Username      string            `json:"username"`
	Status        ApplicationStatus `json:"status"`
	CreatedAt     string            `json:"created_at"`
}
