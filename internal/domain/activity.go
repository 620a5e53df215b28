package domain

// ActivityInfo is the summary projection of an activity used by list views.
// Time and CreatedAt stay raw wire strings; formatting happens at render time
// and falls back to the raw value when the string does not parse.
type ActivityInfo struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Time             string   `json:"time"`
	Location         string   `json:"location"`
	Tags             []string `json:"tags"`
	CreatorID        int      `json:"creator_id,omitempty"`
	CreatorName      string   `json:"creator_name"`
	CreatedAt        string   `json:"created_at,omitempty"`
	CreatorAvatarURL string   `json:"creator_avatar_url,omitempty"`
}

// ActivityDetail is the full activity record returned by get_activity_by_id
type ActivityDetail struct {
	ID               int      `json:"id"`
	Title            string   `json:"title"`
	Time             string   `json:"time"`
	Location         string   `json:"location"`
	Tags             []string `json:"tags"`
	Description      string   `json:"description"`
	CreatorID        int      `json:"creator_id"`
	CreatorName      string   `json:"creator_name"`
	CreatedAt        string   `json:"created_at,omitempty"`
	CreatorAvatarURL string   `json:"creator_avatar_url,omitempty"`
}

// ParticipationInfo describes an activity the user was accepted into
type ParticipationInfo struct {
	ActivityID  int      `json:"activity_id"`
	Title       string   `json:"title"`
	Time        string   `json:"time"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
	CreatorName string   `json:"creator_name"`
}
