package domain

// UserProfile represents a user's full profile as returned by
// get_user_profile and get_user_by_id. Signature, bio and habits are
// optional and empty when the user never filled them in.
type UserProfile struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Bio       string `json:"bio,omitempty"`
	Signature string `json:"signature,omitempty"`
	Habits    string `json:"habits,omitempty"`
	CreatedAt string `json:"created_at"`
}

// SimpleUserInfo is the minimal projection used for participant lists and
// for opening a profile overlay by id
type SimpleUserInfo struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// ProfileUpdate is the payload of update_profile. AvatarURL is only set when
// a fresh avatar upload preceded the update.
type ProfileUpdate struct {
	Signature string `json:"signature"`
	Bio       string `json:"bio"`
	Habits    string `json:"habits"`
	AvatarURL string `json:"avatar_url,omitempty"`
}
