package moltbook

// Wire types for the Moltbook agent API. Field names follow the JSON the
// service returns; optional sections are pointers so absence is observable.

type Agent struct {
	Name string `json:"name"`
}

// Verification is the challenge block attached to a freshly created post or
// comment when the agent is not yet trusted.
type Verification struct {
	Code      string `json:"verification_code"`
	Challenge string `json:"challenge_text"`
}

type Post struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Content      string        `json:"content"`
	Submolt      string        `json:"submolt,omitempty"`
	Author       Agent         `json:"author"`
	Upvotes      int           `json:"upvotes"`
	CommentCount int           `json:"comment_count"`
	Verification *Verification `json:"verification,omitempty"`
}

type Comment struct {
	ID           string        `json:"id"`
	Content      string        `json:"content"`
	Author       Agent         `json:"author"`
	Verification *Verification `json:"verification,omitempty"`
}

type PostResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
	Post    *Post  `json:"post,omitempty"`

	// Filled in by PublishPost after the challenge round-trip.
	VerifyResult    *VerifyResult `json:"verification_result,omitempty"`
	AnswerSubmitted string        `json:"answer_submitted,omitempty"`
}

type CommentResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error,omitempty"`
	Message string   `json:"message,omitempty"`
	Comment *Comment `json:"comment,omitempty"`

	VerifyResult    *VerifyResult `json:"verification_result,omitempty"`
	AnswerSubmitted string        `json:"answer_submitted,omitempty"`
}

type VerifyResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Home is the agent dashboard returned by GET /home.
type Home struct {
	Account        Account        `json:"your_account"`
	Activity       []PostActivity `json:"activity_on_your_posts"`
	DirectMessages DMSummary      `json:"your_direct_messages"`
}

type Account struct {
	UnreadNotificationCount int `json:"unread_notification_count"`
}

type PostActivity struct {
	PostTitle            string   `json:"post_title"`
	NewNotificationCount int      `json:"new_notification_count"`
	LatestCommenters     []string `json:"latest_commenters"`
}

type DMSummary struct {
	UnreadMessageCount int `json:"unread_message_count"`
}

// FeedQuery selects a slice of the feed. Zero values are omitted from the
// query string.
type FeedQuery struct {
	Submolt string
	Sort    string
	Limit   int
}
