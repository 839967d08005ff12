package model

// Account represents a registered user.
type Account struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username"`
	Password string `json:"password" db:"password"`
}

// Message represents a short text post attributed to an account.
type Message struct {
	ID       int64  `json:"id" db:"id"`
	PostedBy int64  `json:"posted_by" db:"posted_by"`
	Text     string `json:"text" db:"text"`
	PostedAt int64  `json:"posted_at" db:"posted_at"`
}
