package domain

// --- Shared Custom Types ---

// Pagination
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int   `json:"totalPages"`
}

// NormalizePage clamps page/limit to sane values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// Response is the envelope some endpoints wrap their payload in.
type Response[T any] struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    T           `json:"data"`
	Meta    *Pagination `json:"meta,omitempty"`
}

// Claims is what the client can read out of its own access token.
type Claims struct {
	UserID string
	Email  string
	Role   string
}
