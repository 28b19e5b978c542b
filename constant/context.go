package constant

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	RequestIDKey contextKey = "request_id"
)

// AuthTokenHeader carries the bearer token on protected requests.
const AuthTokenHeader = "X-Auth-Token"
