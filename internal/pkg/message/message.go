package message

const (
	InvalidUser      = "Invalid username or password"
	InvalidInput     = "Input data validation error"
	InvalidToken     = "Invalid or expired token."
	InvalidUserID    = "Invalid user ID"
	UnexpectedError  = "An unexpected error occurred."
	EnvErrFmt        = "environment variable is not set: %s"
	FmtErrStatusCode = "rec.Code = %d, want: %d"
)
