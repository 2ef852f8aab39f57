package auth

const maskChar = "*"

const (
	MsgPasswordMismatch         = "New password and confirmation do not match"
	MsgPasswordUnchanged        = "New password must be different from current password"
	MsgCurrentPasswordIncorrect = "Current password is incorrect"
)
