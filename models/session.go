package models

// Session is the result of a successful sign-in: a fresh bearer token and
// the public view of the account.
type Session struct {
	Token Token
	User  PublicUser
}

// Registration is the result of creating an account. RecoveryKey is the only
// copy of the plaintext Recovery Key; it is not stored anywhere.
type Registration struct {
	Session
	RecoveryKey string
}
