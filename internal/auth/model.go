package auth

// Identity is stored in the request context after token verification and
// discarded with the request.
type Identity struct {
	UserID string
}

// RegisterInput carries the validated registration fields into the service.
// Diabetes is already normalized to "Yes"/"No" by the caller.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Age      int
	Weight   int
	Diabetes string
}
