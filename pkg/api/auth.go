// Package api defines the request and response shapes of the Linked Posts
// backend contract as consumed by this client. The backend is not under this
// project's control; these types mirror what it has been observed to send.
package api

// SignupRequest represents the body of POST /users/signup.
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	RePassword  string `json:"rePassword"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
}

// SigninRequest represents the body of POST /users/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest represents the body of PATCH /users/change-password.
type ChangePasswordRequest struct {
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// ErrorResponse is the error envelope. Some endpoints populate "error",
// others "message"; a few populate both.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Text returns whichever error field the backend filled in.
func (e ErrorResponse) Text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
