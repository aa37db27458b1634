package store

import (
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	apperrors "blogspace-client/pkg/errors"
)

// loginInput gates what reaches the network. The server validates too;
// this only catches the obviously malformed before a round trip.
type loginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type signupInput struct {
	Name     string `validate:"required,min=2,max=100"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// Login signs the user in. Returns false on any failure; the failure
// itself is surfaced through the alert facade and the shared Error slot.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	if err := s.validate.Struct(loginInput{Email: email, Password: password}); err != nil {
		s.fail(apperrors.NewValidationError("Please enter a valid email and a password of at least 6 characters"))
		s.alerter.Error("Login Failed", "Please enter a valid email and a password of at least 6 characters")
		return false
	}

	s.setLoading(true)
	user, err := s.gateway.Login(ctx, email, password)
	if err != nil {
		s.fail(err)
		s.alerter.Error("Login Failed", userMessage(err))
		return false
	}

	if user.Avatar == "" {
		user.Avatar = placeholderAvatar(user.Name)
	}
	s.mutate(func(st *State) {
		st.User = user
		st.IsAuthenticated = true
		st.Loading = false
		st.Error = ""
	})
	s.logger.Info("user signed in", zap.String("userId", user.ID), zap.String("role", string(user.Role)))
	s.alerter.ToastSuccess(fmt.Sprintf("Welcome back, %s!", user.Name))
	return true
}

// Signup registers a new account and signs it in. Same contract as
// Login.
func (s *Store) Signup(ctx context.Context, name, email, password string) bool {
	if err := s.validate.Struct(signupInput{Name: name, Email: email, Password: password}); err != nil {
		s.fail(apperrors.NewValidationError("Please fill in all fields correctly"))
		s.alerter.Error("Signup Failed", "Please fill in all fields correctly")
		return false
	}

	s.setLoading(true)
	user, err := s.gateway.Signup(ctx, name, email, password)
	if err != nil {
		s.fail(err)
		s.alerter.Error("Signup Failed", userMessage(err))
		return false
	}

	if user.Avatar == "" {
		user.Avatar = placeholderAvatar(user.Name)
	}
	s.mutate(func(st *State) {
		st.User = user
		st.IsAuthenticated = true
		st.Loading = false
		st.Error = ""
	})
	s.alerter.ToastSuccess(fmt.Sprintf("Welcome to BlogSpace, %s!", user.Name))
	return true
}

// Logout asks for confirmation, then ends the session. The server call
// is best effort; local state clears regardless so a dead server cannot
// hold a session open.
func (s *Store) Logout(ctx context.Context) {
	if !s.alerter.Confirm("Log out?", "You will need to sign in again to continue.") {
		return
	}

	if err := s.gateway.Logout(ctx); err != nil {
		s.logger.Warn("server logout failed, clearing local session anyway", zap.Error(err))
	}
	s.tokens.ClearTokens()
	s.mutate(func(st *State) {
		st.User = nil
		st.IsAuthenticated = false
		st.Error = ""
	})
	s.alerter.ToastSuccess("You have been logged out")
}

// UpdateUser saves profile edits. The local user is only replaced with
// the server's echo, never optimistically.
func (s *Store) UpdateUser(ctx context.Context, updates map[string]interface{}) bool {
	current := s.Snapshot().User
	if current == nil {
		s.alerter.Error("Not Signed In", "Please log in to update your profile")
		return false
	}

	s.setLoading(true)
	user, err := s.gateway.UpdateProfile(ctx, current.ID, updates)
	if err != nil {
		s.fail(err)
		s.alerter.Error("Update Failed", userMessage(err))
		return false
	}

	if user.Avatar == "" {
		user.Avatar = placeholderAvatar(user.Name)
	}
	s.mutate(func(st *State) {
		st.User = user
		st.Loading = false
		st.Error = ""
	})
	s.alerter.ToastSuccess("Profile updated")
	return true
}

// userMessage extracts the human-facing message from any error.
func userMessage(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil {
		return appErr.UserMessage()
	}
	return "Something went wrong. Please try again."
}

// placeholderAvatar derives a stable generated-avatar URL from a name,
// matching the service the views already use for absent avatars.
func placeholderAvatar(name string) string {
	return "https://ui-avatars.com/api/?background=random&name=" + url.QueryEscape(name)
}
