package services

import "errors"

var (
	// ErrForbidden means the caller is authenticated but does not own the
	// resource it tried to mutate.
	ErrForbidden = errors.New("not the owner of this resource")

	// ErrEmptyComment means the comment text was empty after trimming.
	ErrEmptyComment = errors.New("comment text is empty")

	// ErrInvalidCredentials covers both unknown email and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken means the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
)
