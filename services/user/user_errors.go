package user_service

import "fmt"

var (
	ErrUserNotFound       = fmt.Errorf("user not found")
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("incorrect email or password")
	ErrUserBlocked        = fmt.Errorf("account is blocked")
)

type UserError struct {
	ErrorObj error
	UserID   string
	Other    []error
}

func (u *UserError) Error() string {
	return u.ErrorObj.Error()
}

func (u *UserError) Unwrap() error {
	return u.ErrorObj
}

func NewUserError(err error, userID string, e ...error) *UserError {
	return &UserError{
		ErrorObj: err,
		UserID:   userID,
		Other:    e,
	}
}
