package withdrawal

import "fmt"

var (
	ErrRequestNotFound      = fmt.Errorf("withdrawal request not found")
	ErrInvalidRequestState  = fmt.Errorf("withdrawal request is not pending")
	ErrRequestPersistFailed = fmt.Errorf("could not record withdrawal request")
	ErrAccessDenied         = fmt.Errorf("access denied")
)
