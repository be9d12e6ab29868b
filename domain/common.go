package domain

const (
	HeaderUserID = "X-User-Id"

	LocalsCaller = "caller"
)

var (
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageInternalError        = "an error occurred processing your request"

	ErrTokenNotFound  = NewError(KindUnauthenticated, "failed to token not found")
	ErrTokenExpired   = NewError(KindUnauthenticated, "token expired")
	ErrTokenInvalid   = NewError(KindUnauthenticated, "token invalid")
	ErrInvalidID      = NewError(KindValidation, "invalid id")
	ErrInvalidUserID  = NewError(KindValidation, "valid user ID is required")
	ErrAuthRequired   = NewError(KindUnauthenticated, "authentication required")
	ErrAdminRequired  = NewError(KindForbidden, "access denied, admin privileges required")
	ErrUserNotAllowed = NewError(KindForbidden, "user not allowed")
)

// Caller is the identity asserted by the current request. A zero UserID
// means the request carried no identity.
type Caller struct {
	UserID uint
}

func (c Caller) Authenticated() bool {
	return c.UserID != 0
}
