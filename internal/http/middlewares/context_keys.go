package middlewares

// gin context keys shared across middlewares and handler helpers.
const (
	CtxRequestID = "request_id"
	CtxUserID    = "auth.userID"
	CtxUser      = "auth.user"
)
