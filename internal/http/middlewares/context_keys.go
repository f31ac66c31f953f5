package middlewares

type ctxKey string

const (
	CtxUserID ctxKey = "auth.userID"
)
