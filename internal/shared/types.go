package shared

// Asynq task types. Format: "<domain>:<action>".
const (
	TypeModerationDecision      = "notification:moderation_decision"
	TypeApplicationStatus       = "notification:application_status"
	TypeMessageReceived         = "notification:message_received"
	TypeCleanupOldNotifications = "notification:cleanup_old"
	TypeCloseExpiredPostings    = "posting:close_expired"
)

// Queue names. Worker priorities are configured in cmd/worker.
const (
	QueueNotification = "notifications"
	QueuePosting      = "postings"
)

// Context keys set by AuthMiddleware.
const (
	CtxUserID   = "userID"
	CtxUserType = "userType"
	CtxRole     = "role"
)
