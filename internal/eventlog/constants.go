package eventlog

// Log messages
const (
	LogMsgFailedToEncodePayload = "Failed to encode event payload, skipping log"
	LogMsgFailedToLogEvent      = "Failed to log event to database"
	LogMsgEventLogged           = "Event logged to database"
	LogMsgCleanupJobStarting    = "Starting event log cleanup job"
	LogMsgCleanupJobFailed      = "Event log cleanup failed"
	LogMsgCleanupJobCompleted   = "Event log cleanup completed"
)

// DefaultRetentionDays is how long audit rows are kept before cleanup.
const DefaultRetentionDays = 90
