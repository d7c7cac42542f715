package bootstrap

// Log messages for application startup and shutdown
const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgShuttingDownServer         = "Shutting down server"
	LogMsgServerForcedShutdown       = "Server forced to shutdown"
	LogMsgServerStopped              = "Server stopped"
	LogMsgDatabaseClosed             = "Database pool closed"
)

// Error message templates
const (
	ErrMsgFailedRegisterMetrics = "failed to register metrics collector"
)
