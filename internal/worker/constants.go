package worker

// Log messages for refresh worker operations
const (
	LogMsgRefreshWorkerStarted  = "Market refresh worker started"
	LogMsgRefreshCycleStarting  = "Market refresh cycle starting"
	LogMsgRefreshCycleCompleted = "Market refresh cycle completed"
	LogMsgRefreshBoardFailed    = "Market board refresh failed"
	LogMsgRefreshWorkerStopping = "Shutting down market refresh worker"
	LogMsgRefreshWorkerStopped  = "Market refresh worker shutdown complete"
	LogMsgRefreshWorkerTimeout  = "Market refresh worker shutdown timeout, a refresh may still be running"
)
