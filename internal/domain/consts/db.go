package consts

// Tables
const (
	DBDownloads = "downloads"
	DBSettings  = "settings"
	DBProgram   = "program"
)

// Program
const (
	QProgID        = "id"
	QProgRunning   = "running"
	QProgPID       = "pid"
	QProgStartedAt = "started_at"
	QProgHeartbeat = "last_heartbeat"
	QProgHost      = "host"
)

// Downloads
const (
	QDLID         = "id"
	QDLRunID      = "run_id"
	QDLURL        = "url"
	QDLMode       = "mode"
	QDLSuccess    = "success"
	QDLMessage    = "message"
	QDLOutputPath = "output_path"
	QDLCreatedAt  = "created_at"
)

// Settings
const (
	QSetKey       = "key"
	QSetValue     = "value"
	QSetUpdatedAt = "updated_at"
)
