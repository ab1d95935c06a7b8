package constants

import "time"

const (
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
	ExternalAPITimeout = 10 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

const (
	LiveFeedBuffer    = 16
	WSWriteTimeout    = 10 * time.Second
	WSPingInterval    = 30 * time.Second
	WSReadBufferSize  = 1024
	WSWriteBufferSize = 1024
)

const (
	WebhookMaxConnsPerHost = 16
	WebhookIdleConnTimeout = 1 * time.Minute
)
