package utils

import "time"

// Context keys shared by middleware and handlers.
const (
	LoggerKey    = "logger"
	RequestIDKey = "requestId"
)

// RequestIDHeader carries the request id in and out of the service.
const RequestIDHeader = "X-Request-ID"

// HealthCheckInterval is how often backing services are probed.
const HealthCheckInterval = 60 * time.Second
