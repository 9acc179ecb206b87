package port

// Fields carries structured log data.
type Fields map[string]interface{}

// LoggerPort is the logging contract the core depends on.
type LoggerPort interface {
	Info(msg string, fields Fields)

	Warn(msg string, fields Fields)

	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)
	// WithFields returns a logger that adds fields to every entry.
	WithFields(fields Fields) LoggerPort
}
