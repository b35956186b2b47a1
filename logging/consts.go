package logging

const (
	// LoggerFieldName is the field carrying the handle name set by Named.
	LoggerFieldName = "logger"

	// TimestampLayout is the layout of the time field on every record.
	TimestampLayout = "2006-01-02 15:04:05,000"
	// DateLayout is the layout of the date embedded in log file names.
	DateLayout = "2006-01-02"

	// EnvPrefix is prepended to every environment variable read by LoadConfig.
	EnvPrefix = "SCAFFOLD_"

	FormatText = "text"
	FormatJSON = "json"

	logFileExt  = ".log"
	emptyString = ""
)

const (
	errMsgNilConfig     = "Logging config is nil."
	errMsgNilService    = "Logger service is nil."
	errMsgConfigInvalid = "Logging configuration is invalid."
	errMsgEnvInvalid    = "Logging environment variables are invalid."
	errMsgNoChannels    = "No logging channels enabled."
	errMsgLogDir        = "Failed to create logs directory."
	errMsgLogFile       = "Failed to open log file."
	errMsgCloseFile     = "Failed to close log file."
)
