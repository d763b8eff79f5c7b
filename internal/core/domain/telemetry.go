package domain

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Stage names recorded for each step of a build.
const (
	StageOutput   = "prepare OUTPUT"
	StageVerify   = "verify INPUT"
	StageSelect   = "select configuration"
	StageBuild    = "run build script"
	StageArtifact = "prepare ARTIFACT"
	StagePackage  = "package OUTPUT"
	StagePublish  = "publish artifact"
	StageLockfile = "write lockfile"
)
