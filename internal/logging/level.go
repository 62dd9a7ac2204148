package logging

import (
	"bytes"
	"strings"
)

// Level is the severity of a log entry.
type Level int

// Log levels, lowest first.
const (
	DEBUG Level = iota + 1
	INFO
	NOTICE
	WARN
	ERROR
	FATAL
)

const (
	levelDEBUG  = "DEBUG"
	levelINFO   = "INFO"
	levelNOTICE = "NOTICE"
	levelWARN   = "WARN"
	levelERROR  = "ERROR"
	levelFATAL  = "FATAL"
)

func (l Level) String() string {
	switch l {
	case DEBUG:
		return levelDEBUG
	case INFO:
		return levelINFO
	case NOTICE:
		return levelNOTICE
	case WARN:
		return levelWARN
	case ERROR:
		return levelERROR
	case FATAL:
		return levelFATAL
	default:
		return ""
	}
}

//nolint:gomnd // ANSI 256 color codes
func (l Level) color() uint {
	switch l {
	case ERROR, FATAL:
		return 160
	case WARN, NOTICE:
		return 220
	case INFO:
		return 6
	case DEBUG:
		return 8
	default:
		return 37
	}
}

// MarshalJSON writes the level as its name.
func (l Level) MarshalJSON() ([]byte, error) {
	buffer := bytes.NewBufferString(`"`)
	buffer.WriteString(l.String())
	buffer.WriteString(`"`)

	return buffer.Bytes(), nil
}

// GetLevelFromString maps a level name to a Level. Unknown names map to INFO.
func GetLevelFromString(level string) Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case levelDEBUG:
		return DEBUG
	case levelINFO:
		return INFO
	case levelNOTICE:
		return NOTICE
	case levelWARN:
		return WARN
	case levelERROR:
		return ERROR
	case levelFATAL:
		return FATAL
	default:
		return INFO
	}
}
