package metricsim

import "time"

// Logger implements logger abstraction
type Logger interface {
	Debug(args ...interface{})
	Debugf(format string, args ...interface{})
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Error(args ...interface{})
	Errorf(format string, args ...interface{})
	Fatal(args ...interface{})
	Fatalf(format string, args ...interface{})
	Warning(args ...interface{})
	Warningf(format string, args ...interface{})

	String(key, value string) Logger
	Int(key string, value int) Logger
	Int64(key string, value int64) Logger
	Fields(fields map[string]interface{}) Logger
	Level(string) (Logger, error)
	Clone() Logger
}

// Clock is an interface to work with time.
type Clock interface {
	NowUTC() time.Time
	NowUnix() int64
}
