package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the process-wide structured logger. The AI core logs planning
// decisions at debug level; nothing in the core logs above warn because no
// planning failure is fatal (worst case an actor idles for a turn).
var Log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:          false,
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
	})
	l.SetLevel(levelFromEnv())
	return l
}

// levelFromEnv reads DELVEMIND_LOG_LEVEL. Default is warn so test output and
// batch reports stay readable.
func levelFromEnv() logrus.Level {
	raw := os.Getenv("DELVEMIND_LOG_LEVEL")
	if raw == "" {
		return logrus.WarnLevel
	}
	level, err := logrus.ParseLevel(raw)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}
