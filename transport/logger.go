package transport

import (
	"fmt"

	"github.com/companieshouse/chs.go/log"
)

// leveledLogger routes retryablehttp logging through the chs log
type leveledLogger struct{}

func (leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	log.Error(fmt.Errorf("%s", msg), logData(keysAndValues))
}

func (leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	log.Info(msg, logData(keysAndValues))
}

func (leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	log.Debug(msg, logData(keysAndValues))
}

func (leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	data := logData(keysAndValues)
	data["level"] = "warn"
	log.Info(msg, data)
}

func logData(keysAndValues []interface{}) log.Data {
	data := log.Data{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		data[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return data
}
