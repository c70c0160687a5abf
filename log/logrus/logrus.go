package logrus

import (
	"github.com/sirupsen/logrus"
	"github.com/unkn0wn-root/asidecache"
)

// LogrusLogger forwards to a logrus entry. An error under the "err" field is
// attached with WithError so it lands under logrus.ErrorKey.
type LogrusLogger struct{ E *logrus.Entry }

var _ asidecache.Logger = LogrusLogger{}

func (l LogrusLogger) Debug(msg string, f asidecache.Fields) { l.entry(f).Debug(msg) }
func (l LogrusLogger) Info(msg string, f asidecache.Fields)  { l.entry(f).Info(msg) }
func (l LogrusLogger) Warn(msg string, f asidecache.Fields)  { l.entry(f).Warn(msg) }
func (l LogrusLogger) Error(msg string, f asidecache.Fields) { l.entry(f).Error(msg) }

func (l LogrusLogger) entry(f asidecache.Fields) *logrus.Entry {
	if len(f) == 0 {
		return l.E
	}
	fields := make(logrus.Fields, len(f))
	var errv error
	for k, v := range f {
		if err, ok := v.(error); ok && k == "err" {
			errv = err
			continue
		}
		fields[k] = v
	}
	e := l.E.WithFields(fields)
	if errv != nil {
		e = e.WithError(errv)
	}
	return e
}
