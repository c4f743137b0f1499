package normalizer

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("normalizer")

func debugf(format string, args ...interface{}) {
	if log.AllowLevel(commonlog.Debug) {
		log.Debugf(format, args...)
	}
}
