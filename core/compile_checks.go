package core

import glog "github.com/goliatone/go-logger/glog"

var (
	_ DocumentService = (*Service)(nil)
	_ ListService     = (*Service)(nil)
	_ ListItemService = (*Service)(nil)
	_ TokenIssuer     = (*Service)(nil)

	_ MetricsRecorder = NopMetricsRecorder{}

	_ Logger         = glog.Nop()
	_ LoggerProvider = glog.ProviderFromLogger(glog.Nop())
)
