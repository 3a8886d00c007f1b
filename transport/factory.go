package transport

import (
	"net/http"

	"github.com/goliatone/go-twilio-sync/core"
)

// Factory returns a core.TransportFactory that builds REST adapters over
// client. A nil client gets an http.Client using the configured request
// timeout.
func Factory(client HTTPDoer) core.TransportFactory {
	return func(cfg core.Config, signer core.Signer) core.TransportAdapter {
		doer := client
		if doer == nil {
			timeout := cfg.Transport.RequestTimeout
			if timeout <= 0 {
				timeout = defaultRESTClientTimeout
			}
			doer = &http.Client{Timeout: timeout}
		}
		adapter := NewRESTAdapter(doer)
		adapter.Signer = signer
		return adapter
	}
}
