package llm

import (
	"net/http"
	"net/url"
	"time"
)

// newHTTPClient builds the client used for provider calls. Timeout is
// applied per request in Summarize; the client timeout is a backstop for
// calls without a deadline such as IsAvailable.
func newHTTPClient(config Config) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = proxyFunc(config.HTTPProxy, config.HTTPSProxy)

	timeout := time.Duration(config.Timeout) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout + 5*time.Second,
	}
}

// proxyFunc returns the configured proxies, falling back to the
// environment when none is set
func proxyFunc(httpProxy, httpsProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
