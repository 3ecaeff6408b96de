package llm

import (
	"net/http"
	"net/url"
	"testing"
	"time"
)

func TestProxyFunc(t *testing.T) {
	fn := proxyFunc("http://proxy:8080", "http://secure-proxy:8443")

	httpsReq := &http.Request{URL: &url.URL{Scheme: "https", Host: "api.openai.com"}}
	got, err := fn(httpsReq)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if got.Host != "secure-proxy:8443" {
		t.Errorf("expected HTTPS proxy, got %s", got.Host)
	}

	httpReq := &http.Request{URL: &url.URL{Scheme: "http", Host: "localhost:11434"}}
	got, err = fn(httpReq)
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if got.Host != "proxy:8080" {
		t.Errorf("expected HTTP proxy, got %s", got.Host)
	}
}

func TestNewHTTPClient_Timeout(t *testing.T) {
	c := newHTTPClient(Config{Timeout: 10})
	if c.Timeout != 15*time.Second {
		t.Errorf("expected 15s client timeout, got %v", c.Timeout)
	}

	c = newHTTPClient(Config{})
	if c.Timeout != 35*time.Second {
		t.Errorf("expected default 35s client timeout, got %v", c.Timeout)
	}
}
