package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	clientUserAgent = "go-privacy-keeper-client"

	getRetryCount   = 2
	getRetryWait    = 200 * time.Millisecond
	getRetryMaxWait = 2 * time.Second
)

// HTTPClient is the resty client the command-line tool uses to reach the
// governance API. Only GET requests are retried, on transport errors and
// gateway statuses; mutating calls are sent exactly once.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client bound to baseURL. A zero
// timeout leaves requests unbounded.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", clientUserAgent).
		SetRetryCount(getRetryCount).
		SetRetryWaitTime(getRetryWait).
		SetRetryMaxWaitTime(getRetryMaxWait).
		AddRetryCondition(retryableGet)

	return &HTTPClient{Client: client}
}

func retryableGet(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil || resp.Request.Method != http.MethodGet {
		return false
	}
	if err != nil {
		return true
	}

	switch resp.StatusCode() {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
