package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/rxtimeline/pkg/buildinfo"
	"github.com/matzehuels/rxtimeline/pkg/errors"
)

// MaxBodyBytes caps the size of a fetched document.
const MaxBodyBytes = 32 << 20

// Client fetches documents over HTTP.
type Client struct {
	HTTP    *http.Client
	Backoff Backoff
	// Header is sent with every request.
	Header http.Header
}

// NewClient returns a Client whose requests time out after timeout.
func NewClient(timeout time.Duration) *Client {
	h := http.Header{}
	h.Set("User-Agent", "rxtimeline/"+buildinfo.Version)
	return &Client{
		HTTP:    &http.Client{Timeout: timeout},
		Backoff: DefaultBackoff,
		Header:  h,
	}
}

// Fetch GETs url and returns the body and its Content-Type.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, string, error) {
	var body []byte
	var ctype string
	err := c.Backoff.Retry(ctx, func() error {
		var err error
		body, ctype, err = c.get(ctx, url)
		return err
	})
	if re, ok := err.(*RetryableError); ok {
		err = re.Err
	}
	if err != nil {
		return nil, "", err
	}
	return body, ctype, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "request %s", url)
	}
	for k, v := range c.Header {
		req.Header[k] = v
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", ctx.Err()
		}
		return nil, "", &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url)}
	}
	defer resp.Body.Close()

	if err := checkStatus(url, resp.StatusCode); err != nil {
		return nil, "", err
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes+1))
	if err != nil {
		return nil, "", &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url)}
	}
	if len(body) > MaxBodyBytes {
		return nil, "", errors.New(errors.ErrCodeInvalidInput, "%s is larger than %d bytes", url, MaxBodyBytes)
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func checkStatus(url string, code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s: %s", url, http.StatusText(code))
	case code == http.StatusTooManyRequests, code >= 500:
		return &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "%s: status %d", url, code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "%s: status %d", url, code)
	}
}
