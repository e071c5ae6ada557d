package source

import (
	"bytes"
	"context"
	"mime"
	"net/url"
	"strings"
	"time"

	"github.com/matzehuels/rxtimeline/pkg/httputil"
	rxio "github.com/matzehuels/rxtimeline/pkg/io"
)

// RemoteTimeout bounds a single HTTP fetch.
const RemoteTimeout = 30 * time.Second

// Remote loads a dataset published over HTTP.
type Remote struct {
	URL string
	// Format overrides the format inferred from the Content-Type or the
	// URL path.
	Format rxio.Format
	Client *httputil.Client
}

func (r Remote) Name() string { return r.URL }

func (r Remote) Load(ctx context.Context) (rxio.Dataset, error) {
	c := r.Client
	if c == nil {
		c = httputil.NewClient(RemoteTimeout)
	}
	body, ctype, err := c.Fetch(ctx, r.URL)
	if err != nil {
		return rxio.Dataset{}, err
	}
	f := r.Format
	if f == "" {
		f = remoteFormat(r.URL, ctype)
	}
	return rxio.Read(bytes.NewReader(body), f)
}

// IsHTTPURL reports whether uri is an http or https URL.
func IsHTTPURL(uri string) bool {
	return strings.HasPrefix(uri, "https://") || strings.HasPrefix(uri, "http://")
}

func remoteFormat(raw, ctype string) rxio.Format {
	if mt, _, err := mime.ParseMediaType(ctype); err == nil {
		switch mt {
		case "text/csv":
			return rxio.FormatCSV
		case "application/json":
			return rxio.FormatJSON
		}
	}
	if u, err := url.Parse(raw); err == nil {
		return rxio.FormatOf(u.Path)
	}
	return rxio.FormatJSON
}
