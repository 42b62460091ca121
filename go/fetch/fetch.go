// Package fetch downloads Wycheproof test vector files.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/trustedfirmware/wpvectors/go/testvector"
)

var log = logrus.WithField("prefix", "fetch")

// ErrBadStatus is returned when the server answers with a non-2xx status.
var ErrBadStatus = errors.New("fetch: unexpected HTTP status")

type Options struct {
	Timeout      time.Duration
	Retries      int // after the first attempt
	RetryWaitMin time.Duration
	RetryWaitMax time.Duration
}

var DefaultOptions = Options{
	Timeout:      2 * time.Second,
	Retries:      2,
	RetryWaitMin: 500 * time.Millisecond,
	RetryWaitMax: 2 * time.Second,
}

type Fetcher struct {
	client *retryablehttp.Client
}

func New(opts Options) *Fetcher {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = opts.Timeout
	client.RetryMax = opts.Retries
	client.RetryWaitMin = opts.RetryWaitMin
	client.RetryWaitMax = opts.RetryWaitMax
	client.Logger = leveledLogger{log}
	return &Fetcher{client: client}
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch: invalid request for %q", rawURL)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch: failed to fetch %q", rawURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, errors.Wrapf(ErrBadStatus, "%q: %s", rawURL, resp.Status)
	}
	return resp, nil
}

// Fetch returns the body of rawURL.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch: error reading response body of %q", rawURL)
	}
	return body, nil
}

// FetchToFile stores the body of rawURL at path and returns its size. The
// file is removed again if the download fails.
func (f *Fetcher) FetchToFile(ctx context.Context, rawURL, path string) (n int64, err error) {
	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	fo, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return 0, errors.Wrapf(err, "fetch: failed to open %q for writing", path)
	}
	defer func() {
		if cerr := fo.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "fetch: failed to close %q", path)
		}
		if err != nil {
			os.Remove(path)
		}
	}()

	cw := testvector.NewCountingWriter(fo)
	if _, err = io.Copy(cw, resp.Body); err != nil {
		return cw.Written, errors.Wrapf(err, "fetch: error reading response body of %q", rawURL)
	}
	log.WithField("url", rawURL).Debugf("Fetched %d bytes", cw.Written)
	return cw.Written, nil
}

// leveledLogger routes retryablehttp's logging to logrus.
type leveledLogger struct {
	entry *logrus.Entry
}

var _ retryablehttp.LeveledLogger = leveledLogger{}

func (l leveledLogger) with(keysAndValues []interface{}) *logrus.Entry {
	fields := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return l.entry.WithFields(fields)
}

func (l leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Error(msg)
}

func (l leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Debug(msg)
}

func (l leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.with(keysAndValues).Warn(msg)
}
