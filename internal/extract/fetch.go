package extract

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/claimlens/claimlens/internal/util"
)

// Fetcher retrieves web pages with a browser-like header set. TLS is
// verified on the first attempt; on a certificate failure the fetch is
// retried once without verification, with the trust downgrade logged.
type Fetcher struct {
	client         *http.Client
	insecureClient *http.Client
	userAgent      string
	maxBytes       int64
	robots         *util.RobotsChecker
	limiter        *DomainLimiter
}

// FetcherOptions configures a Fetcher
type FetcherOptions struct {
	Timeout       time.Duration
	UserAgent     string
	MaxBodyBytes  int64
	RespectRobots bool
	RatePerSecond float64
	RateBurst     int
}

// NewFetcher creates a page fetcher
func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 20 * time.Second
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 4_000_000
	}

	f := &Fetcher{
		client: &http.Client{Timeout: opts.Timeout},
		insecureClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBodyBytes,
	}

	if opts.RespectRobots {
		f.robots = util.NewRobotsChecker(opts.UserAgent, opts.Timeout)
	}
	if opts.RatePerSecond > 0 {
		f.limiter = NewDomainLimiter(opts.RatePerSecond, opts.RateBurst)
	}

	return f
}

// PageResult is the raw fetched page
type PageResult struct {
	Body       []byte
	FinalURL   string
	StatusCode int
	Domain     string
}

// Fetch retrieves the page body, classifying every failure into a
// FetchError. Robots disallow and rate limiting are best-effort politeness:
// a robots fetch failure allows the request.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*PageResult, *FetchError) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &FetchError{Kind: FailInvalidURL, Err: err}
	}

	if f.robots != nil && !f.robots.IsAllowed(ctx, rawURL) {
		fmt.Fprintf(os.Stderr, "Warning: robots.txt disallows fetching %s, proceeding is refused\n", rawURL)
		return nil, &FetchError{Kind: FailConnection, Err: fmt.Errorf("disallowed by robots.txt")}
	}

	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, &FetchError{Kind: FailTimeout, Err: err}
		}
	}

	resp, err := f.do(ctx, f.client, rawURL)
	if err != nil {
		if isTLSError(err) {
			fmt.Fprintf(os.Stderr, "Warning: SSL verification failed for %s, retrying without SSL verification...\n", parsed.Host)
			resp, err = f.do(ctx, f.insecureClient, rawURL)
			if err != nil {
				return nil, classifyFetchError(err)
			}
		} else {
			return nil, classifyFetchError(err)
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{Kind: FailHTTP, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, classifyFetchError(err)
	}

	return &PageResult{
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Domain:     parsed.Host,
	}, nil
}

func (f *Fetcher) do(ctx context.Context, client *http.Client, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Cache-Control", "max-age=0")

	return client.Do(req)
}

func isTLSError(err error) bool {
	var certErr *tls.CertificateVerificationError
	if errors.As(err, &certErr) {
		return true
	}
	var unknownAuthority x509.UnknownAuthorityError
	if errors.As(err, &unknownAuthority) {
		return true
	}
	var hostnameErr x509.HostnameError
	if errors.As(err, &hostnameErr) {
		return true
	}
	var invalidErr x509.CertificateInvalidError
	return errors.As(err, &invalidErr)
}

func classifyFetchError(err error) *FetchError {
	if isTLSError(err) {
		return &FetchError{Kind: FailSSL, Err: err}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &FetchError{Kind: FailTimeout, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &FetchError{Kind: FailTimeout, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &FetchError{Kind: FailConnection, Err: err}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &FetchError{Kind: FailConnection, Err: err}
	}

	return &FetchError{Kind: FailUnknown, Err: err}
}
