// Package download fetches remote image blobs so they can be handed to the
// browser as a file attachment. The handler layer sets Content-Disposition.
package download

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/webkit/internal/config"
)

var (
	// ErrMissingURL is returned when no resource URL was given.
	ErrMissingURL = errors.New("resource URL not provided")

	// ErrTooLarge is returned when the body exceeds the configured limit.
	ErrTooLarge = errors.New("resource exceeds maximum download size")

	// ErrForbiddenHost is returned when the URL, or a redirect it leads to,
	// targets a host the client may not reach.
	ErrForbiddenHost = errors.New("resource host is not allowed")
)

// maxRedirects matches the net/http default.
const maxRedirects = 10

// UpstreamError reports a non-2xx answer from the resource host.
type UpstreamError struct {
	URL    string
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %d", e.URL, e.Status)
}

// File is a fetched blob ready to be saved.
type File struct {
	// Name is the save name, e.g. "My_image.png".
	Name string

	ContentType string
	Data        []byte
}

// Client wraps an http.Client and a logger.
type Client struct {
	// client is the transport used to fetch resources.
	client *http.Client

	// maxBytes caps the body size; 0 disables the cap.
	maxBytes int64

	// allowedHosts, when set, is matched against every request host.
	allowedHosts []string

	logger *zerolog.Logger
}

// NewClient creates a download Client from config.
//
// Unless cfg.AllowPrivateNetworks is set, the dialer refuses every address
// that is not publicly routable. The check runs on the resolved IP, so it
// also covers DNS names pointing inward and redirects. Proxies from the
// environment are ignored since they would hide the real destination.
func NewClient(cfg config.DownloadConfig, logger *zerolog.Logger) *Client {
	dialer := &net.Dialer{
		Timeout:   10 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	if !cfg.AllowPrivateNetworks {
		dialer.Control = publicOnly
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext

	c := &Client{
		maxBytes:     cfg.MaxBytes,
		allowedHosts: normalizeHosts(cfg.AllowedHosts),
		logger:       logger,
	}
	c.client = &http.Client{
		Timeout:       time.Duration(cfg.Timeout) * time.Second,
		Transport:     transport,
		CheckRedirect: c.checkRedirect,
	}
	return c
}

// WithHTTPClient swaps the underlying transport. The host allowlist still
// applies to the initial URL; the address check lives in the default
// transport and goes away with it.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.client = hc
	return c
}

func (c *Client) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return errors.Errorf("stopped after %d redirects", maxRedirects)
	}
	return c.checkHost(req.URL)
}

// checkHost enforces the scheme and the host allowlist.
func (c *Client) checkHost(u *url.URL) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.Wrapf(ErrForbiddenHost, "scheme %q", u.Scheme)
	}

	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	if host == "" {
		return errors.Wrap(ErrForbiddenHost, "empty host")
	}
	if len(c.allowedHosts) == 0 {
		return nil
	}
	for _, allowed := range c.allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return nil
		}
	}
	return errors.Wrapf(ErrForbiddenHost, "host %q", host)
}

func normalizeHosts(hosts []string) []string {
	out := make([]string, 0, len(hosts))
	for _, h := range hosts {
		h = strings.ToLower(strings.Trim(strings.TrimSpace(h), "."))
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}

// publicOnly is a net.Dialer Control hook. address is always an IP literal
// by the time it runs.
func publicOnly(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return errors.Wrapf(ErrForbiddenHost, "address %q", address)
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return errors.Wrapf(ErrForbiddenHost, "address %q", address)
	}
	if !isPublic(ip) {
		return errors.Wrapf(ErrForbiddenHost, "address %s", ip)
	}
	return nil
}

func isPublic(ip netip.Addr) bool {
	ip = ip.Unmap()
	return ip.IsGlobalUnicast() &&
		!ip.IsPrivate() &&
		!ip.IsLoopback() &&
		!ip.IsLinkLocalUnicast() &&
		!sharedAddressSpace.Contains(ip)
}

// sharedAddressSpace is the carrier-grade NAT range (RFC 6598).
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// Fetch downloads url and returns it as a File named after filename.
//
// Steps:
//   - Reject an empty url with ErrMissingURL
//   - Reject a non-http(s) or disallowed host with ErrForbiddenHost
//   - GET the resource with ctx
//   - Fail with *UpstreamError on a non-2xx status
//   - Read the body, bounded by maxBytes
func (c *Client) Fetch(ctx context.Context, url, filename string) (*File, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrMissingURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to build download request for %s", url)
	}
	if err := c.checkHost(req.URL); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", url)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &UpstreamError{URL: url, Status: resp.StatusCode}
	}

	body := io.Reader(resp.Body)
	if c.maxBytes > 0 {
		// Read one byte past the limit so an oversized body is detectable.
		body = io.LimitReader(resp.Body, c.maxBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read body of %s", url)
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return nil, ErrTooLarge
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}

	c.logger.Debug().
		Str("url", url).
		Int("size_bytes", len(data)).
		Dur("duration", time.Since(start)).
		Msg("resource downloaded")

	return &File{
		Name:        SaveName(filename),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// SaveName turns a display title into the file name offered to the
// browser: spaces become "_" and ".png" is appended.
func SaveName(filename string) string {
	name := strings.ReplaceAll(strings.TrimSpace(filename), " ", "_")
	if name == "" {
		name = "image"
	}
	return name + ".png"
}
