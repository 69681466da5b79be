// Package ioportal talks to the JGI MycoCosm portal. It logs in, downloads
// the genome list, per-project file listings and the data files
// themselves.
package ioportal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/gn"
	"github.com/gnames/gnmyco/pkg/config"
	"github.com/gnames/gnmyco/pkg/mycocosm"
	"github.com/hashicorp/go-retryablehttp"
)

// listingPath returns the XML file listing of one organism.
const listingPath = "/portal/ext-api/downloads/get-directory?organism="

// CredentialsFunc supplies credentials at login time.
type CredentialsFunc func() (Credentials, error)

// Client implements mycocosm.Portal over HTTP. A session cookie obtained
// by Login is sent with every following request.
type Client struct {
	cfg   config.PortalConfig
	http  *retryablehttp.Client
	jar   http.CookieJar
	creds CredentialsFunc
}

var _ mycocosm.Portal = (*Client)(nil)

// New creates a portal client.
func New(cfg config.PortalConfig, creds CredentialsFunc) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}

	rc := retryablehttp.NewClient()
	rc.HTTPClient.Jar = jar
	rc.RetryMax = cfg.Retries
	rc.Logger = slog.Default()

	res := &Client{
		cfg:   cfg,
		http:  rc,
		jar:   jar,
		creds: creds,
	}
	return res, nil
}

// Login posts credentials to the JGI sign-on service and keeps the
// session cookie.
func (c *Client) Login(ctx context.Context) error {
	if c.creds == nil {
		return CredentialsError(errors.New("no credentials source"))
	}
	cr, err := c.creds()
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("login", cr.User)
	form.Set("password", cr.Password)
	req, err := retryablehttp.NewRequestWithContext(
		ctx, http.MethodPost, c.cfg.SignonURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return LoginError(cr.User, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return LoginError(cr.User, err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	u, err := url.Parse(c.cfg.SignonURL)
	if err != nil {
		return LoginError(cr.User, err)
	}
	if len(c.jar.Cookies(u)) == 0 {
		return LoginError(cr.User, errors.New("no session cookie received"))
	}

	gn.Info("Logged in to JGI as <em>%s</em>", cr.User)
	return nil
}

// Fetch downloads a file by its portal-relative URL from the listing.
func (c *Client) Fetch(ctx context.Context, fileURL, dest string) error {
	return c.save(ctx, c.cfg.BaseURL+fileURL, dest, false)
}

// Download saves any absolute URL to dest showing a progress bar.
func (c *Client) Download(ctx context.Context, rawURL, dest string) error {
	return c.save(ctx, rawURL, dest, true)
}

// FetchGenomeList saves the MycoCosm genome list to dest.
func (c *Client) FetchGenomeList(ctx context.Context, dest string) error {
	return c.save(ctx, c.cfg.GenomeListURL, dest, false)
}

// FetchListing returns the XML file listing of a project.
func (c *Client) FetchListing(ctx context.Context, code string) ([]byte, error) {
	u := c.cfg.DownloadsURL + listingPath + url.QueryEscape(code)
	resp, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	res, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, HTTPError(u, err)
	}
	return res, nil
}

func (c *Client) get(ctx context.Context, u string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, HTTPError(u, err)
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, HTTPError(u, err)
	}
	return resp, nil
}

func (c *Client) do(req *retryablehttp.Request) (*http.Response, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return resp, nil
}

// save streams a response into a temporary file and renames it to dest,
// so an interrupted transfer never leaves a partial file under the
// final name.
func (c *Client) save(ctx context.Context, u, dest string, progress bool) error {
	resp, err := c.get(ctx, u)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err = os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return HTTPError(u, err)
	}
	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return HTTPError(u, err)
	}

	var r io.Reader = resp.Body
	if progress && resp.ContentLength > 0 {
		bar := pb.Full.Start64(resp.ContentLength)
		bar.Set(pb.Bytes, true)
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
		r = bar.NewProxyReader(resp.Body)
	}

	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmp)
		return HTTPError(u, err)
	}

	if err = os.Rename(tmp, dest); err != nil {
		return HTTPError(u, err)
	}
	return nil
}
