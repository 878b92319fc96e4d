package specparts

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"specparts-proxy/pkg/config"
	"specparts-proxy/pkg/models"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

// Client talks to the specparts OAuth endpoint and REST API. It holds no per-request state:
// callers acquire a fresh token for every incoming request.
type Client struct {
	HTTPClient *http.Client

	cfg config.Specparts
	log *zap.Logger
}

func NewClient(cfg config.Specparts, log *zap.Logger) *Client {
	return &Client{
		HTTPClient: &http.Client{Timeout: cfg.HTTPTimeout},
		cfg:        cfg,
		log:        log,
	}
}

// Token exchanges the client credentials for a bearer access token.
func (c *Client) Token(ctx context.Context, clientID, clientSecret string) (string, error) {
	body, err := json.Marshal(models.TokenRequest{ClientID: clientID, ClientSecret: clientSecret})
	if err != nil {
		return "", fmt.Errorf("marshal token request: %w", err)
	}

	collector, err := c.newAuthCollector(ctx)
	if err != nil {
		return "", err
	}

	var (
		status  int
		payload []byte
	)
	collector.OnResponse(func(r *colly.Response) {
		status = r.StatusCode
		payload = r.Body
	})

	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	if err := collector.Request(http.MethodPost, c.cfg.AuthURL, bytes.NewReader(body), nil, hdr); err != nil {
		return "", &NetworkError{Op: "POST " + c.cfg.AuthURL, Err: err}
	}

	c.log.Debug("token response", zap.Int("status", status), zap.Int("bytes", len(payload)))

	if status < 200 || status > 299 {
		return "", &AuthError{StatusCode: status}
	}

	var tr models.TokenResponse
	if err := json.Unmarshal(payload, &tr); err != nil {
		return "", &DecodeError{Msg: msgJSONParse, Err: err}
	}
	return tr.AccessToken.String(), nil
}

func (c *Client) newAuthCollector(ctx context.Context) (*colly.Collector, error) {
	u, err := url.Parse(c.cfg.AuthURL)
	if err != nil {
		return nil, fmt.Errorf("parse auth url: %w", err)
	}

	collector := colly.NewCollector(
		colly.AllowedDomains(u.Hostname()),
		colly.AllowURLRevisit(),
		colly.ParseHTTPErrorResponse(),
		colly.StdlibContext(ctx),
	)
	// Overrides colly's 10s default; zero leaves the POST without a deadline.
	collector.SetRequestTimeout(c.cfg.HTTPTimeout)
	return collector, nil
}

// Get issues an authenticated GET against the API host and returns the JSON body.
// The body is gunzipped when the response declares gzip; a body that fails to
// decompress is still accepted when it parses as plain JSON.
func (c *Client) Get(ctx context.Context, path, token string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.APIURL+path, nil)
	if err != nil {
		return nil, &NetworkError{Op: "GET " + path, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	buf, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Op: "read " + path, Err: err}
	}

	encoding := resp.Header.Get("Content-Encoding")
	c.log.Debug("upstream response",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("content_encoding", encoding),
		zap.Int("bytes", len(buf)),
	)

	return decodeBody(buf, encoding)
}

// GetInto fetches path and decodes the JSON body into out.
func (c *Client) GetInto(ctx context.Context, path, token string, out any) error {
	raw, err := c.Get(ctx, path, token)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Msg: msgJSONParse, Err: err}
	}
	return nil
}

func decodeBody(buf []byte, encoding string) (json.RawMessage, error) {
	if encoding != "gzip" {
		if !json.Valid(buf) {
			return nil, &DecodeError{Msg: msgJSONParse}
		}
		return buf, nil
	}

	plain, err := gunzip(buf)
	if err != nil {
		if json.Valid(buf) {
			return buf, nil
		}
		return nil, &DecodeError{Msg: msgDecompress, Err: err}
	}
	if !json.Valid(plain) {
		return nil, &DecodeError{Msg: msgJSONParseAfterGzip}
	}
	return plain, nil
}

func gunzip(buf []byte) ([]byte, error) {
	zr, err := gzip.NewReader(bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}
