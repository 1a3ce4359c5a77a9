package mediastore

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// CloudinaryConfig holds credentials for the hosted media store.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	BaseURL   string // defaults to https://api.cloudinary.com
	Timeout   time.Duration
}

// Cloudinary implements Store against the Cloudinary search and upload
// APIs.
type Cloudinary struct {
	cloudName string
	apiKey    string
	apiSecret string
	baseURL   string
	http      *http.Client

	// now is stubbed in tests for deterministic signatures
	now func() time.Time
}

// NewCloudinary creates a Cloudinary-backed media store.
func NewCloudinary(cfg CloudinaryConfig) *Cloudinary {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.cloudinary.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Cloudinary{
		cloudName: cfg.CloudName,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		baseURL:   strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		now: time.Now,
	}
}

type searchRequest struct {
	Expression string `json:"expression"`
	SortBy     []map[string]string `json:"sort_by"`
	MaxResults int    `json:"max_results"`
	NextCursor string `json:"next_cursor,omitempty"`
}

type searchResource struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
	Format    string `json:"format"`
	CreatedAt string `json:"created_at"`
}

type searchResponse struct {
	Resources  []searchResource `json:"resources"`
	NextCursor string           `json:"next_cursor"`
}

// Query returns one page of image descriptors for a folder, newest first.
func (c *Cloudinary) Query(ctx context.Context, folder string, cursor string) (*QueryPage, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, ErrEmptyFolder
	}

	body, err := json.Marshal(searchRequest{
		Expression: fmt.Sprintf(`folder:"%s" AND resource_type:image`, folder),
		SortBy:     []map[string]string{{"created_at": "desc"}},
		MaxResults: PageSize,
		NextCursor: cursor,
	})
	if err != nil {
		return nil, fmt.Errorf("media search request error: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/resources/search", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("media search request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.apiKey, c.apiSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media search request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("media search http error: status=%d body=%s", resp.StatusCode, readBody(resp.Body))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("media search decode error: %w", err)
	}

	page := &QueryPage{NextCursor: sr.NextCursor}
	for _, res := range sr.Resources {
		page.Resources = append(page.Resources, descriptorFromResource(res))
	}
	return page, nil
}

type uploadResponse struct {
	PublicID  string `json:"public_id"`
	URL       string `json:"url"`
	SecureURL string `json:"secure_url"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Bytes     int64  `json:"bytes"`
	Format    string `json:"format"`
	CreatedAt string `json:"created_at"`
	Error     *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Ingest uploads an image payload into the folder. The payload travels
// base64-encoded as a data URI; transformation directives are applied by
// the remote store.
func (c *Cloudinary) Ingest(ctx context.Context, payload []byte, folder string, opts IngestOptions) (*Descriptor, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, ErrEmptyFolder
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("media upload error: empty payload")
	}

	timestamp := fmt.Sprintf("%d", c.now().Unix())
	params := map[string]string{
		"folder":    folder,
		"timestamp": timestamp,
	}
	if t := Transformation(opts); t != "" {
		params["transformation"] = t
	}

	form := map[string]string{
		"file":      "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload),
		"api_key":   c.apiKey,
		"signature": signParams(params, c.apiSecret),
	}
	for k, v := range params {
		form[k] = v
	}

	body, err := json.Marshal(form)
	if err != nil {
		return nil, fmt.Errorf("media upload request error: %w", err)
	}

	url := fmt.Sprintf("%s/v1_1/%s/image/upload", c.baseURL, c.cloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("media upload request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("media upload request error: %w", err)
	}
	defer resp.Body.Close()

	var ur uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&ur); err != nil {
		return nil, fmt.Errorf("media upload decode error: status=%d: %w", resp.StatusCode, err)
	}

	if resp.StatusCode != http.StatusOK || ur.Error != nil {
		msg := "upload rejected"
		if ur.Error != nil && ur.Error.Message != "" {
			msg = ur.Error.Message
		}
		return nil, fmt.Errorf("media upload failed: %s", msg)
	}

	d := descriptorFromResource(searchResource{
		PublicID:  ur.PublicID,
		URL:       ur.URL,
		SecureURL: ur.SecureURL,
		Width:     ur.Width,
		Height:    ur.Height,
		Bytes:     ur.Bytes,
		Format:    ur.Format,
		CreatedAt: ur.CreatedAt,
	})
	return &d, nil
}

func descriptorFromResource(res searchResource) Descriptor {
	createdAt, err := time.Parse(time.RFC3339, res.CreatedAt)
	if err != nil {
		createdAt = time.Time{}
	}
	return Descriptor{
		ID:        res.PublicID,
		URL:       res.URL,
		SecureURL: res.SecureURL,
		Width:     res.Width,
		Height:    res.Height,
		Bytes:     res.Bytes,
		Format:    res.Format,
		CreatedAt: createdAt,
	}
}

// signParams computes the upload signature: parameters sorted by name,
// joined as a query string, with the API secret appended, SHA-1 hashed.
func signParams(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + secret))
	return hex.EncodeToString(sum[:])
}

func readBody(r io.Reader) string {
	b, err := io.ReadAll(io.LimitReader(r, 2048))
	if err != nil {
		return "<failed to read body>"
	}
	return string(b)
}
