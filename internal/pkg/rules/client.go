package rules

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTimeout = 15 * time.Second

// Config holds rules service client settings.
type Config struct {
	ProjectID   string
	ClientEmail string
	PrivateKey  string // PEM, newlines already unescaped
	BaseURL     string
	Timeout     time.Duration
}

// Client talks to the remote security-rules service. A ruleset is an
// immutable versioned bundle; releasing one makes it the live version.
type Client struct {
	projectID   string
	clientEmail string
	privateKey  string
	baseURL     string
	http        *http.Client
}

// NewClient creates a rules service client.
func NewClient(cfg Config) *Client {
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
		MaxIdleConns:        10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &Client{
		projectID:   cfg.ProjectID,
		clientEmail: cfg.ClientEmail,
		privateKey:  cfg.PrivateKey,
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}
}

type rulesFile struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type rulesetSource struct {
	Files []rulesFile `json:"files"`
}

type createRulesetRequest struct {
	Source rulesetSource `json:"source"`
}

type createRulesetResponse struct {
	Name string `json:"name"`
}

type releaseRequest struct {
	Name        string `json:"name"`
	RulesetName string `json:"rulesetName"`
}

// CreateRuleset submits rule source as a new versioned ruleset and
// returns its resource name.
func (c *Client) CreateRuleset(ctx context.Context, fileName, source string) (string, error) {
	body, err := json.Marshal(createRulesetRequest{
		Source: rulesetSource{
			Files: []rulesFile{{Name: fileName, Content: source}},
		},
	})
	if err != nil {
		return "", fmt.Errorf("rules create request error: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/rulesets", c.baseURL, c.projectID)
	respBody, err := c.post(ctx, url, body)
	if err != nil {
		return "", err
	}

	var resp createRulesetResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return "", fmt.Errorf("rules create decode error: %w", err)
	}
	if resp.Name == "" {
		return "", fmt.Errorf("rules create error: response carried no ruleset name")
	}
	return resp.Name, nil
}

// ReleaseRuleset activates a ruleset as the live version for Firestore.
func (c *Client) ReleaseRuleset(ctx context.Context, rulesetName string) error {
	body, err := json.Marshal(releaseRequest{
		Name:        fmt.Sprintf("projects/%s/releases/cloud.firestore", c.projectID),
		RulesetName: rulesetName,
	})
	if err != nil {
		return fmt.Errorf("rules release request error: %w", err)
	}

	url := fmt.Sprintf("%s/v1/projects/%s/releases", c.baseURL, c.projectID)
	if _, err := c.post(ctx, url, body); err != nil {
		return err
	}
	return nil
}

func (c *Client) post(ctx context.Context, url string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("rules request error: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	token, err := c.bearerToken()
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rules request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, readErr := io.ReadAll(resp.Body)
	if readErr != nil {
		return nil, fmt.Errorf("rules http error: status=%d body=<failed to read body: %v>", resp.StatusCode, readErr)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("rules http error: status=%d body=%s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

// bearerToken mints a short-lived self-signed service-account JWT
// accepted by Google APIs in place of an exchanged OAuth token.
func (c *Client) bearerToken() (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(c.privateKey))
	if err != nil {
		return "", fmt.Errorf("rules auth error: invalid private key: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"iss": c.clientEmail,
		"sub": c.clientEmail,
		"aud": c.baseURL + "/",
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	if err != nil {
		return "", fmt.Errorf("rules auth error: %w", err)
	}
	return signed, nil
}
