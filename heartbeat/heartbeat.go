package heartbeat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
)

const (
	Entity   = "hackatime-setup-test.txt"
	Project  = "hackatime-setup"
	endpoint = "/users/current/heartbeats"
)

// Heartbeat is a single tracked-activity event.
type Heartbeat struct {
	Type     string  `json:"type"`
	Time     float64 `json:"time"`
	Entity   string  `json:"entity"`
	Language string  `json:"language"`
	Project  string  `json:"project"`
	Category string  `json:"category"`
	IsWrite  bool    `json:"is_write"`
	Plugin   string  `json:"plugin"`
}

// Test builds the synthetic heartbeat sent to verify a new setup.
func Test(now time.Time, version string) Heartbeat {
	return Heartbeat{
		Type:     "file",
		Time:     float64(now.UnixMilli()) / 1000,
		Entity:   Entity,
		Language: "Text",
		Project:  Project,
		Category: "coding",
		IsWrite:  true,
		Plugin:   "hackatime-setup/" + version,
	}
}

// Client posts heartbeats to a WakaTime compatible API.
type Client struct {
	HTTP   *http.Client
	APIURL string
	APIKey string
}

// Send posts hb as a one element array. Any non-2xx answer is an error that
// carries the API's own message when the body has one.
func (c Client) Send(ctx context.Context, hb Heartbeat) error {
	body, err := json.Marshal([]Heartbeat{hb})
	if err != nil {
		return fmt.Errorf("encode heartbeat: %w", err)
	}

	url := strings.TrimSuffix(c.APIURL, "/") + endpoint
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create heartbeat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", hb.Plugin)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("send heartbeat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode <= 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if reason := apiError(respBody); reason != "" {
		return fmt.Errorf("send heartbeat: HTTP %s: %s", resp.Status, reason)
	}
	return fmt.Errorf("send heartbeat: HTTP %s", resp.Status)
}

func apiError(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, path := range []string{"error", "message", "errors.0"} {
		if v := gjson.GetBytes(body, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return ""
}
