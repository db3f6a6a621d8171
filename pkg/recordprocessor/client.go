// pkg/recordprocessor/client.go
package recordprocessor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/ivikasavnish/scriptgen/pkg/browser"
)

// Client handles communication with the recording server
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a new recording server client
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{},
	}
}

// CreateRecording stores a new recording on the server
func (c *Client) CreateRecording(id, name string, events []browser.RecordedEvent) error {
	if events == nil {
		events = []browser.RecordedEvent{}
	}
	payload := map[string]interface{}{
		"id":     id,
		"name":   name,
		"events": events,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "failed to marshal recording")
	}

	resp, err := c.client.Post(
		fmt.Sprintf("%s/recording/create", c.baseURL),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create recording")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return errors.Errorf("failed to create recording, status: %d, body: %s", resp.StatusCode, string(body))
	}

	return nil
}

// Script fetches the generated script of a stored recording. With full set the
// body comes wrapped in the script template.
func (c *Client) Script(id string, full bool) (string, error) {
	target := fmt.Sprintf("%s/recording/%s/script", c.baseURL, url.PathEscape(id))
	if full {
		target += "?full=true"
	}

	resp, err := c.client.Get(target)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch script")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", errors.Errorf("failed to fetch script, status: %d, body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Script string `json:"script"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrap(err, "failed to decode script response")
	}
	return result.Script, nil
}
