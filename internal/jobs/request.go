package jobs

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

const (
	contentType     = "application/json"
	contentEncoding = "gzip"
)

type searchRequest struct {
	Keywords string `json:"keywords"`
	Location string `json:"location"`
}

type itemResponse struct {
	TotalCount int    `json:"totalCount"`
	Jobs       []Item `json:"jobs"`
}

// Item is a raw job entry as returned by the API.
type Item any

func (c *Client) postSearch(ctx context.Context, payload searchRequest) (*itemResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s", c.APIURL, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept-Encoding", contentEncoding)

	// the key is part of the path, keep it out of logs
	c.logger.Debug("make request", zap.String("url", c.APIURL), zap.String("keywords", payload.Keywords))
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	return parseItemResponse(resp)
}

func parseItemResponse(resp *http.Response) (*itemResponse, error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var body io.Reader = resp.Body
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gzipReader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gzipReader.Close()
		body = gzipReader
	}

	var response itemResponse
	if err := json.NewDecoder(body).Decode(&response); err != nil {
		return nil, err
	}

	return &response, nil
}
