package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// client is a thin REST client for the snippet service.
type client struct {
	http *resty.Client
}

func newClient(baseURL string, timeout time.Duration) *client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetTimeout(timeout).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)
	return &client{http: c}
}

// apiError mirrors the service's error body.
type apiError struct {
	Status     int
	Message    string `json:"message"`
	Violations []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"violations"`
}

func (e *apiError) Error() string {
	if len(e.Violations) > 0 {
		msgs := make([]string, 0, len(e.Violations))
		for _, v := range e.Violations {
			msgs = append(msgs, v.Message)
		}
		return fmt.Sprintf("http %d: %s", e.Status, strings.Join(msgs, "; "))
	}
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

func (c *client) create(ctx context.Context, text string) ([]byte, error) {
	return c.do(c.http.R().SetContext(ctx).SetBody(map[string]string{"text": text}), "POST", "/snippets")
}

// list sends only the paging parameters that are set.
func (c *client) list(ctx context.Context, take, skip *int) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if take != nil {
		req.SetQueryParam("take", strconv.Itoa(*take))
	}
	if skip != nil {
		req.SetQueryParam("skip", strconv.Itoa(*skip))
	}
	return c.do(req, "GET", "/snippets")
}

func (c *client) get(ctx context.Context, id string) ([]byte, error) {
	return c.do(c.http.R().SetContext(ctx).SetPathParam("id", id), "GET", "/snippets/{id}")
}

func (c *client) health(ctx context.Context) ([]byte, error) {
	return c.do(c.http.R().SetContext(ctx), "GET", "/api/health")
}

func (c *client) do(req *resty.Request, method, path string) ([]byte, error) {
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	if resp.IsError() {
		ae := &apiError{Status: resp.StatusCode()}
		if json.Unmarshal(resp.Body(), ae) != nil || ae.Message == "" {
			ae.Message = strings.TrimSpace(resp.String())
		}
		return nil, ae
	}
	return prettyJSON(resp.Body()), nil
}

// prettyJSON indents a JSON body; non-JSON bodies are returned unchanged.
func prettyJSON(raw []byte) []byte {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return raw
	}
	return out
}
