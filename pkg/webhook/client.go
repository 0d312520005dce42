package webhook

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// notAllowedMatch is the substring the API places in non_field_errors
// when its policy forbids new mappings for a context. The match is an
// external contract; changing it changes observable behavior.
const notAllowedMatch = "does not allow mappings"

const requestTimeout = 30 * time.Second

// Client implements the APIClient interface against the webhook
// management REST API using HTTP basic authentication.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// NewClient creates a new webhook API client for the given base URL and
// basic-auth credentials.
func NewClient(baseURL, username, password string, log zerolog.Logger) *Client {
	cli := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetBasicAuth(username, password).
		SetHeader("Content-Type", "application/json").
		SetTimeout(requestTimeout)

	return &Client{http: cli, log: log}
}

// FetchMapping issues a filtered list query for the triple. It returns
// nil when no mapping exists and ErrNotUnique when the API reports more
// than one result.
func (c *Client) FetchMapping(ctx context.Context, obs, project, pkg string) (*RemoteMapping, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"obs":     obs,
			"project": project,
			"package": pkg,
		}).
		SetResult(&MappingList{}).
		Get("/webhookmappings/")
	if err != nil {
		return nil, fmt.Errorf("list mappings request: %w", err)
	}
	if !resp.IsSuccess() {
		return nil, respError(resp)
	}

	list := resp.Result().(*MappingList)
	c.log.Debug().
		Int("count", list.Count).
		Str("project", project).
		Str("package", pkg).
		Msg("fetched mapping list")

	switch {
	case list.Count > 1:
		return nil, fmt.Errorf("%w for %s/%s on %s: got %d", ErrNotUnique, project, pkg, obs, list.Count)
	case list.Count == 0:
		return nil, nil
	case len(list.Results) == 0:
		return nil, fmt.Errorf("list response reports count %d but carries no results", list.Count)
	}
	return &list.Results[0], nil
}

// CreateMapping submits desired as a new mapping. A rejection whose
// non_field_errors text says the server does not allow mappings is
// returned as ErrMappingNotAllowed; any other non-2xx response is an
// *APIError.
func (c *Client) CreateMapping(ctx context.Context, desired Mapping) (*RemoteMapping, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(desired).
		SetResult(&RemoteMapping{}).
		Post("/webhookmappings/")
	if err != nil {
		return nil, fmt.Errorf("create mapping request: %w", err)
	}
	if !resp.IsSuccess() {
		if msg, ok := notAllowedError(resp.Body()); ok {
			return nil, fmt.Errorf("%w: %s", ErrMappingNotAllowed, msg)
		}
		return nil, respError(resp)
	}

	created := resp.Result().(*RemoteMapping)
	c.log.Debug().Int64("id", created.ID).Msg("created mapping")
	return created, nil
}

// UpdateMapping submits desired as a partial update of the mapping
// identified by id.
func (c *Client) UpdateMapping(ctx context.Context, id int64, desired Mapping) (*RemoteMapping, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(desired).
		SetResult(&RemoteMapping{}).
		Patch(fmt.Sprintf("/webhookmappings/%d/", id))
	if err != nil {
		return nil, fmt.Errorf("update mapping %d request: %w", id, err)
	}
	if !resp.IsSuccess() {
		return nil, respError(resp)
	}

	updated := resp.Result().(*RemoteMapping)
	c.log.Debug().Int64("id", updated.ID).Msg("updated mapping")
	return updated, nil
}

// TriggerMapping invokes the remote trigger action for the mapping.
func (c *Client) TriggerMapping(ctx context.Context, id int64) (*TriggerResult, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&TriggerResult{}).
		Put(fmt.Sprintf("/webhookmappings/%d/trigger/", id))
	if err != nil {
		return nil, fmt.Errorf("trigger mapping %d request: %w", id, err)
	}
	if !resp.IsSuccess() {
		return nil, respError(resp)
	}

	result := resp.Result().(*TriggerResult)
	c.log.Debug().Int64("id", id).Str("detail", result.Detail).Msg("triggered mapping")
	return result, nil
}

// notAllowedError checks a failed create's body for the policy-rejection
// message and returns the matching message text.
func notAllowedError(body []byte) (string, bool) {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", false
	}
	for _, msg := range parsed.NonFieldErrors {
		if strings.Contains(msg, notAllowedMatch) {
			return msg, true
		}
	}
	return "", false
}

func respError(resp *resty.Response) error {
	return &APIError{
		StatusCode: resp.StatusCode(),
		Body:       strings.TrimSpace(string(resp.Body())),
	}
}
