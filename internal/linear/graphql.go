package linear

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/spiffcs/linear-stats/internal/apperr"
	"github.com/spiffcs/linear-stats/internal/log"
)

// graphqlRequest represents a GraphQL request payload.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// graphqlResponse represents a generic GraphQL response.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

type graphqlError struct {
	Message    string `json:"message"`
	Extensions struct {
		Code                   string `json:"code"`
		Type                   string `json:"type"`
		UserPresentableMessage string `json:"userPresentableMessage"`
	} `json:"extensions"`
}

func (e graphqlError) isAuthentication() bool {
	return e.Extensions.Code == "AUTHENTICATION_ERROR" ||
		strings.EqualFold(e.Extensions.Type, "authentication error")
}

func (e graphqlError) isNotFound() bool {
	text := strings.ToLower(e.Message + " " + e.Extensions.UserPresentableMessage)
	return strings.Contains(text, "not found") || strings.Contains(text, "could not find")
}

// errorMessages joins the messages of all GraphQL errors.
func errorMessages(errs []graphqlError) string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// hasData reports whether a response carried a usable data payload.
func hasData(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// execute runs a GraphQL operation and decodes its data into out.
func (c *Client) execute(ctx context.Context, operation, query string, variables map[string]any, out any) error {
	bodyBytes, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", operation, err)
	}
	req.Header.Set("Content-Type", "application/json")

	log.Trace("GraphQL request", "operation", operation, "variables", variables)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s request failed: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", operation, err)
	}

	log.Debug("GraphQL response", "operation", operation, "status", resp.StatusCode, "bytes", len(respBody))

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return apperr.Authentication("Linear rejected the API key",
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))).
			WithSuggestion("Check that LINEAR_API_KEY is valid and has read access")
	}

	var gqlResp graphqlResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s request failed with status %d: %s", operation, resp.StatusCode, string(respBody))
		}
		return apperr.Transport(fmt.Sprintf("unparseable %s response", operation), err)
	}

	for _, e := range gqlResp.Errors {
		if e.isAuthentication() {
			return apperr.Authentication("Linear rejected the API key", errors.New(e.Message)).
				WithSuggestion("Check that LINEAR_API_KEY is valid and has read access")
		}
	}

	if !hasData(gqlResp.Data) {
		for _, e := range gqlResp.Errors {
			if e.isNotFound() {
				return apperr.NotFound(e.Message, nil)
			}
		}
		if len(gqlResp.Errors) > 0 {
			return fmt.Errorf("%s failed: %s", operation, errorMessages(gqlResp.Errors))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%s request failed with status %d: %s", operation, resp.StatusCode, string(respBody))
		}
		return apperr.Transport(fmt.Sprintf("no data received from %s query", operation), nil)
	}

	// Partial data: keep it, the caller decides whether the fields it needs are present
	for _, e := range gqlResp.Errors {
		log.Debug("GraphQL error", "operation", operation, "message", e.Message, "code", e.Extensions.Code)
	}

	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return apperr.Transport(fmt.Sprintf("failed to decode %s data", operation), err)
	}
	return nil
}
