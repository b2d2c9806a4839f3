package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type Parser struct{}

func (p *Parser) ParseSiteId(ctx context.Context, r *http.Request) (string, error) {
	vars := mux.Vars(r)

	siteKey := vars["site"]

	if len(siteKey) == 0 {
		return "", fmt.Errorf("site id is required")
	}

	return siteKey, nil
}

func (p *Parser) ParseEventName(ctx context.Context, r *http.Request) (string, error) {
	vars := mux.Vars(r)

	eventKey := vars["event"]

	if len(eventKey) == 0 {
		return "", fmt.Errorf("event name is required")
	}

	return eventKey, nil
}

// ParseEventBody returns the decoded JSON value for a JSON request, the raw
// text for any other non-empty body, and nil for an empty one.
func (p *Parser) ParseEventBody(ctx context.Context, r *http.Request) (any, error) {
	bs, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	defer r.Body.Close()

	if len(strings.TrimSpace(string(bs))) == 0 {
		return nil, nil
	}

	if !isJSON(r) {
		return string(bs), nil
	}

	var data any

	if err := json.Unmarshal(bs, &data); err != nil {
		return nil, fmt.Errorf("invalid json body: %v", err)
	}

	return data, nil
}

func (p *Parser) ParseSiteBody(ctx context.Context, r *http.Request) (map[string]any, error) {
	bs, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, err
	}

	defer r.Body.Close()

	var doc map[string]any

	if err := json.Unmarshal(bs, &doc); err != nil {
		return nil, fmt.Errorf("site must be a json object: %v", err)
	}

	if doc == nil {
		return nil, fmt.Errorf("site must be a json object")
	}

	return doc, nil
}

func isJSON(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}

	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
