package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/didacticiel/Gpresence/internal/domain/presence"
)

// Envelope is the structured body of presence mutations. Success is nil
// when the body carried no flag at all.
type Envelope struct {
	Success  *bool            `json:"success"`
	Message  string           `json:"message"`
	Presence *presence.Record `json:"presence"`
}

// ParseEnvelope decodes a presence mutation body.
func ParseEnvelope(data []byte) (Envelope, error) {
	var env Envelope
	if len(data) == 0 {
		return env, fmt.Errorf("empty response body")
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return env, fmt.Errorf("decode envelope: %w", err)
	}
	return env, nil
}

type PresenceEndpoint struct {
	transport *Transport
}

// List fetches GET /presences/ with the filter as query parameters.
func (e *PresenceEndpoint) List(ctx context.Context, filter presence.Filter) ([]presence.Record, error) {
	resp, err := e.transport.Get(ctx, "presences/", filter.QueryParams())
	if err != nil {
		return nil, err
	}

	records := []presence.Record{}
	if err := decode(resp, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Own fetches the caller's record for today. A body with success=false is
// an answer, not an error, whatever the status code.
func (e *PresenceEndpoint) Own(ctx context.Context) (presence.OwnPresenceResponse, error) {
	var out presence.OwnPresenceResponse

	resp, err := e.transport.Get(ctx, "ma-presence/", nil)
	if err != nil {
		return out, err
	}

	if env, err := ParseEnvelope(resp.Data); err == nil && env.Success != nil {
		out.Success = *env.Success
		out.Message = env.Message
		if out.Success {
			out.Presence = env.Presence
		}
		return out, nil
	}

	if !resp.OK() {
		return out, newAPIError(resp)
	}
	return out, fmt.Errorf("GET ma-presence/: unexpected response body")
}

// CreateOwn sends POST /ma-presence/ and hands back the raw answer.
func (e *PresenceEndpoint) CreateOwn(ctx context.Context) (*Response, error) {
	return e.transport.Post(ctx, "ma-presence/", nil)
}

// Act sends a check-in or check-out to the URL the endpoint kind selects.
func (e *PresenceEndpoint) Act(ctx context.Context, endpoint presence.EndpointKind, recordID int64, action presence.Action) (*Response, error) {
	path, err := ActionPath(endpoint, recordID, action)
	if err != nil {
		return nil, err
	}
	return e.transport.Post(ctx, path, nil)
}

// ActionPath maps an endpoint kind and action to its URL path.
func ActionPath(endpoint presence.EndpointKind, recordID int64, action presence.Action) (string, error) {
	if action != presence.ActionCheckIn && action != presence.ActionCheckOut {
		return "", fmt.Errorf("unknown presence action %q", action)
	}

	switch endpoint {
	case presence.EndpointSelf:
		return fmt.Sprintf("ma-presence/%s/", action), nil
	case presence.EndpointAdministrative:
		return fmt.Sprintf("presences/%d/%s/", recordID, action), nil
	}
	return "", presence.ErrActionNotPermitted
}
