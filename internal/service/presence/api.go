package presence

import (
	"context"

	"github.com/didacticiel/Gpresence/internal/client"
	"github.com/didacticiel/Gpresence/internal/domain/presence"
	"github.com/didacticiel/Gpresence/internal/domain/user"
)

// PresenceAPI is the slice of the remote API the workflow needs.
// *client.PresenceEndpoint implements it.
type PresenceAPI interface {
	List(ctx context.Context, filter presence.Filter) ([]presence.Record, error)
	Own(ctx context.Context) (presence.OwnPresenceResponse, error)
	CreateOwn(ctx context.Context) (*client.Response, error)
	Act(ctx context.Context, endpoint presence.EndpointKind, recordID int64, action presence.Action) (*client.Response, error)
}

// IdentityProvider exposes the session identity. *session.Session
// implements it.
type IdentityProvider interface {
	Identity() (user.Identity, bool)
}
