package client

import (
	"time"

	"github.com/didacticiel/Gpresence/internal/session"
)

type Client struct {
	Transport *Transport
	Users     *UserEndpoint
	Presences *PresenceEndpoint
	Employees *EmployeeEndpoint
	Reports   *ReportEndpoint
}

// New initializes the API client
func New(baseURL string, timeout time.Duration, sess *session.Session, opts ...Option) *Client {
	t := NewTransport(baseURL, timeout, sess, opts...)
	return &Client{
		Transport: t,
		Users:     &UserEndpoint{transport: t},
		Presences: &PresenceEndpoint{transport: t},
		Employees: &EmployeeEndpoint{transport: t},
		Reports:   &ReportEndpoint{transport: t},
	}
}
