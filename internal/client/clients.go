// Package client builds the seven HRMS domain clients from endpoint
// configuration. Each domain gets its own transport with the auth and
// request-id interceptors attached.
package client

import (
	"fmt"

	"github.com/locvowork/hrms_gateway/internal/config"
	"github.com/locvowork/hrms_gateway/internal/credential"
	"github.com/locvowork/hrms_gateway/internal/domain"
	"github.com/locvowork/hrms_gateway/internal/transport"
)

// Clients holds one transport per backend domain.
type Clients struct {
	Employee     *transport.Transport
	Attendance   *transport.Transport
	Leave        *transport.Transport
	User         *transport.Transport
	Audit        *transport.Transport
	Notification *transport.Transport
	Compliance   *transport.Transport
}

// New creates the seven transports. No connection is opened. opts are
// applied to every transport after the default interceptors.
func New(endpoints config.Endpoints, provider credential.Provider, opts ...transport.Option) (*Clients, error) {
	c := &Clients{}
	for _, d := range domain.Domains() {
		base, err := endpoints.For(d)
		if err != nil {
			return nil, err
		}

		all := make([]transport.Option, 0, len(opts)+2)
		all = append(all,
			transport.WithDomain(string(d)),
			transport.WithInterceptor(
				transport.RequestIDInterceptor(),
				transport.AuthInterceptor(provider),
			),
		)
		all = append(all, opts...)

		t, err := transport.New(base, all...)
		if err != nil {
			return nil, fmt.Errorf("%s client: %w", d, err)
		}
		c.set(d, t)
	}
	return c, nil
}

// For returns the transport of d.
func (c *Clients) For(d domain.Domain) (*transport.Transport, error) {
	var t *transport.Transport
	switch d {
	case domain.DomainEmployee:
		t = c.Employee
	case domain.DomainAttendance:
		t = c.Attendance
	case domain.DomainLeave:
		t = c.Leave
	case domain.DomainUser:
		t = c.User
	case domain.DomainAudit:
		t = c.Audit
	case domain.DomainNotification:
		t = c.Notification
	case domain.DomainCompliance:
		t = c.Compliance
	default:
		return nil, fmt.Errorf("unknown domain %q", d)
	}
	if t == nil {
		return nil, fmt.Errorf("%s client not configured", d)
	}
	return t, nil
}

func (c *Clients) set(d domain.Domain, t *transport.Transport) {
	switch d {
	case domain.DomainEmployee:
		c.Employee = t
	case domain.DomainAttendance:
		c.Attendance = t
	case domain.DomainLeave:
		c.Leave = t
	case domain.DomainUser:
		c.User = t
	case domain.DomainAudit:
		c.Audit = t
	case domain.DomainNotification:
		c.Notification = t
	case domain.DomainCompliance:
		c.Compliance = t
	}
}
