package discovery

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/pyneda/wsdlwizard/db"
	"github.com/pyneda/wsdlwizard/lib"
)

// Target identifies the origin a discovery run operates on
type Target struct {
	Protocol string `json:"protocol"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
}

// Origin returns scheme://host[:port], omitting default ports
func (t Target) Origin() string {
	return lib.BuildOrigin(t.Protocol, t.Host, t.Port)
}

func (t Target) String() string {
	return t.Origin()
}

// Validate checks that the target has a usable protocol and host
func (t Target) Validate() error {
	protocol := strings.ToLower(t.Protocol)
	if protocol != "http" && protocol != "https" {
		return fmt.Errorf("%w: unsupported protocol %q", ErrInvalidTarget, t.Protocol)
	}
	if t.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidTarget)
	}
	if t.Port < 0 || t.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidTarget, t.Port)
	}
	return nil
}

// TargetFromURL resolves the target origin of rawURL
func TargetFromURL(rawURL string) (Target, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	target := Target{
		Protocol: strings.ToLower(u.Scheme),
		Host:     strings.ToLower(u.Hostname()),
		Port:     lib.DefaultPort(u.Scheme),
	}
	if p := u.Port(); p != "" {
		port, err := strconv.Atoi(p)
		if err != nil {
			return Target{}, fmt.Errorf("%w: invalid port %q", ErrInvalidTarget, p)
		}
		target.Port = port
	}
	if err := target.Validate(); err != nil {
		return Target{}, err
	}
	return target, nil
}

// TargetFromTransaction resolves the target from a selected transaction, which must have a response
func TargetFromTransaction(history *db.History) (Target, error) {
	if history == nil {
		return Target{}, fmt.Errorf("%w: no transaction selected", ErrInvalidTarget)
	}
	if !history.HasResponse() {
		return Target{}, fmt.Errorf("%w: transaction %d has no response", ErrInvalidTarget, history.ID)
	}
	return TargetFromURL(history.URL)
}
