package value

import (
	"fmt"
	"net"
	"regexp"
)

var portRegexp = regexp.MustCompile("^[0-9]+$")

// address (host?:port). A bare port number is accepted and prefixed with a colon.

type Address string

func NewAddress(p *string, val string) *Address {
	*p = val

	return (*Address)(p)
}

func (s *Address) Set(val string) error {
	if portRegexp.MatchString(val) {
		val = ":" + val
	}

	*s = Address(val)
	return nil
}

func (s *Address) String() string {
	return string(*s)
}

func (s *Address) Validate() error {
	_, port, err := net.SplitHostPort(string(*s))
	if err != nil {
		return err
	}

	if !portRegexp.MatchString(port) {
		return fmt.Errorf("the port must be numerical")
	}

	return nil
}

func (s *Address) IsEmpty() bool {
	return len(string(*s)) == 0
}

// host:port of a remote service, e.g. an S3 endpoint. Empty is allowed.

type Endpoint string

func NewEndpoint(p *string, val string) *Endpoint {
	*p = val

	return (*Endpoint)(p)
}

func (s *Endpoint) Set(val string) error {
	*s = Endpoint(val)
	return nil
}

func (s *Endpoint) String() string {
	return string(*s)
}

func (s *Endpoint) Validate() error {
	if len(string(*s)) == 0 {
		return nil
	}

	host, _, err := net.SplitHostPort(string(*s))
	if err != nil {
		return err
	}

	if len(host) == 0 {
		return fmt.Errorf("a host name is required")
	}

	return nil
}

func (s *Endpoint) IsEmpty() bool {
	return len(string(*s)) == 0
}
