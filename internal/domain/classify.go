package domain

import (
	"context"
	"errors"
	"net"
	"net/url"
)

// ClassifyLookupError maps an error returned by a lookup into a kind.
// Errors that already carry an OpError kind keep it.
func ClassifyLookupError(err error) ErrorKind {
	if err == nil {
		return ""
	}

	if k := KindOf(err); k != "" {
		return k
	}

	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindLookupTransport
	case errors.Is(err, ErrEmptyName):
		return KindMalformedLine
	case errors.Is(err, ErrCardNotFound):
		return KindLookupNotFound
	case errors.Is(err, ErrLookupTransport):
		return KindLookupTransport
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return KindLookupTransport
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return KindLookupTransport
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return KindLookupTransport
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindLookupTransport
	}

	return KindLookupService
}
