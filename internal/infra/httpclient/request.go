package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/aalvaropc/cardlist/internal/domain"
)

// BuildGet builds a GET request for baseURL joined with path and the given query.
func BuildGet(ctx context.Context, baseURL, path string, query url.Values) (*http.Request, error) {
	base := strings.TrimSpace(baseURL)
	if base == "" {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  domain.ErrInvalidConfig,
		}
	}

	u, err := url.Parse(strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		if err == nil {
			err = domain.ErrInvalidConfig
		}
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Path: base,
			Err:  err,
		}
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "httpclient.build",
			Kind: domain.KindInvalidConfig,
			Err:  err,
		}
	}
	return req, nil
}
