package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/patrickmn/go-cache"

	"github.com/Skotchmaster/job_portal/pkg/logging"
	"github.com/Skotchmaster/job_portal/pkg/tokens"
	"github.com/Skotchmaster/job_portal/pkg/transport"
)

const ContextKeyRole = "role"

type Validator interface {
	Validate(ctx context.Context, authHeader string) (transport.ValidationResponse, error)
}

type ValidatorFunc func(ctx context.Context, authHeader string) (transport.ValidationResponse, error)

func (f ValidatorFunc) Validate(ctx context.Context, authHeader string) (transport.ValidationResponse, error) {
	return f(ctx, authHeader)
}

// Interceptor resolves the bearer header of every request into a Principal.
// Requests without a bearer header pass through anonymously and are left to
// the route gates.
type Interceptor struct {
	validator Validator
	cache     *cache.Cache
	cacheTTL  time.Duration
	now       func() time.Time
}

// NewInterceptor caches positive verdicts for at most cacheTTL and never past
// the token's own expiry. A zero cacheTTL disables caching.
func NewInterceptor(v Validator, cacheTTL time.Duration) *Interceptor {
	i := &Interceptor{validator: v, cacheTTL: cacheTTL, now: time.Now}
	if cacheTTL > 0 {
		i.cache = cache.New(cacheTTL, time.Minute)
	}
	return i
}

func (i *Interceptor) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := tokens.FromBearer(header)
		if !ok {
			return next(c)
		}

		if p, hit := i.cached(token); hit {
			setPrincipal(c, p)
			return next(c)
		}

		ctx := c.Request().Context()
		l := logging.FromContext(ctx).With("middleware", "authenticate")

		res, err := i.validator.Validate(ctx, header)
		if err != nil {
			l.Warn("authentication_failed", "status", 401, "reason", "validator error", "error", err)
			return echo.NewHTTPError(http.StatusUnauthorized, "error validating token: "+err.Error())
		}
		if !res.Valid {
			l.Warn("authentication_failed", "status", 401, "reason", "invalid or expired token")
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
		}

		p := Principal{Role: res.Role}
		i.remember(token, p)
		setPrincipal(c, p)
		return next(c)
	}
}

func (i *Interceptor) cached(token string) (Principal, bool) {
	if i.cache == nil {
		return Principal{}, false
	}
	v, ok := i.cache.Get(tokens.Signature(token))
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

func (i *Interceptor) remember(token string, p Principal) {
	if i.cache == nil {
		return
	}
	key := tokens.Signature(token)
	if key == "" {
		return
	}
	exp, err := tokens.ExpiresAt(token)
	if err != nil {
		return
	}
	ttl := min(i.cacheTTL, exp.Sub(i.now()))
	if ttl <= 0 {
		return
	}
	i.cache.Set(key, p, ttl)
}

func setPrincipal(c echo.Context, p Principal) {
	req := c.Request()
	c.SetRequest(req.WithContext(WithPrincipal(req.Context(), p)))
	c.Set(ContextKeyRole, p.Role)
}
