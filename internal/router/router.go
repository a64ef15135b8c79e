package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/carlosargenal/enlaceibabackend/internal/config"
	"github.com/carlosargenal/enlaceibabackend/internal/handler"
	"github.com/carlosargenal/enlaceibabackend/internal/middleware"
	"github.com/carlosargenal/enlaceibabackend/internal/model"
	"github.com/carlosargenal/enlaceibabackend/internal/utils"
)

// APIPrefix is the root of every versioned endpoint.
const APIPrefix = "/api/v1"

// Guards bundles the middleware shared by the route groups so each one is
// built once.
type Guards struct {
	Auth       echo.MiddlewareFunc // valid access token required
	Optional   echo.MiddlewareFunc // identity if a valid token is present
	Admin      echo.MiddlewareFunc // admin role, after Auth
	Cache      echo.MiddlewareFunc // Redis response cache for public reads
	Invalidate echo.MiddlewareFunc // drops cached reads after a write
	Limit      echo.MiddlewareFunc // general token bucket
	Sensitive  echo.MiddlewareFunc // tighter bucket for auth and votes
}

// NewGuards builds the shared middleware.  A nil Redis client turns caching
// and rate limiting into pass-throughs.
func NewGuards(tokens *utils.TokenIssuer, rdb *redis.Client, cache config.CacheConfig, limits config.RateLimitConfig) Guards {
	return Guards{
		Auth:       middleware.JWTAuth(tokens),
		Optional:   middleware.OptionalJWT(tokens),
		Admin:      middleware.RequireRole(model.RoleAdmin),
		Cache:      middleware.NewRedisCache(cache, rdb),
		Invalidate: middleware.InvalidateCache(cache, rdb),
		Limit:      middleware.NewTokenBucket(limits, rdb),
		Sensitive:  middleware.NewTokenBucket(limits.Sensitive(), rdb),
	}
}

// IPExtractor decides where the client IP used by the rate limiter comes
// from.  Without a trusted proxy only the socket address counts, so a
// client cannot pick its own bucket through X-Forwarded-For.  With one,
// the header is read but only hops from loopback and private ranges are
// skipped.
func IPExtractor(trustProxy bool) echo.IPExtractor {
	if trustProxy {
		return echo.ExtractIPFromXFFHeader()
	}
	return echo.ExtractIPDirect()
}

// write is the chain in front of every authenticated mutation.  The limiter
// runs after Auth so buckets are keyed by user.
func (g Guards) write() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{g.Auth, g.Limit, g.Invalidate}
}

// RegisterRoutes registers the unversioned operational endpoints: liveness,
// readiness and Prometheus metrics.
func RegisterRoutes(e *echo.Echo, db handler.Pinger) {
	e.GET("/healthz", handler.Health)
	e.GET("/readyz", handler.Ready(db))
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}

// RegisterAuth registers the /auth endpoints.  Every one of them goes
// through the sensitive rate limiter; logout, me and change-password also
// need a valid access token.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, g Guards) {
	auth := e.Group(APIPrefix+"/auth", g.Sensitive)
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login)
	auth.POST("/refresh-token", a.RefreshToken)
	auth.POST("/forgot-password", a.ForgotPassword)
	auth.POST("/reset-password", a.ResetPassword)

	auth.POST("/logout", a.Logout, g.Auth)
	auth.POST("/change-password", a.ChangePassword, g.Auth)
	auth.GET("/me", a.Me, g.Auth)
}

// RegisterEvents registers the /events endpoints.  Reads are public and
// cached; the admin listing needs the admin role; writes need a token and
// are checked for ownership by the service.
func RegisterEvents(e *echo.Echo, h *handler.EventHandler, g Guards) {
	ev := e.Group(APIPrefix + "/events")
	ev.GET("", h.List, g.Optional, g.Cache)
	ev.GET("/admin/all", h.ListAdmin, g.Auth, g.Admin)
	ev.GET("/:id", h.Get, g.Optional, g.Cache)

	w := g.write()
	ev.POST("", h.Create, w...)
	ev.PUT("/:id", h.Update, w...)
	ev.DELETE("/:id", h.Delete, w...)
	ev.PATCH("/:id/featured", h.SetFeatured, w...)
	ev.PATCH("/:id/home", h.SetHome, w...)
	ev.PATCH("/:id/status", h.SetStatus, w...)
}

// RegisterBlogs registers the /blogs endpoints.
func RegisterBlogs(e *echo.Echo, h *handler.BlogHandler, g Guards) {
	b := e.Group(APIPrefix + "/blogs")
	b.GET("", h.List, g.Optional, g.Cache)
	b.GET("/admin/all", h.ListAdmin, g.Auth, g.Admin)
	b.GET("/:id", h.Get, g.Optional, g.Cache)

	w := g.write()
	b.POST("", h.Create, w...)
	b.PUT("/:id", h.Update, w...)
	b.DELETE("/:id", h.Delete, w...)
	b.PATCH("/:id/status", h.SetStatus, w...)
	b.PATCH("/:id/featured", h.SetFeatured, w...)
}

// RegisterReviews registers the /reviews endpoints.  Likes and dislikes are
// anonymous, so only the sensitive rate limiter stands in front of them.
func RegisterReviews(e *echo.Echo, h *handler.ReviewHandler, g Guards) {
	r := e.Group(APIPrefix + "/reviews")
	r.GET("", h.List, g.Optional, g.Cache)
	r.GET("/:id", h.Get, g.Optional, g.Cache)

	r.POST("/:id/like", h.Like, g.Sensitive, g.Invalidate)
	r.POST("/:id/dislike", h.Dislike, g.Sensitive, g.Invalidate)

	w := g.write()
	r.POST("", h.Create, w...)
	r.PUT("/:id", h.Update, w...)
	r.DELETE("/:id", h.Delete, w...)
}
