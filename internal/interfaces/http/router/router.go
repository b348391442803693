package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// RegistrarFunc adapts a plain function to the RouteRegistrar interface
type RegistrarFunc func(rg *gin.RouterGroup)

// RegisterRoutes implements RouteRegistrar
func (f RegistrarFunc) RegisterRoutes(rg *gin.RouterGroup) {
	f(rg)
}

// Router manages HTTP route registration across auth tiers.
// Public routes need no token, secured routes need a valid token,
// approved routes additionally require an active vendor profile,
// and admin routes require the admin flag on the account.
type Router struct {
	engine     *gin.Engine
	apiVersion string

	authMiddleware     gin.HandlerFunc
	approvedMiddleware gin.HandlerFunc
	adminMiddleware    gin.HandlerFunc

	public   []RouteRegistrar
	secured  []RouteRegistrar
	approved []RouteRegistrar
	admin    []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, auth, approved, admin gin.HandlerFunc, opts ...RouterOption) *Router {
	r := &Router{
		engine:             engine,
		apiVersion:         "v1",
		authMiddleware:     auth,
		approvedMiddleware: approved,
		adminMiddleware:    admin,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Public adds registrars that require no authentication
func (r *Router) Public(registrars ...RouteRegistrar) *Router {
	r.public = append(r.public, registrars...)
	return r
}

// Secured adds registrars that require a valid token
func (r *Router) Secured(registrars ...RouteRegistrar) *Router {
	r.secured = append(r.secured, registrars...)
	return r
}

// Approved adds registrars that require an active vendor profile
func (r *Router) Approved(registrars ...RouteRegistrar) *Router {
	r.approved = append(r.approved, registrars...)
	return r
}

// Admin adds registrars that require platform admin access
func (r *Router) Admin(registrars ...RouteRegistrar) *Router {
	r.admin = append(r.admin, registrars...)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	secured := api.Group("", r.authMiddleware)
	for _, registrar := range r.secured {
		registrar.RegisterRoutes(secured)
	}

	approved := api.Group("", r.authMiddleware, r.approvedMiddleware)
	for _, registrar := range r.approved {
		registrar.RegisterRoutes(approved)
	}

	admin := api.Group("/admin", r.authMiddleware, r.adminMiddleware)
	for _, registrar := range r.admin {
		registrar.RegisterRoutes(admin)
	}
}
