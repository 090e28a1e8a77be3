package blaze

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/emberweb/ember/pkg/routecore"
)

// Router adapts the generic routecore radix router to blaze's Context,
// translating blaze's `:name` / `*name` pattern syntax and constraint
// options into routecore patterns and staged handler registrations.
//
// Router Architecture:
//   - routecore.Router[*Context] does the actual radix-tree matching,
//     parameter capture and staged middleware/terminator dispatch
//   - Route/RouteOption/RouteGroup remain blaze's public configuration API
//   - Constraints compile down to anchored per-parameter regexes that
//     routecore enforces during pattern matching, not a bolt-on post-check
//
// Routing Features:
//   - Static routes: /users/profile
//   - Named parameters: /users/:id
//   - Wildcard routes: /files/*path
//   - Route constraints: /users/:id with WithIntConstraint("id") and the other With*Constraint options
//   - Priority-based matching
type Router struct {
	// core performs the actual radix-tree matching and staged dispatch
	core *routecore.Router[*Context]

	// routes stores all registered routes by key (method:pattern)
	// Used for route introspection and management
	routes map[string]*Route

	// config holds router configuration
	config RouterConfig
}

// RouterConfig holds router configuration.
//
// Only StrictSlash is wired into routecore today (it governs whether a
// trailing slash must match exactly). The remaining fields describe
// behavior implemented by the ambient HTTP stack (app.go, middleware)
// rather than the matching core itself.
type RouterConfig struct {
	// CaseSensitive when true, routes are case-sensitive
	CaseSensitive bool

	// StrictSlash when true, trailing slashes must match exactly
	StrictSlash bool

	// RedirectSlash when true, redirects to add/remove trailing slash
	RedirectSlash bool

	// UseEscapedPath when true, matches against escaped path
	UseEscapedPath bool

	// HandleMethodNotAllowed when true, returns 405 for wrong methods
	HandleMethodNotAllowed bool

	// HandleOPTIONS when true, automatically handles OPTIONS requests
	HandleOPTIONS bool

	// EnableMerging allows merging routes with same pattern
	EnableMerging bool

	// MaxMergeDepth limits recursion depth for route merging
	MaxMergeDepth int
}

// DefaultRouterConfig returns default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CaseSensitive:          false,
		StrictSlash:            false,
		RedirectSlash:          true,
		UseEscapedPath:         false,
		HandleMethodNotAllowed: true,
		HandleOPTIONS:          true,
		EnableMerging:          true,
		MaxMergeDepth:          10,
	}
}

// RouteConstraint defines constraints for route parameters.
// Compiles down to an anchored regex enforced by routecore at match time.
type RouteConstraint struct {
	Name    string
	Pattern *regexp.Regexp
	Type    ConstraintType
}

// ConstraintType defines the type of constraint
type ConstraintType string

const (
	IntConstraint   ConstraintType = "int"
	UUIDConstraint  ConstraintType = "uuid"
	AlphaConstraint ConstraintType = "alpha"
	RegexConstraint ConstraintType = "regex"
)

// Route represents an enhanced route with constraints and middleware
type Route struct {
	Method      string
	Pattern     string
	Handler     HandlerFunc
	Middleware  []MiddlewareFunc
	Constraints map[string]*RouteConstraint
	Name        string
	Params      []string
	Merged      []*Route
	Priority    int
	Tags        []string
}

type RouteGroup struct {
	Name        string
	Description string
	Routes      []*Route
	Middleware  []MiddlewareFunc
}

// NewRouter creates a new router instance.
func NewRouter(config ...RouterConfig) *Router {
	var cfg RouterConfig
	if len(config) > 0 {
		cfg = config[0]
	} else {
		cfg = DefaultRouterConfig()
	}

	return &Router{
		core:   routecore.NewRouter[*Context](routecore.Options{StrictSlashes: cfg.StrictSlash}),
		routes: make(map[string]*Route),
		config: cfg,
	}
}

// wrapMiddleware adapts a blaze MiddlewareFunc into the onion-style
// routecore.HandlerFunc the core dispatcher drives.
func wrapMiddleware(mw MiddlewareFunc) routecore.HandlerFunc[*Context] {
	return func(ctx *Context, next func() error) error {
		inner := mw(func(c *Context) error { return next() })
		return inner(ctx)
	}
}

// wrapTerminal composes route-local middleware around the final handler
// and adapts the result into a routecore.HandlerFunc terminator.
func wrapTerminal(h HandlerFunc, extra []MiddlewareFunc) routecore.HandlerFunc[*Context] {
	return func(ctx *Context, next func() error) error {
		handler := h
		for i := len(extra) - 1; i >= 0; i-- {
			handler = extra[i](handler)
		}
		return handler(ctx)
	}
}

// registerMiddleware registers mw as routecore middleware rooted at pattern,
// applying to every request whose path descends from it.
func (r *Router) registerMiddleware(pattern string, stage int, mw MiddlewareFunc) {
	if pattern == "" {
		pattern = "/"
	}
	if err := r.core.AddMiddleware(routecore.MiddlewareMethod, pattern, stage, wrapMiddleware(mw)); err != nil {
		panic(fmt.Sprintf("blaze: failed to register middleware at %q: %v", pattern, err))
	}
}

// MergeRoutes merges multiple routes with the same pattern into a single
// all-methods terminator that dispatches by method internally.
func (r *Router) MergeRoutes(pattern string) error {
	if !r.config.EnableMerging {
		return fmt.Errorf("route merging is disabled")
	}

	var routesToMerge []*Route
	for _, route := range r.routes {
		if route.Pattern == pattern {
			routesToMerge = append(routesToMerge, route)
		}
	}

	if len(routesToMerge) <= 1 {
		return fmt.Errorf("no routes to merge for pattern: %s", pattern)
	}

	masterRoute := &Route{
		Pattern:     pattern,
		Merged:      routesToMerge,
		Handler:     r.createMergedHandler(routesToMerge),
		Middleware:  r.mergeMidlleware(routesToMerge),
		Constraints: r.mergeConstraints(routesToMerge),
		Priority:    r.calculateMergedPriority(routesToMerge),
	}

	compiled := r.compilePattern(pattern, masterRoute.Constraints)
	coreHandler := wrapTerminal(masterRoute.Handler, masterRoute.Middleware)
	if err := r.core.AddTerminator(routecore.AllMethod, compiled, masterRoute.Priority, coreHandler); err != nil {
		return fmt.Errorf("failed to merge routes for pattern %s: %w", pattern, err)
	}

	return nil
}

// createMergedHandler creates a handler that can handle multiple HTTP methods
func (r *Router) createMergedHandler(routes []*Route) HandlerFunc {
	methodMap := make(map[string]HandlerFunc)

	for _, route := range routes {
		methodMap[route.Method] = route.Handler
	}

	return func(c *Context) error {
		method := c.Method()
		if handler, exists := methodMap[method]; exists {
			return handler(c)
		}

		return c.Status(405).JSON(Map{
			"error":           "Method Not Allowed",
			"allowed_methods": r.getAllowedMethods(routes),
		})
	}
}

// mergeMidlleware combines middleware from multiple routes
func (r *Router) mergeMidlleware(routes []*Route) []MiddlewareFunc {
	var merged []MiddlewareFunc
	seen := make(map[string]bool)

	for _, route := range routes {
		for _, mw := range route.Middleware {
			key := fmt.Sprintf("%p", mw)
			if !seen[key] {
				merged = append(merged, mw)
				seen[key] = true
			}
		}
	}

	return merged
}

// mergeConstraints combines constraints from multiple routes
func (r *Router) mergeConstraints(routes []*Route) map[string]*RouteConstraint {
	merged := make(map[string]*RouteConstraint)

	for _, route := range routes {
		for param, constraint := range route.Constraints {
			if existing, exists := merged[param]; exists {
				merged[param] = r.mergeConstraint(existing, constraint)
			} else {
				merged[param] = constraint
			}
		}
	}

	return merged
}

// mergeConstraint merges two constraints for the same parameter
func (r *Router) mergeConstraint(c1, c2 *RouteConstraint) *RouteConstraint {
	if c1.Type != c2.Type {
		return &RouteConstraint{
			Name:    c1.Name,
			Type:    RegexConstraint,
			Pattern: regexp.MustCompile(".*"),
		}
	}
	return c1
}

// calculateMergedPriority calculates priority for merged routes
func (r *Router) calculateMergedPriority(routes []*Route) int {
	maxPriority := 0
	for _, route := range routes {
		if route.Priority > maxPriority {
			maxPriority = route.Priority
		}
	}
	return maxPriority
}

// getAllowedMethods returns allowed methods for a set of routes
func (r *Router) getAllowedMethods(routes []*Route) []string {
	var methods []string
	seen := make(map[string]bool)

	for _, route := range routes {
		if !seen[route.Method] {
			methods = append(methods, route.Method)
			seen[route.Method] = true
		}
	}

	return methods
}

// AddRouteGroup adds multiple routes as a group
func (r *Router) AddRouteGroup(group *RouteGroup) {
	for _, route := range group.Routes {
		combinedMiddleware := append(group.Middleware, route.Middleware...)
		route.Middleware = combinedMiddleware

		r.AddRoute(route.Method, route.Pattern, route.Handler,
			WithMiddleware(combinedMiddleware...))
	}
}

// GetRoutesByTag returns routes filtered by tags
func (r *Router) GetRoutesByTag(tag string) []*Route {
	var routes []*Route
	for _, route := range r.routes {
		for _, routeTag := range route.Tags {
			if routeTag == tag {
				routes = append(routes, route)
				break
			}
		}
	}
	return routes
}

// GetRouteInfo returns detailed information about all routes
func (r *Router) GetRouteInfo() map[string]*RouteInfo {
	info := make(map[string]*RouteInfo)

	for key, route := range r.routes {
		info[key] = &RouteInfo{
			Method:          route.Method,
			Pattern:         route.Pattern,
			Name:            route.Name,
			Params:          route.Params,
			HasConstraints:  len(route.Constraints) > 0,
			MiddlewareCount: len(route.Middleware),
			Priority:        route.Priority,
			Tags:            route.Tags,
			IsMerged:        len(route.Merged) > 0,
		}
	}

	return info
}

// RouteInfo provides information about a route
type RouteInfo struct {
	Method          string   `json:"method"`
	Pattern         string   `json:"pattern"`
	Name            string   `json:"name,omitempty"`
	Params          []string `json:"params,omitempty"`
	HasConstraints  bool     `json:"has_constraints"`
	MiddlewareCount int      `json:"middleware_count"`
	Priority        int      `json:"priority"`
	Tags            []string `json:"tags,omitempty"`
	IsMerged        bool     `json:"is_merged"`
}

// WithPriority sets the route priority, used as the routecore stage of the
// route's terminator; it orders terminators registered on the same node and method.
func WithPriority(priority int) RouteOption {
	return func(r *Route) {
		r.Priority = priority
	}
}

// WithTags adds tags to the route
func WithTags(tags ...string) RouteOption {
	return func(r *Route) {
		r.Tags = append(r.Tags, tags...)
	}
}

func WithMerge(enable bool) RouteOption {
	return func(r *Route) {
		// Handled at router level via MergeRoutes.
	}
}

// AddRoute adds a route with constraints and middleware.
//
// Route Registration Process:
//  1. Create route object with handler
//  2. Apply route options (middleware, constraints, etc.)
//  3. Parse pattern to extract parameters
//  4. Compile constraints into the routecore pattern and register the
//     composed handler as a terminator
//  5. Store in routes map for introspection
func (r *Router) AddRoute(method, pattern string, handler HandlerFunc, options ...RouteOption) *Route {
	route := &Route{
		Method:      method,
		Pattern:     pattern,
		Handler:     handler,
		Middleware:  make([]MiddlewareFunc, 0),
		Constraints: make(map[string]*RouteConstraint),
		Params:      make([]string, 0),
	}

	for _, option := range options {
		option(route)
	}

	r.parsePattern(route)

	compiled := r.compilePattern(pattern, route.Constraints)
	coreHandler := wrapTerminal(route.Handler, route.Middleware)
	if err := r.core.AddTerminator(routecore.MethodKey(method), compiled, route.Priority, coreHandler); err != nil {
		panic(fmt.Sprintf("blaze: failed to register route %s %s: %v", method, pattern, err))
	}

	key := method + ":" + pattern
	r.routes[key] = route

	return route
}

// RouteOption configures a Route during registration.
type RouteOption func(*Route)

// WithName sets the route name
func WithName(name string) RouteOption {
	return func(r *Route) {
		r.Name = name
	}
}

// WithMiddleware adds middleware scoped to this specific route
func WithMiddleware(middleware ...MiddlewareFunc) RouteOption {
	return func(r *Route) {
		r.Middleware = append(r.Middleware, middleware...)
	}
}

// WithConstraint adds a parameter constraint
func WithConstraint(param string, constraint *RouteConstraint) RouteOption {
	return func(r *Route) {
		r.Constraints[param] = constraint
	}
}

// WithIntConstraint adds an integer constraint
func WithIntConstraint(param string) RouteOption {
	return func(r *Route) {
		r.Constraints[param] = &RouteConstraint{
			Name:    param,
			Type:    IntConstraint,
			Pattern: regexp.MustCompile(`^\d+$`),
		}
	}
}

// WithUUIDConstraint adds a UUID constraint
func WithUUIDConstraint(param string) RouteOption {
	return func(r *Route) {
		r.Constraints[param] = &RouteConstraint{
			Name:    param,
			Type:    UUIDConstraint,
			Pattern: regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`),
		}
	}
}

// WithAlphaConstraint adds an alphabetic-only constraint
func WithAlphaConstraint(param string) RouteOption {
	return func(r *Route) {
		r.Constraints[param] = &RouteConstraint{
			Name:    param,
			Type:    AlphaConstraint,
			Pattern: regexp.MustCompile(`^[a-zA-Z]+$`),
		}
	}
}

// WithRegexConstraint adds a custom regex constraint
func WithRegexConstraint(param string, pattern string) RouteOption {
	return func(r *Route) {
		r.Constraints[param] = &RouteConstraint{
			Name:    param,
			Type:    RegexConstraint,
			Pattern: regexp.MustCompile(pattern),
		}
	}
}

// parsePattern extracts parameter names from the route pattern for
// introspection (RouteInfo.Params); routecore does its own independent
// parse of the compiled pattern when the route is registered.
func (r *Router) parsePattern(route *Route) {
	pattern := route.Pattern
	segments := strings.Split(strings.Trim(pattern, "/"), "/")

	for _, segment := range segments {
		if strings.HasPrefix(segment, ":") {
			paramName := strings.SplitN(segment[1:], "(", 2)[0]
			paramName = strings.TrimSuffix(paramName, "*")
			route.Params = append(route.Params, paramName)
		} else if strings.HasPrefix(segment, "*") {
			paramName := segment[1:]
			if paramName == "" {
				paramName = "wildcard"
			}
			route.Params = append(route.Params, paramName)
		}
	}
}

// compilePattern translates blaze's `:name` / `*name` pattern syntax into
// routecore's grammar, embedding any parameter constraint as an anchored
// regex and rewriting catch-all `*name` segments as routecore's trailing
// `:name*` multi-segment parameter.
func (r *Router) compilePattern(pattern string, constraints map[string]*RouteConstraint) string {
	segments := strings.Split(pattern, "/")

	for i, seg := range segments {
		if seg == "" {
			continue
		}

		switch seg[0] {
		case ':':
			name := seg[1:]
			if c, ok := constraints[name]; ok {
				segments[i] = ":" + name + "(" + constraintRegexSource(c.Pattern) + ")"
			}
		case '*':
			name := seg[1:]
			if name == "" {
				name = "wildcard"
			}
			if c, ok := constraints[name]; ok {
				segments[i] = ":" + name + "(" + constraintRegexSource(c.Pattern) + ")*"
			} else {
				segments[i] = ":" + name + "*"
			}
		}
	}

	return strings.Join(segments, "/")
}

// constraintRegexSource strips the redundant anchors most constraint
// patterns are written with, since routecore anchors the compiled
// parameter regex itself.
func constraintRegexSource(re *regexp.Regexp) string {
	src := re.String()
	src = strings.TrimPrefix(src, "^")
	src = strings.TrimSuffix(src, "$")
	return src
}
