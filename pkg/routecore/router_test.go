package routecore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testCtx is the minimal ParamSetter/ParamGetter implementation used to
// exercise the router without any transport dependency.
type testCtx struct {
	params map[string]string
	trace  *[]string
}

func newTestCtx(trace *[]string) *testCtx {
	return &testCtx{params: map[string]string{}, trace: trace}
}

func (c *testCtx) SetParam(name, value string) { c.params[name] = value }

func (c *testCtx) GetParam(name string) (string, bool) {
	v, ok := c.params[name]
	return v, ok
}

func named(trace *[]string, name string) HandlerFunc[*testCtx] {
	return func(ctx *testCtx, next func() error) error {
		*trace = append(*trace, name)
		return next()
	}
}

func terminalNamed(trace *[]string, name string) HandlerFunc[*testCtx] {
	return func(ctx *testCtx, next func() error) error {
		*trace = append(*trace, name)
		return nil
	}
}

func TestDispatch_StageMerge(t *testing.T) {
	var trace []string
	r := NewRouter[*testCtx](Options{})

	require.NoError(t, r.AddMiddleware(MiddlewareMethod, "/", 0, named(&trace, "m0")))
	require.NoError(t, r.AddMiddleware(MiddlewareMethod, "/", 10, named(&trace, "m10")))
	require.NoError(t, r.AddMiddleware(MiddlewareMethod, "/", -5, named(&trace, "m-5")))
	require.NoError(t, r.AddMiddleware(MiddlewareMethod, "/", 5, named(&trace, "m5")))
	require.NoError(t, r.AddMiddleware(MethodKey("GET"), "/", -2, named(&trace, "g")))
	require.NoError(t, r.AddMiddleware(AllMethod, "/", -3, named(&trace, "a")))
	require.NoError(t, r.AddTerminator(AllMethod, "/", 0, terminalNamed(&trace, "T")))

	ctx := newTestCtx(&trace)
	called404 := false
	err := r.Dispatch("GET", "/", ctx, func() error { called404 = true; return nil })

	require.NoError(t, err)
	assert.False(t, called404)
	assert.Equal(t, []string{"m-5", "a", "g", "m0", "m5", "m10", "T"}, trace)
}

func TestDispatch_TrailingSlashNonStrict(t *testing.T) {
	var trace []string
	r := NewRouter[*testCtx](Options{})
	require.NoError(t, r.AddTerminator(MethodKey("GET"), "/about", 0, terminalNamed(&trace, "about")))

	ctx := newTestCtx(&trace)
	require.NoError(t, r.Dispatch("GET", "/about", ctx, func() error { t.Fatal("unexpected fallthrough"); return nil }))
	assert.Equal(t, []string{"about"}, trace)

	trace = nil
	require.NoError(t, r.Dispatch("GET", "/about/", ctx, func() error { t.Fatal("unexpected fallthrough"); return nil }))
	assert.Equal(t, []string{"about"}, trace)

	notFound := false
	require.NoError(t, r.Dispatch("GET", "/shop", ctx, func() error { notFound = true; return nil }))
	assert.True(t, notFound)
}

func TestDispatch_NestedPrefixMiddleware(t *testing.T) {
	var trace []string
	r := NewRouter[*testCtx](Options{})

	require.NoError(t, r.AddMiddleware(MiddlewareMethod, "/api", 0, named(&trace, "A")))
	require.NoError(t, r.AddTerminator(MiddlewareMethod, "/", 0, terminalNamed(&trace, "T")))
	require.NoError(t, r.AddTerminator(MethodKey("GET"), "/api/user", 0, terminalNamed(&trace, "U")))

	ctx := newTestCtx(&trace)
	require.NoError(t, r.Dispatch("GET", "/api/user", ctx, func() error { t.Fatal("unexpected fallthrough"); return nil }))

	assert.ElementsMatch(t, []string{"T", "A", "U"}, trace)
	assert.Equal(t, "U", trace[len(trace)-1], "the terminal handler always runs last")
}

func TestDispatch_ParameterCaptureWithRegex(t *testing.T) {
	var trace []string
	r := NewRouter[*testCtx](Options{})

	var captured string
	require.NoError(t, r.AddTerminator(MethodKey("GET"), `/user/:id(\d+)`, 0, func(ctx *testCtx, next func() error) error {
		captured, _ = ctx.GetParam("id")
		return nil
	}))

	ctx := newTestCtx(&trace)
	require.NoError(t, r.Dispatch("GET", "/user/42", ctx, func() error { t.Fatal("expected match"); return nil }))
	assert.Equal(t, "42", captured)

	notFound := false
	require.NoError(t, r.Dispatch("GET", "/user/abc", ctx, func() error { notFound = true; return nil }))
	assert.True(t, notFound)
}

func TestDispatch_MultiSegmentParameterWithAnchoredRegex(t *testing.T) {
	var trace []string
	r := NewRouter[*testCtx](Options{})

	var captured string
	require.NoError(t, r.AddTerminator(MethodKey("GET"), `/post2/:name([\w/]{1,3}$)*`, 0, func(ctx *testCtx, next func() error) error {
		captured, _ = ctx.GetParam("name")
		return nil
	}))

	ctx := newTestCtx(&trace)
	require.NoError(t, r.Dispatch("GET", "/post2/a/a", ctx, func() error { t.Fatal("expected match"); return nil }))
	assert.Equal(t, "a/a", captured)

	notFound := false
	require.NoError(t, r.Dispatch("GET", "/post2/a/a/wrong", ctx, func() error { notFound = true; return nil }))
	assert.True(t, notFound)
}

func TestDispatch_AdjacentParameters(t *testing.T) {
	var trace []string
	r := NewRouter[*testCtx](Options{})

	var short, rest string
	require.NoError(t, r.AddTerminator(MethodKey("GET"), `/user/:short(\d{1,2}):rest`, 0, func(ctx *testCtx, next func() error) error {
		short, _ = ctx.GetParam("short")
		rest, _ = ctx.GetParam("rest")
		return nil
	}))

	ctx := newTestCtx(&trace)
	require.NoError(t, r.Dispatch("GET", "/user/45asd", ctx, func() error { t.Fatal("expected match"); return nil }))
	assert.Equal(t, "45", short)
	assert.Equal(t, "asd", rest)

	notFound := false
	require.NoError(t, r.Dispatch("GET", "/user/45asd/extra", ctx, func() error { notFound = true; return nil }))
	assert.True(t, notFound)
}

func TestDispatch_HeadFallsBackToGet(t *testing.T) {
	var trace []string
	r := NewRouter[*testCtx](Options{})

	require.NoError(t, r.AddMiddleware(MethodKey("HEAD"), "/ping", 0, named(&trace, "head-mw")))
	require.NoError(t, r.AddTerminator(MethodKey("GET"), "/ping", 0, terminalNamed(&trace, "get-term")))

	ctx := newTestCtx(&trace)
	require.NoError(t, r.Dispatch("HEAD", "/ping", ctx, func() error { t.Fatal("expected HEAD to fall back to GET"); return nil }))
	assert.Equal(t, []string{"head-mw", "get-term"}, trace)
}

func TestDispatch_ParameterNonLeakage(t *testing.T) {
	var trace []string
	r := NewRouter[*testCtx](Options{})

	require.NoError(t, r.AddTerminator(MethodKey("GET"), "/user/:id", 0, terminalNamed(&trace, "user")))

	ctx := newTestCtx(&trace)
	ctx.SetParam("id", "pre-existing")

	outerSawID := ""
	require.NoError(t, r.Dispatch("GET", "/user/99", ctx, func() error { return nil }))
	v, _ := ctx.GetParam("id")
	assert.Equal(t, "pre-existing", v, "param is restored to its pre-dispatch value once dispatch returns")

	// A request that does NOT match must leave ctx.params exactly as it
	// was before dispatch began, once outerNext (here, 404 handling) runs.
	require.NoError(t, r.Dispatch("GET", "/other/99", ctx, func() error {
		outerSawID, _ = ctx.GetParam("id")
		return nil
	}))
	assert.Equal(t, "pre-existing", outerSawID)
}

func TestDispatch_EmptyHandlerListRejected(t *testing.T) {
	r := NewRouter[*testCtx](Options{})
	err := r.AddTerminator(MethodKey("GET"), "/x", 0)
	require.Error(t, err)
	var empty *EmptyHandlerList
	require.ErrorAs(t, err, &empty)
}

func TestRouter_RoutesIntrospection(t *testing.T) {
	r := NewRouter[*testCtx](Options{})
	var trace []string
	require.NoError(t, r.AddTerminator(MethodKey("GET"), "/a", 0, terminalNamed(&trace, "a")))
	require.NoError(t, r.AddTerminator(MethodKey("POST"), "/b", 0, terminalNamed(&trace, "b")))

	routes := r.Routes()
	require.Len(t, routes, 2)
	assert.Equal(t, "/a", routes[0].Pattern)
	assert.Equal(t, MethodKey("POST"), routes[1].Method)
}
