package routecore

import "strings"

// Options holds the router's single enumerated configuration knob.
type Options struct {
	// StrictSlashes, when true, requires a request path to match a
	// pattern's trailing slash exactly. When false (the default), a
	// terminal match against a remaining path of exactly "/" is accepted
	// even though the pattern itself did not end in "/".
	StrictSlashes bool
}

// RouteRecord is one entry of a Router's registration history, returned by
// Routes() for introspection.
type RouteRecord struct {
	Method  MethodKey
	Pattern string
	Stage   int
	Kind    RouteKind
}

// RouteKind distinguishes a middleware registration from a terminator one
// in a RouteRecord.
type RouteKind int

const (
	KindMiddleware RouteKind = iota
	KindTerminator
)

// Router owns a single radix tree of handler groups and drives the staged
// dispatch algorithm over it. It is safe for concurrent dispatch once
// registration has finished; registration itself must not overlap with
// dispatch or with other registration calls.
type Router[C ParamSetter] struct {
	root *RadixNode[HandlerFunc[C]]
	opts Options

	registered []RouteRecord
}

// NewRouter constructs an empty router.
func NewRouter[C ParamSetter](opts Options) *Router[C] {
	return &Router[C]{
		root: NewRadixRoot[HandlerFunc[C]](NewNodePayload[HandlerFunc[C]]),
		opts: opts,
	}
}

// Routes returns every (method, pattern) pair registered so far, in
// registration order.
func (r *Router[C]) Routes() []RouteRecord {
	out := make([]RouteRecord, len(r.registered))
	copy(out, r.registered)
	return out
}

// AddMiddleware registers handlers to run for every request reaching the
// pattern's node under the given method key, at stage, never terminating
// the match by themselves.
func (r *Router[C]) AddMiddleware(method MethodKey, pattern string, stage int, handlers ...HandlerFunc[C]) error {
	return r.add(method, pattern, stage, handlers, KindMiddleware)
}

// AddTerminator registers handlers that conclude a match at the pattern's
// node under the given method key, at stage.
func (r *Router[C]) AddTerminator(method MethodKey, pattern string, stage int, handlers ...HandlerFunc[C]) error {
	return r.add(method, pattern, stage, handlers, KindTerminator)
}

func (r *Router[C]) add(method MethodKey, pattern string, stage int, handlers []HandlerFunc[C], kind RouteKind) error {
	if len(handlers) == 0 {
		return &EmptyHandlerList{Method: method, Pattern: pattern}
	}
	segments, err := ParsePattern(pattern)
	if err != nil {
		return err
	}

	node := r.resolve(segments)
	bucket := node.Payload.bucket(method)
	switch kind {
	case KindMiddleware:
		bucket.middleware.Append(stage, handlers...)
	case KindTerminator:
		bucket.terminators.Append(stage, handlers...)
	}

	r.registered = append(r.registered, RouteRecord{Method: method, Pattern: pattern, Stage: stage, Kind: kind})
	return nil
}

// resolve descends the tree for a parsed segment list, creating literal
// nodes and parameter branches as needed, and returns the node the full
// pattern resolves to.
func (r *Router[C]) resolve(segments []Segment) *RadixNode[HandlerFunc[C]] {
	current := r.root
	for _, seg := range segments {
		switch seg.Kind {
		case SegmentLiteral:
			current = current.FindOrCreate(seg.Text)
		case SegmentParameter:
			current = resolveParameterBranch(current, seg)
		}
	}
	return current
}

func resolveParameterBranch[C ParamSetter](node *RadixNode[HandlerFunc[C]], seg Segment) *RadixNode[HandlerFunc[C]] {
	for _, b := range node.Payload.parameterBranches.Ordered() {
		if b.sameBranch(seg.Name, seg.Multi, seg.RegexSource()) {
			return b.SubtreeRoot
		}
	}
	branch := &ParameterBranch[HandlerFunc[C]]{
		Name:        seg.Name,
		Regex:       seg.Regex,
		regexSource: seg.RegexSource(),
		Multi:       seg.Multi,
		SubtreeRoot: NewRadixRoot[HandlerFunc[C]](node.newPayload),
	}
	node.Payload.parameterBranches.Append(seg.Stage, branch)
	return branch.SubtreeRoot
}

// Dispatch matches method and path against the tree, driving the merged
// handler pipeline per spec, and calls outerNext if nothing matches.
func (r *Router[C]) Dispatch(method, path string, ctx C, outerNext func() error) error {
	acc := &[]*StagedArray[HandlerFunc[C]]{}
	return dispatch(r.root, method, path, ctx, outerNext, r.opts.StrictSlashes, acc)
}

func dispatch[C ParamSetter](
	root *RadixNode[HandlerFunc[C]],
	method, path string,
	ctx C,
	outerNext func() error,
	strictSlashes bool,
	acc *[]*StagedArray[HandlerFunc[C]],
) error {
	w := NewWalker(root, path)

	for {
		step, ok := w.Next()
		if !ok {
			break
		}
		node := step.Node
		remaining := step.Remaining

		peekLabel, hasNext := w.PeekNextChildLabel()
		isTerminalNode := !hasNext
		isBoundary := isTerminalNode || strings.HasSuffix(node.Segment(), "/") || (hasNext && strings.HasPrefix(peekLabel, "/"))

		if isBoundary {
			ended, err := handleBoundaryNode(node, method, remaining, isTerminalNode, strictSlashes, ctx, acc)
			if ended {
				return err
			}
		}

		if !node.Payload.parameterBranches.IsEmpty() {
			handled, err := tryParameterBranches(node, method, remaining, ctx, outerNext, strictSlashes, acc)
			if handled {
				return err
			}
		}
	}

	return outerNext()
}

// handleBoundaryNode implements the terminal-match and non-terminal "else"
// branches of the dispatch procedure for one segment-boundary node. ended
// is true when the whole dispatch has concluded (a terminal match with
// terminators was driven); err is only meaningful when ended is true.
func handleBoundaryNode[C ParamSetter](
	node *RadixNode[HandlerFunc[C]],
	method string,
	remaining string,
	isTerminalNode bool,
	strictSlashes bool,
	ctx C,
	acc *[]*StagedArray[HandlerFunc[C]],
) (ended bool, err error) {
	isTerminalMatch := remaining == "" || (!strictSlashes && remaining == "/")

	if isTerminalNode && isTerminalMatch {
		methodData := node.Payload.bucketOrNil(MethodKey(method))

		var headMethodData *MethodBuckets[HandlerFunc[C]]
		if method == "HEAD" && methodData.Terminators().IsEmpty() {
			headMethodData = methodData
			methodData = node.Payload.bucketOrNil(MethodKey("GET"))
		}

		allData := node.Payload.bucketOrNil(AllMethod)
		hasTerminators := !methodData.Terminators().IsEmpty() || !allData.Terminators().IsEmpty()

		if hasTerminators {
			mw := node.Payload.bucketOrNil(MiddlewareMethod)

			arrays := make([]*StagedArray[HandlerFunc[C]], 0, 6)
			arrays = append(arrays, mw.Middleware())
			arrays = append(arrays, *acc...)
			arrays = append(arrays, mw.Terminators())
			if headMethodData != nil {
				arrays = append(arrays, headMethodData.Middleware())
			}
			arrays = append(arrays, methodData.Middleware())
			arrays = append(arrays, allData.Middleware())

			merged := MergeStaged(arrays...)
			if err := composeGroup(merged, ctx, noop); err != nil {
				return true, err
			}
			if err := composeGroup(methodData.Terminators().Ordered(), ctx, noop); err != nil {
				return true, err
			}
			if err := composeGroup(allData.Terminators().Ordered(), ctx, noop); err != nil {
				return true, err
			}
			return true, nil
		}
	}

	mw := node.Payload.bucketOrNil(MiddlewareMethod)
	if !mw.Terminators().IsEmpty() {
		*acc = append(*acc, mw.Terminators())
	}
	if !mw.Middleware().IsEmpty() {
		if err := composeGroup(mw.Middleware().Ordered(), ctx, noop); err != nil {
			return true, err
		}
	}
	return false, nil
}

func noop() error { return nil }

// tryParameterBranches attempts node's parameter branches in priority
// order, committing to (and recursing into) the first one whose candidate
// value is accepted. handled is true once a branch has been committed to,
// regardless of whether its own recursive dispatch matched a route; in
// that case err is the final result for the whole outer Dispatch call.
func tryParameterBranches[C ParamSetter](
	node *RadixNode[HandlerFunc[C]],
	method string,
	remaining string,
	ctx C,
	outerNext func() error,
	strictSlashes bool,
	acc *[]*StagedArray[HandlerFunc[C]],
) (handled bool, err error) {
	segmentValue := remaining
	if idx := strings.IndexByte(remaining, '/'); idx >= 0 {
		segmentValue = remaining[:idx]
	}

	for _, branch := range node.Payload.parameterBranches.Ordered() {
		candidate := segmentValue
		if branch.Multi {
			candidate = remaining
		}

		if branch.Regex != nil {
			loc := branch.Regex.FindStringIndex(candidate)
			if loc == nil {
				continue
			}
			candidate = candidate[loc[0]:loc[1]]
		} else if candidate == "" {
			continue
		}

		name := branch.Name
		var prior string
		if g, ok := any(ctx).(ParamGetter); ok {
			prior, _ = g.GetParam(name)
		}

		ctx.SetParam(name, candidate)
		wrapped := func() error {
			ctx.SetParam(name, prior)
			e := outerNext()
			ctx.SetParam(name, candidate)
			return e
		}

		innerPath := remaining[len(candidate):]
		result := dispatch(branch.SubtreeRoot, method, innerPath, ctx, wrapped, strictSlashes, acc)

		ctx.SetParam(name, prior)
		return true, result
	}

	return false, nil
}
