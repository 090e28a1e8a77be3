package routecore

import "regexp"

// MethodKey identifies the bucket a handler is registered under: either a
// real HTTP method name (conventionally uppercase) or one of the two
// reserved tokens below. The sentinel byte prefix guarantees a MethodKey
// built from the reserved constants can never collide with a caller-supplied
// method string, since "\x00" cannot occur in a legal HTTP method token.
type MethodKey string

const (
	// MiddlewareMethod holds handlers that run for every request reaching
	// the node, regardless of the request's actual method. They never
	// terminate a match by themselves.
	MiddlewareMethod MethodKey = "\x00MIDDLEWARE"

	// AllMethod holds handlers that participate as if they were
	// method-specific handlers for any request method, at lower priority
	// than the request's actual method.
	AllMethod MethodKey = "\x00ALL"
)

// MethodBuckets groups the two StagedArrays kept per method key on a node.
type MethodBuckets[H any] struct {
	middleware  StagedArray[H]
	terminators StagedArray[H]
}

// Middleware returns the bucket's middleware array, treating a nil receiver
// (method key never registered on this node) as an empty one.
func (b *MethodBuckets[H]) Middleware() *StagedArray[H] {
	if b == nil {
		return &StagedArray[H]{}
	}
	return &b.middleware
}

// Terminators returns the bucket's terminator array, treating a nil receiver
// as an empty one.
func (b *MethodBuckets[H]) Terminators() *StagedArray[H] {
	if b == nil {
		return &StagedArray[H]{}
	}
	return &b.terminators
}

// ParameterBranch is a parametric edge hanging off a node: it owns a
// disjoint radix sub-tree for whatever pattern continues after the
// parameter.
type ParameterBranch[H any] struct {
	Name        string
	Regex       *regexp.Regexp
	regexSource string
	Multi       bool
	SubtreeRoot *RadixNode[H]
}

// sameBranch reports whether two branches would be indistinguishable at
// registration time (same name, same multi-ness, same regex source),
// the dedup key the router uses when descending into a parameter segment.
func (b *ParameterBranch[H]) sameBranch(name string, multi bool, regexSource string) bool {
	return b.Name == name && b.Multi == multi && b.regexSource == regexSource
}

// NodePayload is the per-node storage every RadixNode owns from
// construction: a method-keyed map of handler buckets, plus the staged list
// of parameter branches hanging off this node.
type NodePayload[H any] struct {
	methods           map[MethodKey]*MethodBuckets[H]
	parameterBranches StagedArray[*ParameterBranch[H]]
}

// NewNodePayload is the payload factory passed to a tree at construction
// time; it is invoked once per node, eagerly, so dispatch code never needs
// a nil check on payload itself (only on its lazily-populated method
// buckets).
func NewNodePayload[H any]() *NodePayload[H] {
	return &NodePayload[H]{methods: make(map[MethodKey]*MethodBuckets[H])}
}

// bucket returns the MethodBuckets for key, creating it on first use.
func (p *NodePayload[H]) bucket(key MethodKey) *MethodBuckets[H] {
	b, ok := p.methods[key]
	if !ok {
		b = &MethodBuckets[H]{}
		p.methods[key] = b
	}
	return b
}

// bucketOrNil returns the MethodBuckets for key without creating it, so
// dispatch can distinguish "registered but empty" from "never registered"
// without mutating the tree while serving a request.
func (p *NodePayload[H]) bucketOrNil(key MethodKey) *MethodBuckets[H] {
	return p.methods[key]
}
