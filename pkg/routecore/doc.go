// Package routecore implements the radix-tree routing core shared by blaze's
// HTTP router: a path-pattern compiler, a compact prefix tree with parameter
// branches, and a staged, onion-style dispatch pipeline.
//
// The core is deliberately independent of any HTTP transport. It consumes a
// caller-supplied context value that can receive route parameters
// (ParamSetter) and hands control back to an outer continuation when no
// route matches. Everything about request parsing, response writing, and
// socket lifecycle lives outside this package.
package routecore
