// Package registry provides a generic, thread-safe registry keyed by any
// comparable type. Items are either registered eagerly or created lazily,
// once per key, through Load. yuma uses it as the process-wide cache of
// package-manager adapters.
package registry
