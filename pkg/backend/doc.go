// Package backend adapts host package managers to one small contract.
//
// A Backend is a value identified by its Kind (paru, brew, cargo, fake).
// Backends compare equal when their kinds match and are cheap to copy; the
// Adapter doing the actual work is looked up from a process-wide cache the
// first time it is needed, or carried explicitly when built with Bind.
//
// Every adapter exposes the same five operations:
//
//	ListInstalled  every package present, dependencies included
//	ListLeaves     packages that were explicitly requested
//	Install        install a set of names
//	Remove         remove a set of names and their orphaned dependencies
//	ResolveName    map a generic name to this manager's package name
//
// Paru and Brew shell out to their CLIs through a Runner. Cargo is a
// placeholder whose operations all fail with NOT_IMPLEMENTED. Fake performs
// no I/O and records what it was asked to do.
package backend
