// Package memory implements the store interfaces on top of mutex-guarded
// maps. It backs the "memory" database driver for local runs and serves as
// the fake store in service and handler tests. Documents are cloned on the
// way in and out so callers never share state with the store.
package memory
