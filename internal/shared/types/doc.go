// Package types defines the error kinds shared across the shellfs packages.
package types
