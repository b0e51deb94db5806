// Package main is the entry point for the shellfs server.
//
// The server exposes a POSIX-like filesystem over HTTP for a remote
// target that only offers a text shell channel. Every filesystem
// operation is translated into a shell command, sent over SSH or a
// local shell, and judged by the text the command prints.
//
// Configuration:
//   - Environment variables with the SHELLFS prefix
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Against a local shell (development)
//	./server
//
//	# Against an SSH target
//	SHELLFS_TARGET_MODE=ssh SHELLFS_TARGET_ADDR=10.0.0.2:22 ./server -port 8090
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
