// Package server assembles the shellfs HTTP server.
//
// It wires all components together:
//   - HTTP routing with Gin
//   - Middleware stack (CORS, rate limiting, recovery, metrics)
//   - Transport to the target (SSH session or local shell)
//   - Directory tree cache and capability resolver
//   - The filesystem facade itself
//
// Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger
//  3. Open the command channel to the target
//  4. Build the tree cache and capability resolver
//  5. Setup HTTP routes and middleware
//  6. Start HTTP server
//  7. Graceful shutdown on signal
package server
