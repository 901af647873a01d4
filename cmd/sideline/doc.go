// Package main hosts the Sideline CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into pipeline
// runs, run-ledger queries, guided event scaffolding, and configuration
// management. It centralizes config loading so every command sees the same
// normalized settings.
package main
