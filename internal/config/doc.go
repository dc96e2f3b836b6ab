// Package config loads and merges application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// The merged [StructuredConfig] is the superset of everything the daemon
// and the server can be told; GetDaemonConfig and GetServerConfig project
// it down to the view each binary actually needs and validate that view.
package config
