// Package constants holds identifiers shared between configuration and wiring.
package constants

// Deployment environments.
const (
	EnvDevelop    = "develop"
	EnvStaging    = "staging"
	EnvProduction = "production"
)

// Pub/Sub providers for the event sink.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Storage drivers for subscriptions and the event log.
const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"
)
