// Package stores provides the persistence layer for resolved
// configurations. The SQLite-backed store keeps a history of every
// resolution together with the policy violations detected against it.
package stores
