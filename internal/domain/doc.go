// Package domain contains the core domain model for aerogrid.
//
// The domain is transport- and persistence-agnostic: it does not depend on YAML parsing,
// CSV readers or the filesystem. Infra/adapters map into/from these types.
package domain
