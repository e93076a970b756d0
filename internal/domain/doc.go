// Package domain contains the core model for memoform.
//
// The domain is UI- and persistence-agnostic: it does not depend on YAML parsing,
// the terminal, or the filesystem. Infra/adapters map into/from these types.
package domain
