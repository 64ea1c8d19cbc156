// Package domain contains the core model for gmshcfd: airfoil sections,
// planforms, typed case configuration and the topology records produced by
// each construction stage.
//
// The domain is kernel- and persistence-agnostic: it does not depend on the
// geometry kernel, YAML parsing, or the filesystem. Infra/adapters map
// into/from these types.
package domain
