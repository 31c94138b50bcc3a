// Package rules provides the YAML ruleset controlling which categories
// run and how their findings are ranked.
//
// The ruleset is optional; the zero configuration enables every category
// at its built-in severity. A ruleset can:
//   - restrict the enabled categories
//   - raise or lower a category's severity
//   - set a minimum severity below which findings are dropped
package rules
