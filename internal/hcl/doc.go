// Package hcl implements the HCL-backed config.Loader: it discovers and
// parses .hcl graph definition files and translates their blocks into the
// format-agnostic config model.
package hcl
