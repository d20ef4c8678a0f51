// Package config defines the format-agnostic model of a graph definition.
// Format-specific loaders (currently only HCL) translate their input into
// this model; the builder turns the model into a live graph without ever
// touching the source format.
package config
