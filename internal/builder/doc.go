// Package builder turns a loaded config model into a live graph: entities,
// operation nodes with their work functions resolved through the registry,
// and relations, including explicit cyclic ones.
package builder
