// Package hcl provides the concrete HCL implementation of the bundle
// definition loader. It is responsible for file discovery, parsing, and the
// translation of bundle blocks into the format-agnostic bundle model.
package hcl
