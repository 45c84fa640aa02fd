// Package config defines the format-agnostic configuration model for
// svgsprite, along with the Loader interface implemented by each supported
// file format.
//
// The `config.Model` is what the `app` package turns into pipeline options.
// Concrete implementations of Loader, such as for HCL and YAML, are provided
// in separate packages.
package config
