// Package config defines the format-agnostic description of a timing model
// (which components it holds and how their parameters are set) along with
// the Loader interface that format-specific packages implement.
//
// The config.Document is the single input of the builder package. Concrete
// loaders for HCL and TOML live in separate packages.
package config
