// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the primary execution lifecycle: load a
// model document, build the timing model from the component registry, then
// evaluate it over an epoch grid or serialize it back out. It is decoupled
// from any specific entrypoint like a CLI.
package app
