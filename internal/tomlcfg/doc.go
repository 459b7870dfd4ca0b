// Package tomlcfg provides a TOML implementation of the config Loader and
// Encoder interfaces. The layout mirrors the HCL one:
//
//	name = "J1713+0747"
//
//	[[component]]
//	type = "Spindown"
//
//	  [[component.param]]
//	  name  = "F0"
//	  value = 218.8118
//	  fit   = true
package tomlcfg
