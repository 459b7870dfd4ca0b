// Package hcl provides the concrete HCL implementation of the config
// Loader and Encoder interfaces. It is responsible for file discovery,
// parsing, HCL-to-document translation, and CTY-to-Go number conversion.
//
// A model file holds exactly one model block:
//
//	model "J1713+0747" {
//	  component "Spindown" {
//	    param "F0"     { value = 218.81184 fit = true }
//	    param "PEPOCH" { value = 55000 }
//	  }
//	}
//
// A directory may be given instead of a file; its .hcl files are read
// together and must still hold a single model block between them.
package hcl
