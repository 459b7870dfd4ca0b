// Package yamlcfg provides a YAML implementation of the config Loader and
// Encoder interfaces:
//
//	name: J1713+0747
//	components:
//	  - type: Spindown
//	    params:
//	      - name: F0
//	        value: 218.8118
//	        fit: true
package yamlcfg
