package app

import (
	"path/filepath"
	"strings"

	"github.com/vk/pulsartime/internal/config"
	"github.com/vk/pulsartime/internal/hcl"
	"github.com/vk/pulsartime/internal/tomlcfg"
	"github.com/vk/pulsartime/internal/yamlcfg"
)

// LoaderFor picks the document loader by file extension. Anything that is
// not TOML or YAML, including a directory, is read as HCL.
func LoaderFor(path string) config.Loader {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlcfg.NewLoader()
	case ".yaml", ".yml":
		return yamlcfg.NewLoader()
	default:
		return hcl.NewLoader()
	}
}

// EncoderFor returns the serializer for an -emit format, or nil for the
// table output.
func EncoderFor(format string) config.Encoder {
	switch format {
	case EmitHCL:
		return hcl.Encoder{}
	case EmitTOML:
		return tomlcfg.Encoder{}
	case EmitYAML:
		return yamlcfg.Encoder{}
	default:
		return nil
	}
}
