// Package hclutil holds small helpers on top of hashicorp/hcl that the
// model loader shares.
package hclutil

import (
	"github.com/hashicorp/hcl/v2"
)

// FindUniqueBlock returns the single block of the given type among blocks.
// Every repeat after the first is reported as a diagnostic. If no block is
// found, it returns nil.
func FindUniqueBlock(blocks hcl.Blocks, blockType string) (*hcl.Block, hcl.Diagnostics) {
	var found *hcl.Block
	var diags hcl.Diagnostics

	for _, block := range blocks {
		if block.Type != blockType {
			continue
		}
		if found != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate \"" + blockType + "\" block",
				Detail:   "Only one \"" + blockType + "\" block is allowed; the first is at " + found.DefRange.String() + ".",
				Subject:  block.DefRange.Ptr(),
			})
			continue
		}
		found = block
	}

	return found, diags
}

// MissingBlock reports that a required top-level block is absent.
func MissingBlock(blockType string, rng hcl.Range) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Missing \"" + blockType + "\" block",
		Detail:   "Exactly one \"" + blockType + "\" block is required.",
		Subject:  rng.Ptr(),
	}
}
