package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/pulsartime/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// translate converts the HCL-specific schema into the agnostic document.
func translate(name string, body *modelBody) (*config.Document, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	doc := &config.Document{Name: name}
	for _, cb := range body.Components {
		spec := &config.ComponentSpec{Type: cb.Type}
		for _, pb := range cb.Params {
			p, pDiags := translateParam(pb)
			diags = append(diags, pDiags...)
			spec.Params = append(spec.Params, p)
		}
		doc.Components = append(doc.Components, spec)
	}
	return doc, diags
}

func translateParam(pb *paramBlock) (*config.ParamSpec, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	p := &config.ParamSpec{Name: pb.Name}

	v, d := number(pb.Value, "value")
	diags = append(diags, d...)
	p.Value = v

	u, d := number(pb.Uncertainty, "uncertainty")
	diags = append(diags, d...)
	p.Uncertainty = u

	if pb.Unit != nil {
		p.Unit = *pb.Unit
	}
	if pb.Fit != nil {
		p.Fit = *pb.Fit
	}
	if pb.Select != nil {
		p.Select = &config.SelectorSpec{Key: pb.Select.Key, Lo: pb.Select.Lo, Hi: pb.Select.Hi}
	}
	return p, diags
}

// number evaluates expr as a constant number. A missing or null attribute
// yields nil.
func number(expr hcl.Expression, attr string) (*float64, hcl.Diagnostics) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		return nil, nil
	}
	converted, err := convert.Convert(val, cty.Number)
	if err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid number",
			Detail:   fmt.Sprintf("The %q attribute must be a number: %s.", attr, err),
			Subject:  expr.Range().Ptr(),
		}}
	}
	var f float64
	if err := gocty.FromCtyValue(converted, &f); err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid number",
			Detail:   fmt.Sprintf("The %q attribute is out of range: %s.", attr, err),
			Subject:  expr.Range().Ptr(),
		}}
	}
	return &f, nil
}
