package hcl

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/pulsartime/internal/config"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Encoder renders documents as HCL model files that Loader reads back.
type Encoder struct{}

var _ config.Encoder = Encoder{}

// Encode writes doc as a single model block.
func (Encoder) Encode(doc *config.Document) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	mb := f.Body().AppendNewBlock("model", []string{doc.Name}).Body()
	for i, c := range doc.Components {
		if i > 0 {
			mb.AppendNewline()
		}
		cb := mb.AppendNewBlock("component", []string{c.Type}).Body()
		for _, p := range c.Params {
			if err := encodeParam(cb.AppendNewBlock("param", []string{p.Name}).Body(), p); err != nil {
				return nil, fmt.Errorf("encoding %s.%s: %w", c.Type, p.Name, err)
			}
		}
	}
	return f.Bytes(), nil
}

func encodeParam(body *hclwrite.Body, p *config.ParamSpec) error {
	if p.Value != nil {
		v, err := gocty.ToCtyValue(*p.Value, cty.Number)
		if err != nil {
			return err
		}
		body.SetAttributeValue("value", v)
	}
	if p.Unit != "" {
		body.SetAttributeValue("unit", cty.StringVal(p.Unit))
	}
	if p.Fit {
		body.SetAttributeValue("fit", cty.True)
	}
	if p.Uncertainty != nil {
		v, err := gocty.ToCtyValue(*p.Uncertainty, cty.Number)
		if err != nil {
			return err
		}
		body.SetAttributeValue("uncertainty", v)
	}
	if s := p.Select; s != nil {
		sb := body.AppendNewBlock("select", nil).Body()
		sb.SetAttributeValue("key", cty.StringVal(s.Key))
		sb.SetAttributeValue("lo", cty.NumberFloatVal(s.Lo))
		sb.SetAttributeValue("hi", cty.NumberFloatVal(s.Hi))
	}
	return nil
}
