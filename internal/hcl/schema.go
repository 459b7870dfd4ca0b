package hcl

import (
	"github.com/hashicorp/hcl/v2"
)

// fileSchema accepts nothing but model blocks at the top level.
var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "model", LabelNames: []string{"name"}},
	},
}

// modelBody is the content of a `model` block.
type modelBody struct {
	Components []*componentBlock `hcl:"component,block"`
}

// componentBlock represents a `component` block naming a registered type.
type componentBlock struct {
	Type   string        `hcl:"type,label"`
	Params []*paramBlock `hcl:"param,block"`
}

// paramBlock represents a `param` block. Value and uncertainty stay
// expressions so that any value convertible to a number is accepted.
type paramBlock struct {
	Name        string         `hcl:"name,label"`
	Value       hcl.Expression `hcl:"value,optional"`
	Unit        *string        `hcl:"unit,optional"`
	Fit         *bool          `hcl:"fit,optional"`
	Uncertainty hcl.Expression `hcl:"uncertainty,optional"`
	Select      *selectBlock   `hcl:"select,block"`
}

// selectBlock represents the arrival selection of a mask parameter.
type selectBlock struct {
	Key string  `hcl:"key"`
	Lo  float64 `hcl:"lo"`
	Hi  float64 `hcl:"hi"`
}
