package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocumentValidate(t *testing.T) {
	testCases := []struct {
		name    string
		doc     Document
		wantErr bool
	}{
		{
			name: "valid",
			doc: Document{Components: []*ComponentSpec{
				{Type: "Spindown", Params: []*ParamSpec{{Name: "F0", Value: Float(1)}}},
				{Type: "DispersionDM", Params: []*ParamSpec{{Name: "DM"}}},
			}},
		},
		{
			name:    "missing type",
			doc:     Document{Components: []*ComponentSpec{{}}},
			wantErr: true,
		},
		{
			name:    "duplicate type",
			doc:     Document{Components: []*ComponentSpec{{Type: "A"}, {Type: "A"}}},
			wantErr: true,
		},
		{
			name: "duplicate parameter",
			doc: Document{Components: []*ComponentSpec{
				{Type: "A", Params: []*ParamSpec{{Name: "X"}}},
				{Type: "B", Params: []*ParamSpec{{Name: "X"}}},
			}},
			wantErr: true,
		},
		{
			name:    "unnamed parameter",
			doc:     Document{Components: []*ComponentSpec{{Type: "A", Params: []*ParamSpec{{}}}}},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.doc.Validate()
			if tc.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDocument)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
