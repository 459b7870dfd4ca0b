package dispersion

import (
	"fmt"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

// DMTypeName is the registered name of the DM Taylor-series component.
const DMTypeName = "DispersionDM"

const daysPerYear = 365.25

// DMTemplate is the DM derivative family DM1, DM2, ...
var DMTemplate = param.Template{
	Prefix:      "DM",
	Policy:      param.ContiguousFromOne,
	Kind:        param.KindFloat,
	Description: "DM derivative",
	UnitFor:     units.DMDerivative,
}

// DM is the dispersion measure as a polynomial in years since DMEPOCH.
type DM struct {
	*component.Base
	terms []*param.Parameter
}

// NewDM returns a DispersionDM component with DM set to zero.
func NewDM() *DM {
	d := &DM{Base: component.NewBase(DMTypeName, component.Delay)}
	d.MustAddParam(param.New("DM", param.KindFloat, units.DMUnit,
		param.WithValue(0), param.WithDescription("Dispersion measure")))
	d.MustAddParam(param.New("DMEPOCH", param.KindMJD, units.MJD,
		param.WithDescription("Epoch of DM measurement")))
	d.Require("DM")
	d.DeclareFamily(DMTemplate)
	d.OnSetup(d.setup)
	d.OnValidate(d.validate)
	d.AddDelayFunc(delayOf(d.DMValue))
	return d
}

func (d *DM) setup() error {
	dm, ok := d.Param("DM")
	if !ok {
		return fmt.Errorf("%w: %s has no DM", component.ErrParamNotFound, DMTypeName)
	}
	d.terms = []*param.Parameter{dm}
	for _, i := range d.FamilyIndices(DMTemplate.Prefix) {
		d.terms = append(d.terms, d.MustParam(DMTemplate.Name(i)))
	}
	for n, p := range d.terms {
		if err := d.RegisterDeriv(p.Name(), d.deriv(n)); err != nil {
			return err
		}
	}
	return nil
}

func (d *DM) validate() error {
	if epoch, ok := d.Param("DMEPOCH"); len(d.terms) > 1 && (!ok || !epoch.IsSet()) {
		return fmt.Errorf("%w: DMEPOCH is required when DM derivatives are present", component.ErrMissingParam)
	}
	return nil
}

// years returns the time since DMEPOCH in years. Without DM derivatives
// the epoch does not matter.
func (d *DM) years(mjd float64) float64 {
	p, ok := d.Param("DMEPOCH")
	if !ok {
		return 0
	}
	epoch, ok := p.Value()
	if !ok {
		return 0
	}
	return (mjd - epoch) / daysPerYear
}

// DMValue evaluates DM + DM1*dt + DM2*dt^2/2 + ... at each arrival.
func (d *DM) DMValue(t *toa.TOAs) []float64 {
	out := make([]float64, t.Len())
	for i, mjd := range t.MJD {
		dt := d.years(mjd)
		var acc float64
		for k := len(d.terms) - 1; k >= 1; k-- {
			acc = (acc + d.terms[k].ValueOr(0)) * dt / float64(k)
		}
		out[i] = acc + d.terms[0].ValueOr(0)
	}
	return out
}

func (d *DM) deriv(n int) component.DerivFunc {
	return func(t *toa.TOAs, _ []float64) []float64 {
		dm := make([]float64, t.Len())
		for i, mjd := range t.MJD {
			dt := d.years(mjd)
			v := 1.0
			for k := 1; k <= n; k++ {
				v *= dt / float64(k)
			}
			dm[i] = v
		}
		return Delay(t, dm)
	}
}
