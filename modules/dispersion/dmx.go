package dispersion

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

// DMXTypeName is the registered name of the binned DM component.
const DMXTypeName = "DispersionDMX"

var (
	// DMXValue is the DM offset of bin n.
	DMXValue = param.Template{Prefix: "DMX_", Width: 4, Kind: param.KindFloat, Unit: units.DMUnit, Description: "DM offset of bin"}
	// DMXStart is the first MJD of bin n.
	DMXStart = param.Template{Prefix: "DMXR1_", Width: 4, Kind: param.KindMJD, Unit: units.MJD, Description: "Start of DMX bin"}
	// DMXEnd is the last MJD of bin n.
	DMXEnd = param.Template{Prefix: "DMXR2_", Width: 4, Kind: param.KindMJD, Unit: units.MJD, Description: "End of DMX bin"}
)

type bin struct {
	index  int
	lo, hi float64
	value  *param.Parameter
}

// DMX adds DMX_n to every arrival with DMXR1_n <= MJD <= DMXR2_n.
type DMX struct {
	*component.Base

	// bins is sorted by start and rebuilt whenever a value changes.
	bins []bin
}

// NewDMX returns a DispersionDMX component with no bins.
func NewDMX() *DMX {
	d := &DMX{Base: component.NewBase(DMXTypeName, component.Delay)}
	d.DeclareFamily(DMXValue)
	d.DeclareFamily(DMXStart)
	d.DeclareFamily(DMXEnd)
	d.DeclarePairing(param.Pairing{Primary: DMXValue, Required: []param.Template{DMXStart, DMXEnd}})
	d.OnSetup(d.setup)
	d.OnInvalidate(d.index)
	d.OnValidate(d.validate)
	d.AddDelayFunc(delayOf(d.DMValue))
	return d
}

// AddBin adds the value and range parameters of bin n.
func (d *DMX) AddBin(n int, dm, start, end float64) error {
	var ps []*param.Parameter
	for _, f := range []struct {
		t param.Template
		v float64
	}{{DMXValue, dm}, {DMXStart, start}, {DMXEnd, end}} {
		p, err := param.NewPrefix(f.t, n, param.WithValue(f.v))
		if err != nil {
			return err
		}
		ps = append(ps, p)
	}
	for i, p := range ps {
		if err := d.AddParam(p, false); err != nil {
			for _, q := range ps[:i] {
				err = errors.Join(err, d.RemoveParam(q.Name()))
			}
			return err
		}
	}
	return d.Setup()
}

func (d *DMX) setup() error {
	d.index()
	for _, b := range d.bins {
		if err := d.RegisterDeriv(b.value.Name(), d.deriv(b.index)); err != nil {
			return err
		}
	}
	return nil
}

// index rebuilds the bin table from the bins whose value and both range
// parameters are present.
func (d *DMX) index() {
	d.bins = d.bins[:0]
	for _, n := range d.FamilyIndices(DMXValue.Prefix) {
		v, ok1 := d.Param(DMXValue.Name(n))
		lo, ok2 := d.Param(DMXStart.Name(n))
		hi, ok3 := d.Param(DMXEnd.Name(n))
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		d.bins = append(d.bins, bin{index: n, lo: lo.Float(), hi: hi.Float(), value: v})
	}
	slices.SortFunc(d.bins, func(a, b bin) int { return cmp.Compare(a.lo, b.lo) })
}

func (d *DMX) validate() error {
	for _, b := range d.bins {
		for _, t := range []param.Template{DMXStart, DMXEnd} {
			if p := d.MustParam(t.Name(b.index)); !p.IsSet() {
				return fmt.Errorf("%w: %s has no value", component.ErrMissingParam, p.Name())
			}
		}
	}
	for i, b := range d.bins {
		if b.lo > b.hi {
			return fmt.Errorf("%w: %s %g is after %s %g", component.ErrInvalidParam,
				DMXStart.Name(b.index), b.lo, DMXEnd.Name(b.index), b.hi)
		}
		if i > 0 && b.lo <= d.bins[i-1].hi {
			return fmt.Errorf("%w: DMX bins %04d and %04d overlap", component.ErrInvalidParam,
				d.bins[i-1].index, b.index)
		}
	}
	return nil
}

// find returns the position in bins of the bin containing mjd, or -1.
func (d *DMX) find(mjd float64) int {
	i, _ := slices.BinarySearchFunc(d.bins, mjd, func(b bin, t float64) int {
		if b.lo > t {
			return 1
		}
		return -1
	})
	if i == 0 {
		return -1
	}
	if b := d.bins[i-1]; mjd <= b.hi {
		return i - 1
	}
	return -1
}

// DMValue returns the DMX offset at each arrival, zero outside every bin.
func (d *DMX) DMValue(t *toa.TOAs) []float64 {
	out := make([]float64, t.Len())
	for i, mjd := range t.MJD {
		if k := d.find(mjd); k >= 0 {
			out[i] = d.bins[k].value.ValueOr(0)
		}
	}
	return out
}

// Bin returns the DMX index covering mjd.
func (d *DMX) Bin(mjd float64) (int, bool) {
	k := d.find(mjd)
	if k < 0 {
		return 0, false
	}
	return d.bins[k].index, true
}

func (d *DMX) deriv(n int) component.DerivFunc {
	return func(t *toa.TOAs, _ []float64) []float64 {
		dm := make([]float64, t.Len())
		for i, mjd := range t.MJD {
			if k := d.find(mjd); k >= 0 && d.bins[k].index == n {
				dm[i] = 1
			}
		}
		return Delay(t, dm)
	}
}
