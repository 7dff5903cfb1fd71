// SPDX-License-Identifier: EPL-2.0

package voice

import "math"

// Defaults for an Animalese voice.
const (
	DefaultPitchShift   = 7.2
	DefaultVibratoRate  = 10.0
	DefaultVibratoDepth = 0.5
	DefaultDistortion   = 1.7
	DefaultSpeed        = 1.2
)

// Accepted parameter ranges. Values outside them are rejected, never clamped.
const (
	MaxPitchShift   = 48.0   // semitones, either direction (4 octaves)
	MaxVibratoRate  = 1000.0 // Hz
	MaxVibratoDepth = 1.0    // above 1, (1+m) goes negative and flips sign
	MaxDistortion   = 100.0
	MinSpeed        = 0.25
	MaxSpeed        = 4.0
)

// Params configures one Transform call. Build it with DefaultParams or
// NewParams; the zero value is not a useful voice.
type Params struct {
	// PitchShift in equal-tempered semitones. Positive is higher and shorter.
	PitchShift float64 `toml:"pitch_shift" yaml:"pitch_shift"`
	// VibratoRate is the modulation frequency in Hz.
	VibratoRate float64 `toml:"vibrato_rate" yaml:"vibrato_rate"`
	// VibratoDepth is the amplitude modulation factor in [0, 1].
	VibratoDepth float64 `toml:"vibrato_depth" yaml:"vibrato_depth"`
	// Distortion is the gain applied before the hard clip.
	Distortion float64 `toml:"distortion" yaml:"distortion"`
	// Speed is the speech-rate multiplier requested from the speech
	// synthesizer. Transform validates it but does not use it.
	Speed float64 `toml:"speed" yaml:"speed"`
}

// DefaultParams returns the stock Animalese settings.
func DefaultParams() Params {
	return Params{
		PitchShift:   DefaultPitchShift,
		VibratoRate:  DefaultVibratoRate,
		VibratoDepth: DefaultVibratoDepth,
		Distortion:   DefaultDistortion,
		Speed:        DefaultSpeed,
	}
}

// Option mutates Params during NewParams.
type Option func(*Params) error

// NewParams starts from DefaultParams and applies opts in order. The first
// failing option aborts construction.
func NewParams(opts ...Option) (Params, error) {
	p := DefaultParams()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&p); err != nil {
			return Params{}, err
		}
	}
	return p, nil
}

// WithPitchShift sets the pitch shift in semitones.
func WithPitchShift(semitones float64) Option {
	return func(p *Params) error {
		if err := checkPitchShift(semitones); err != nil {
			return err
		}
		p.PitchShift = semitones
		return nil
	}
}

// WithVibratoRate sets the vibrato frequency in Hz.
func WithVibratoRate(hz float64) Option {
	return func(p *Params) error {
		if err := checkVibratoRate(hz); err != nil {
			return err
		}
		p.VibratoRate = hz
		return nil
	}
}

// WithVibratoDepth sets the vibrato depth in [0, 1].
func WithVibratoDepth(depth float64) Option {
	return func(p *Params) error {
		if err := checkVibratoDepth(depth); err != nil {
			return err
		}
		p.VibratoDepth = depth
		return nil
	}
}

// WithVibrato sets both vibrato rate and depth.
func WithVibrato(hz, depth float64) Option {
	return func(p *Params) error {
		if err := WithVibratoRate(hz)(p); err != nil {
			return err
		}
		return WithVibratoDepth(depth)(p)
	}
}

// WithDistortion sets the pre-clip gain.
func WithDistortion(gain float64) Option {
	return func(p *Params) error {
		if err := checkDistortion(gain); err != nil {
			return err
		}
		p.Distortion = gain
		return nil
	}
}

// WithSpeed sets the speech-rate multiplier passed to the synthesizer.
func WithSpeed(speed float64) Option {
	return func(p *Params) error {
		if err := checkSpeed(speed); err != nil {
			return err
		}
		p.Speed = speed
		return nil
	}
}

// Validate reports the first field outside its accepted range as a
// *ParamError. Fields are checked independently of each other.
func (p Params) Validate() error {
	checks := []error{
		checkPitchShift(p.PitchShift),
		checkVibratoRate(p.VibratoRate),
		checkVibratoDepth(p.VibratoDepth),
		checkDistortion(p.Distortion),
		checkSpeed(p.Speed),
	}
	for _, err := range checks {
		if err != nil {
			return err
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkPitchShift(v float64) error {
	if !finite(v) {
		return paramErr("pitch_shift", v, "must be finite")
	}
	if math.Abs(v) > MaxPitchShift {
		return paramErr("pitch_shift", v, "must be within ±48 semitones")
	}
	return nil
}

func checkVibratoRate(v float64) error {
	if !finite(v) || v < 0 || v > MaxVibratoRate {
		return paramErr("vibrato_rate", v, "must be in [0, 1000] Hz")
	}
	return nil
}

func checkVibratoDepth(v float64) error {
	if !finite(v) || v < 0 || v > MaxVibratoDepth {
		return paramErr("vibrato_depth", v, "must be in [0, 1]")
	}
	return nil
}

func checkDistortion(v float64) error {
	if !finite(v) || v < 0 || v > MaxDistortion {
		return paramErr("distortion", v, "must be in [0, 100]")
	}
	return nil
}

func checkSpeed(v float64) error {
	if !finite(v) || v < MinSpeed || v > MaxSpeed {
		return paramErr("speed", v, "must be in [0.25, 4]")
	}
	return nil
}
