// SPDX-License-Identifier: EPL-2.0

package voice

// Transform applies the Animalese chain to in and returns a new Waveform at
// the same sample rate. in is never modified. Validation happens up front;
// on error no stage output is returned.
func Transform(in Waveform, p Params) (Waveform, error) {
	if err := in.Validate(); err != nil {
		return Waveform{}, err
	}
	if err := p.Validate(); err != nil {
		return Waveform{}, err
	}

	buf, err := pitchShift(in.Samples, p.PitchShift)
	if err != nil {
		return Waveform{}, err
	}
	// each stage returns a fresh slice; the previous one becomes garbage
	buf = applyVibrato(buf, in.SampleRate, p.VibratoRate, p.VibratoDepth)
	buf = applyDistortion(buf, p.Distortion)
	buf = normalizePeak(buf)

	return Waveform{Samples: buf, SampleRate: in.SampleRate}, nil
}
