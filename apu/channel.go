package apu

// channel is the per-channel envelope + length-counter + DAC state shared
// by all four APU voices, parameterized by a waveform generator (square
// duty, wave-table index, or LFSR). This is the "one common value shared
// by all channels" re-architecture spec.md §9 asks for in place of the
// three near-identical per-channel types an ad-hoc implementation would
// otherwise grow; grounded on the teacher's audio.Channel.
type channel struct {
	enabled bool
	left, right bool

	duty   uint8
	timer  uint8
	length uint16
	volume uint8

	// CH1 frequency sweep.
	sweepPeriod  uint8
	sweepDown    bool
	sweepStep    uint8
	sweepEnabled bool
	sweepTimer   uint8
	shadowFreq   uint16
	sweepNegUsed bool

	envelopePace    uint8
	envelopeUp      bool
	envelopeCounter uint8
	envelopeLatched bool

	period       uint16
	trigger      bool
	lengthEnable bool
	freqTimer    int
	dutyStep     uint8
	waveIndex    uint8
	waveSample   uint8
	noiseTimer   int

	lfsr        uint16
	use7bitLFSR bool
	shift       uint8
	divider     uint8

	dacEnabled bool
}

// calculateSweepFrequency applies CH1's frequency sweep calculation.
func (ch *channel) calculateSweepFrequency() (newFreq uint16, overflow bool) {
	if ch.sweepStep == 0 {
		return ch.shadowFreq, false
	}
	return ch.checkSweepOverflow()
}

// checkSweepOverflow computes the sweep target even when sweepStep is
// zero, needed for the periodic overflow check that runs regardless. It
// never mutates channel state.
func (ch *channel) checkSweepOverflow() (newFreq uint16, overflow bool) {
	freqChange := ch.shadowFreq >> ch.sweepStep
	if ch.sweepDown {
		if freqChange > ch.shadowFreq {
			newFreq = 0
		} else {
			newFreq = ch.shadowFreq - freqChange
		}
	} else {
		newFreq = ch.shadowFreq + freqChange
	}
	return newFreq, newFreq > 2047
}

var dutyPatterns = [4][8]int64{
	{0, 1, 0, 0, 0, 0, 0, 0},
	{0, 1, 1, 0, 0, 0, 0, 0},
	{0, 1, 1, 1, 1, 0, 0, 0},
	{1, 0, 0, 1, 1, 1, 1, 1},
}

var noiseDividers = [8]int{8, 16, 32, 48, 64, 80, 96, 112}
