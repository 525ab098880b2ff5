package apu

/* shared test doubles */

// testSink records everything the mixer delivers.
type testSink struct {
	rate    int
	bufsize int

	left  []float32
	right []float32
}

func (s *testSink) SampleRate() int { return s.rate }
func (s *testSink) BufferSize() int { return s.bufsize }

func (s *testSink) Play(left, right []float32) {
	s.left = append(s.left, left...)
	s.right = append(s.right, right...)
}

func newTestSink() *testSink {
	return &testSink{rate: 44100, bufsize: 512}
}

// deltaEvent is one amplitude-delta emission, as seen by the accumulator.
type deltaEvent struct {
	Time  uint64
	Delta int32
}

// deltaRecorder is an accumulator that records raw deltas instead of
// synthesizing samples.
type deltaRecorder struct {
	events []deltaEvent
}

func (r *deltaRecorder) AddDelta(time uint64, delta int32) {
	r.events = append(r.events, deltaEvent{Time: time, Delta: delta})
}

func (r *deltaRecorder) EndFrame(clockDuration int)         {}
func (r *deltaRecorder) SamplesAvailable() int              { return 0 }
func (r *deltaRecorder) ReadSamples([]int16, int, bool) int { return 0 }
