package trace

import "github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"

// Multi fans every event out to each sink in order.
type Multi []assetinput.TraceSink

// NewMulti drops nil sinks. With nothing left it returns NopSink.
func NewMulti(sinks ...assetinput.TraceSink) assetinput.TraceSink {
	var m Multi
	for _, s := range sinks {
		if s != nil {
			m = append(m, s)
		}
	}
	switch len(m) {
	case 0:
		return assetinput.NopSink{}
	case 1:
		return m[0]
	}
	return m
}

func (m Multi) OnStart(start assetinput.TraceStart) {
	for _, s := range m {
		s.OnStart(start)
	}
}

func (m Multi) OnTransition(id string, t assetinput.Transition) {
	for _, s := range m {
		s.OnTransition(id, t)
	}
}

func (m Multi) OnFinish(id string, final assetinput.State) {
	for _, s := range m {
		s.OnFinish(id, final)
	}
}
