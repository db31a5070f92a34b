package trace

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sponsorCoinAdmin/spcoin-nextjs-front-end-sub000/internal/assetinput"
)

// Event is one JSONL line.
type Event struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id"`
	At         time.Time              `json:"at"`
	Start      *assetinput.TraceStart `json:"start,omitempty"`
	Transition *assetinput.Transition `json:"transition,omitempty"`
	Final      *assetinput.State      `json:"final,omitempty"`
}

// JSONLRecorder appends run events as JSON lines.
type JSONLRecorder struct {
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
	log  zerolog.Logger
}

// NewJSONLRecorder creates/opens the target file and returns a recorder.
func NewJSONLRecorder(path string, log zerolog.Logger) (*JSONLRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &JSONLRecorder{
		file: file,
		enc:  json.NewEncoder(file),
		log:  log.With().Str("component", "trace_jsonl").Logger(),
	}, nil
}

func (r *JSONLRecorder) write(ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return
	}
	ev.At = time.Now().UTC()
	if err := r.enc.Encode(ev); err != nil {
		r.log.Warn().Err(err).Str("id", ev.ID).Msg("trace write failed")
	}
}

// OnStart writes a start event.
func (r *JSONLRecorder) OnStart(start assetinput.TraceStart) {
	r.write(Event{Type: "start", ID: start.ID, Start: &start})
}

// OnTransition writes a transition event.
func (r *JSONLRecorder) OnTransition(id string, t assetinput.Transition) {
	r.write(Event{Type: "transition", ID: id, Transition: &t})
}

// OnFinish writes a finish event.
func (r *JSONLRecorder) OnFinish(id string, final assetinput.State) {
	r.write(Event{Type: "finish", ID: id, Final: &final})
}

// Close flushes and closes the file handle.
func (r *JSONLRecorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
