package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/stratakeys/stratakeys/pkg/buildinfo"
	"github.com/stratakeys/stratakeys/pkg/cache"
	"github.com/stratakeys/stratakeys/pkg/errors"
	"github.com/stratakeys/stratakeys/pkg/keyboard"
	"github.com/stratakeys/stratakeys/pkg/pitch"
	"github.com/stratakeys/stratakeys/pkg/render"
	"github.com/stratakeys/stratakeys/pkg/theory"
)

// layoutRequest is one parsed /v1/layout or /v1/resolve query.
type layoutRequest struct {
	opts   keyboard.Options
	keyOpt cache.LayoutKeyOpts
	format string
	labels bool
}

// request parameter defaults.
const (
	defaultOctaves = 2
	defaultWidth   = 1200
	defaultHeight  = 300
)

// parseLayoutRequest maps query parameters onto layout options. Harmonic
// parameters are validated strictly; numeric parameters follow the
// engine's clamping rules, so a junk width is an error but a huge octave
// count is not.
func parseLayoutRequest(r *http.Request) (layoutRequest, error) {
	q := r.URL.Query()

	intParam := func(name string, def int) (int, error) {
		v := q.Get(name)
		if v == "" {
			return def, nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %s: not an integer: %q", name, v)
		}
		return n, nil
	}
	floatParam := func(name string, def float64) (float64, error) {
		v := q.Get(name)
		if v == "" {
			return def, nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, errors.New(errors.ErrCodeInvalidInput, "parameter %s: not a number: %q", name, v)
		}
		return f, nil
	}

	var req layoutRequest
	start, err := intParam("start", keyboard.DefaultStartOctave)
	if err != nil {
		return req, err
	}
	octaves, err := intParam("octaves", defaultOctaves)
	if err != nil {
		return req, err
	}
	width, err := floatParam("width", defaultWidth)
	if err != nil {
		return req, err
	}
	height, err := floatParam("height", defaultHeight)
	if err != nil {
		return req, err
	}
	keyWidth, err := floatParam("key_width", 0)
	if err != nil {
		return req, err
	}

	keyName := q.Get("key")
	if keyName == "" {
		keyName = "C"
	}
	tonic, err := pitch.ParseClass(keyName)
	if err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidKey, err, "parameter key")
	}

	mode := theory.ModeMajor
	switch q.Get("mode") {
	case "", "major":
	case "minor":
		mode = theory.ModeMinor
	default:
		return req, errors.New(errors.ErrCodeInvalidKey, "parameter mode: %q is not major or minor", q.Get("mode"))
	}

	chordName := q.Get("chord")
	if chordName == "" {
		chordName = tonic.String()
		if mode == theory.ModeMinor {
			chordName += "m"
		}
	}
	chord, err := theory.ParseChord(chordName)
	if err != nil {
		return req, errors.Wrap(errors.ErrCodeInvalidChord, err, "parameter chord")
	}

	switch req.format = q.Get("format"); req.format {
	case "":
		req.format = "json"
	case "json", "svg":
	default:
		return req, errors.New(errors.ErrCodeInvalidFormat, "parameter format: %q is not json or svg", req.format)
	}
	req.labels = q.Get("labels") == "1" || q.Get("labels") == "true"

	ctx := theory.NewContext(tonic, mode, chord)
	req.opts = keyboard.Options{
		StartOctave:  start,
		EndOctave:    start + octaves - 1,
		Width:        width,
		Height:       height,
		BaseKeyWidth: keyWidth,
		Root:         tonic,
		Classifier:   ctx,
	}
	req.keyOpt = cache.LayoutKeyOpts{
		StartOctave: start,
		EndOctave:   start + octaves - 1,
		Width:       width,
		Height:      height,
		KeyWidth:    keyWidth,
		Tonic:       tonic.String(),
		Mode:        mode.String(),
		Chord:       chord.String(),
	}
	return req, nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := parseLayoutRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	contentType := "application/json"
	if req.format == "svg" {
		contentType = "image/svg+xml"
	}

	artifactKey := s.keyer.ArtifactKey(
		s.keyer.LayoutKey(req.keyOpt),
		cache.ArtifactKeyOpts{Format: req.formatVariant()},
	)
	if data, ok, err := s.cache.Get(r.Context(), artifactKey); err == nil && ok {
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Cache", "HIT")
		w.Write(data)
		return
	}

	set := keyboard.Build(req.opts)

	var data []byte
	if req.format == "svg" {
		var svgOpts []render.SVGOption
		if req.labels {
			svgOpts = append(svgOpts, render.WithLabels())
		}
		data = render.SVG(set, svgOpts...)
	} else {
		data, err = render.JSON(set)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render layout"))
			return
		}
	}

	if err := s.cache.Set(r.Context(), artifactKey, data, cache.TTLArtifact); err != nil {
		s.logger.Warn("cache set failed", "err", err)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("X-Cache", "MISS")
	w.Write(data)
}

// formatVariant folds the label flag into the artifact format so labeled
// and unlabeled SVGs cache under different keys.
func (r layoutRequest) formatVariant() string {
	if r.format == "svg" && r.labels {
		return "svg+labels"
	}
	return r.format
}

// resolveResponse is the /v1/resolve body. Key is null on a miss; a miss
// near key edges is an expected outcome, not an error.
type resolveResponse struct {
	Hit bool        `json:"hit"`
	Key *resolveKey `json:"key,omitempty"`
}

type resolveKey struct {
	Pitch       string  `json:"pitch"`
	MIDI        int     `json:"midi"`
	Tier        string  `json:"tier"`
	Role        string  `json:"role,omitempty"`
	Highlighted bool    `json:"highlighted"`
	X           float64 `json:"x"`
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
}

func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	req, err := parseLayoutRequest(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	q := r.URL.Query()
	if q.Get("x") == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "parameter x is required"))
		return
	}
	x, err := strconv.ParseFloat(q.Get("x"), 64)
	if err != nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "parameter x: not a number: %q", q.Get("x")))
		return
	}

	set := keyboard.Build(req.opts)

	var hit *keyboard.Key
	if yParam := q.Get("y"); yParam != "" {
		y, err := strconv.ParseFloat(yParam, 64)
		if err != nil {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "parameter y: not a number: %q", yParam))
			return
		}
		hit = keyboard.ResolveAtXY(set, x, y)
	} else {
		hit = keyboard.ResolveAt(set, x)
	}

	resp := resolveResponse{Hit: hit != nil}
	if hit != nil {
		resp.Key = &resolveKey{
			Pitch:       hit.Pitch.String(),
			MIDI:        hit.Pitch.MIDINumber,
			Tier:        hit.Tier.String(),
			Highlighted: hit.Highlighted,
			X:           hit.Position,
			Width:       hit.Width,
			Height:      hit.Height,
		}
		if hit.Highlighted {
			resp.Key.Role = hit.Role.String()
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps error codes onto HTTP statuses and emits a JSON body
// with the user-facing message.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidPitch,
		errors.ErrCodeInvalidChord, errors.ErrCodeInvalidKey,
		errors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound:
		status = http.StatusNotFound
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
