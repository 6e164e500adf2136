// Package httpapi serves sensor state and operator controls over HTTP.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/tamzrod/mpr121d/internal/status"
	"github.com/tamzrod/mpr121d/internal/touch"
)

// Controller is the sensor surface the API drives.
type Controller interface {
	Run() error
	Stop() error
	Reset() error
	IsRunning() bool
	IsInited() bool
	SetTouchThreshold(threshold uint8) error
	SetReleaseThreshold(threshold uint8) error
	SetElectrodeTouchThreshold(electrode, threshold uint8) error
	SetElectrodeReleaseThreshold(electrode, threshold uint8) error
	SetSamplePeriod(target float64) error
}

// StateSource provides the current status and last sample.
type StateSource interface {
	Snapshot() status.Snapshot
	Latest() (touch.Sample, bool)
}

type Server struct {
	ctl     Controller
	state   StateSource
	metrics http.Handler
	logger  *zap.SugaredLogger
}

func New(ctl Controller, state StateSource, metrics http.Handler, logger *zap.SugaredLogger) *Server {
	return &Server{ctl: ctl, state: state, metrics: metrics, logger: logger.Named("http")}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	r.Get("/healthz", s.handleHealth)
	r.Get("/state", s.handleState)

	r.Post("/run", s.handleOp(s.ctl.Run))
	r.Post("/stop", s.handleOp(s.ctl.Stop))
	r.Post("/reset", s.handleOp(s.ctl.Reset))
	r.Put("/thresholds", s.handleThresholds)
	r.Put("/sample-period", s.handleSamplePeriod)

	return r
}

// ---- handlers ----

type healthResponse struct {
	Health  string `json:"health"`
	Running bool   `json:"running"`
	Inited  bool   `json:"inited"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	resp := healthResponse{
		Health:  status.HealthName(snap.Health),
		Running: s.ctl.IsRunning(),
		Inited:  s.ctl.IsInited(),
	}

	code := http.StatusOK
	if !resp.Inited || snap.Health == status.HealthError {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

type stateResponse struct {
	Status     status.Snapshot `json:"status"`
	HealthName string          `json:"healthName"`
	Sample     *touch.Sample   `json:"sample,omitempty"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.state.Snapshot()
	resp := stateResponse{Status: snap, HealthName: status.HealthName(snap.Health)}
	if sample, ok := s.state.Latest(); ok {
		resp.Sample = &sample
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleOp(op func() error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := op(); err != nil {
			s.logger.Warnw("Operation failed", "path", r.URL.Path, "error", err)
			writeError(w, http.StatusBadGateway, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]bool{"running": s.ctl.IsRunning()})
	}
}

type thresholdsRequest struct {
	Touch     *uint8 `json:"touch"`
	Release   *uint8 `json:"release"`
	Electrode *uint8 `json:"electrode"` // nil = all electrodes
}

func (s *Server) handleThresholds(w http.ResponseWriter, r *http.Request) {
	var req thresholdsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Touch == nil && req.Release == nil {
		writeError(w, http.StatusBadRequest, errors.New("touch or release required"))
		return
	}
	if req.Electrode != nil && *req.Electrode >= touch.NumElectrodes {
		writeError(w, http.StatusBadRequest, errors.New("electrode must be 0-11"))
		return
	}

	var err error
	switch {
	case req.Electrode == nil:
		if req.Touch != nil {
			err = s.ctl.SetTouchThreshold(*req.Touch)
		}
		if err == nil && req.Release != nil {
			err = s.ctl.SetReleaseThreshold(*req.Release)
		}
	default:
		e := *req.Electrode
		if req.Touch != nil {
			err = s.ctl.SetElectrodeTouchThreshold(e, *req.Touch)
		}
		if err == nil && req.Release != nil {
			err = s.ctl.SetElectrodeReleaseThreshold(e, *req.Release)
		}
	}
	if err != nil {
		s.logger.Warnw("Setting thresholds failed", "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type samplePeriodRequest struct {
	Period float64 `json:"period"`
}

func (s *Server) handleSamplePeriod(w http.ResponseWriter, r *http.Request) {
	var req samplePeriodRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.ctl.SetSamplePeriod(req.Period); err != nil {
		s.logger.Warnw("Setting sample period failed", "period", req.Period, "error", err)
		writeError(w, http.StatusBadGateway, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---- helpers ----

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		if r.URL.Path == "/metrics" {
			return
		}
		s.logger.Debugw("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"requestID", middleware.GetReqID(r.Context()))
	})
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
