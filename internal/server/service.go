// Package server provides the long-running projection service: it watches
// the config file, recomputes the runway when the scenario changes, and
// serves the result over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/niraj8/startup-runway-estimator/internal/config"
	"github.com/niraj8/startup-runway-estimator/internal/runway"

	"github.com/caarlos0/env/v11"
	"github.com/mitchellh/hashstructure/v2"
)

// Config controls the service runtime behavior.
type Config struct {
	ConfigPath   string        `env:"RUNWAY_CONFIG"`
	Addr         string        `env:"RUNWAY_SERVE_ADDR" envDefault:"127.0.0.1:8788"`
	Interval     time.Duration `env:"RUNWAY_SERVE_INTERVAL" envDefault:"5s"`
	EventsBuffer int           `env:"RUNWAY_SERVE_EVENTS_BUFFER" envDefault:"200"`

	// StartMonth and HorizonMonths override the config file's general
	// section when set.
	StartMonth    string
	HorizonMonths int
}

// ConfigFromEnv reads the service settings from the environment.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Delta captures summary changes between two projections.
type Delta struct {
	StartingFunds float64 `json:"starting_funds"`
	InitialBurn   float64 `json:"initial_burn"`
	RunwayMonths  int     `json:"runway_months"`
}

func (d Delta) isZero() bool {
	return d.StartingFunds == 0 && d.InitialBurn == 0 && d.RunwayMonths == 0
}

// Event is emitted whenever the watched scenario changes.
type Event struct {
	ID          int64          `json:"id"`
	Type        string         `json:"type"`
	Timestamp   time.Time      `json:"timestamp"`
	Fingerprint string         `json:"fingerprint"`
	Summary     runway.Summary `json:"summary"`
	Delta       Delta          `json:"delta"`
}

// EventProjection is the type of events published on a scenario change.
const EventProjection = "projection"

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time      `json:"started_at"`
	LastPollAt      time.Time      `json:"last_poll_at"`
	PollIntervalSec int            `json:"poll_interval_sec"`
	PollCount       int64          `json:"poll_count"`
	ConfigPath      string         `json:"config_path"`
	Fingerprint     string         `json:"fingerprint,omitempty"`
	Summary         runway.Summary `json:"summary"`
	LastError       string         `json:"last_error,omitempty"`
	EventCount      int            `json:"event_count"`
	SubscriberCount int            `json:"subscriber_count"`
}

// Service provides the projection runtime and HTTP API.
type Service struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	fingerprint string
	report      *runway.Report
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new service with the provided config.
func New(cfg Config) *Service {
	if cfg.Interval < time.Second {
		cfg.Interval = 5 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.ConfigPath == "" {
		cfg.ConfigPath = config.Path()
	}

	return &Service{
		cfg:       cfg,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the service's HTTP routes.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/projection", s.handleProjection)
	mux.HandleFunc("/v1/project", s.handleProject)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Printf("runway serve listening on %s, watching %s", s.cfg.Addr, s.cfg.ConfigPath)

	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("runway http server: %w", err)
		}
	}
}

// watched is the part of the config file that determines the projection.
type watched struct {
	Scenario config.Scenario
	Start    string
	Horizon  int
}

func (s *Service) resolve(cfg config.Config) (watched, error) {
	w := watched{
		Scenario: cfg.Scenario,
		Start:    cfg.General.StartMonth,
		Horizon:  cfg.General.HorizonMonths,
	}
	if s.cfg.StartMonth != "" {
		w.Start = s.cfg.StartMonth
	}
	if s.cfg.HorizonMonths > 0 {
		w.Horizon = s.cfg.HorizonMonths
	}
	// An unpinned start follows the calendar, so a month rollover counts as
	// a change.
	if w.Start == "" {
		w.Start = time.Now().Format(config.StartMonthLayout)
	}
	if _, err := config.ParseStartMonth(w.Start); err != nil {
		return watched{}, err
	}
	return w, nil
}

func fingerprint(w watched) (string, error) {
	h, err := hashstructure.Hash(w, hashstructure.FormatV2, nil)
	if err != nil {
		return "", fmt.Errorf("hashing scenario: %w", err)
	}
	return strconv.FormatUint(h, 16), nil
}

func (s *Service) pollOnce() {
	now := time.Now()

	fail := func(err error) {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Printf("runway serve poll error: %v", err)
	}

	cfg, err := config.LoadFile(s.cfg.ConfigPath)
	if err != nil {
		fail(err)
		return
	}
	w, err := s.resolve(cfg)
	if err != nil {
		fail(err)
		return
	}
	fp, err := fingerprint(w)
	if err != nil {
		fail(err)
		return
	}

	s.mu.RLock()
	unchanged := s.report != nil && s.fingerprint == fp
	s.mu.RUnlock()
	if unchanged {
		s.mu.Lock()
		s.lastPollAt = now
		s.pollCount++
		s.lastError = ""
		s.mu.Unlock()
		return
	}

	report := project(w)

	s.mu.Lock()
	var delta Delta
	if s.report != nil {
		delta = diffSummaries(s.report.Summary, report.Summary)
	}
	first := s.report == nil
	s.report = &report
	s.fingerprint = fp
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	s.nextEventID++
	ev := Event{
		ID:          s.nextEventID,
		Type:        EventProjection,
		Timestamp:   now,
		Fingerprint: fp,
		Summary:     report.Summary,
		Delta:       delta,
	}
	s.mu.Unlock()

	if first || !delta.isZero() {
		log.Printf("runway serve: scenario %s, runway %d months (%+d)", fp, report.RunwayMonths, delta.RunwayMonths)
	}
	s.publishEvent(ev)
}

func project(w watched) runway.Report {
	start, _ := config.ParseStartMonth(w.Start)
	cost, unknown := w.Scenario.CostConfiguration()
	proj := runway.Project(cost, runway.Options{Start: start, HorizonMonths: w.Horizon})
	return runway.NewReport(proj, unknown)
}

func diffSummaries(prev, curr runway.Summary) Delta {
	return Delta{
		StartingFunds: curr.StartingFunds - prev.StartingFunds,
		InitialBurn:   curr.InitialBurn - prev.InitialBurn,
		RunwayMonths:  curr.RunwayMonths - prev.RunwayMonths,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		ConfigPath:      s.cfg.ConfigPath,
		Fingerprint:     s.fingerprint,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
	if s.report != nil {
		st.Summary = s.report.Summary
	}
	return st
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleProjection(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	report := s.report
	lastErr := s.lastError
	s.mu.RUnlock()

	if report == nil {
		msg := "no projection yet"
		if lastErr != "" {
			msg = lastErr
		}
		http.Error(w, msg, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

const maxScenarioBody = 1 << 20

// handleProject projects the scenario in the request body. Optional query
// parameters start (YYYY-MM) and horizon pin the calendar and the cap.
func (s *Service) handleProject(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var sc config.Scenario
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxScenarioBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sc); err != nil {
		http.Error(w, "invalid scenario: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := sc.Validate(); err != nil {
		http.Error(w, "invalid scenario: "+err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	start, err := config.ParseStartMonth(q.Get("start"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var horizon int
	if h := q.Get("horizon"); h != "" {
		horizon, err = strconv.Atoi(h)
		if err != nil || horizon < 1 {
			http.Error(w, fmt.Sprintf("invalid horizon %q", h), http.StatusBadRequest)
			return
		}
	}

	cost, unknown := sc.CostConfiguration()
	proj := runway.Project(cost, runway.Options{Start: start, HorizonMonths: horizon})
	writeJSON(w, http.StatusOK, runway.NewReport(proj, unknown))
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send the current projection immediately.
	s.mu.RLock()
	if s.report != nil {
		current := Event{
			Type:        EventProjection,
			Timestamp:   time.Now(),
			Fingerprint: s.fingerprint,
			Summary:     s.report.Summary,
		}
		s.mu.RUnlock()
		writeSSE(w, current)
	} else {
		s.mu.RUnlock()
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	if ev.ID > 0 {
		_, _ = fmt.Fprintf(w, "id: %d\n", ev.ID)
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
