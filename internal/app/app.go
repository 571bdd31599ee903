// Package app wires the mudra capture, detection and gesture pipeline
// together and fans engine events out to listeners and sinks.
package app

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/mudralabs/mudra/internal/capture"
	"github.com/mudralabs/mudra/internal/detector"
	"github.com/mudralabs/mudra/internal/gesture"
	"github.com/mudralabs/mudra/internal/sink"
	"github.com/mudralabs/mudra/internal/store"
)

// Pipeline timing constants.
const (
	// IdleTimeoutMs is the time in milliseconds without motion before
	// the pipeline drops back to the idle frame rate.
	IdleTimeoutMs = 2000
	// SinkTimeoutMs bounds a single sink delivery.
	SinkTimeoutMs = 5000
)

// Listener receives every interaction event the engine emits.
type Listener func(event string, payload any)

// Config holds configuration options for the application.
type Config struct {
	Store        *store.Store
	SinkDir      string
	CameraID     int
	MotionThresh float64
	Params       gesture.Params
}

// App orchestrates frame capture, hand detection and gesture
// recognition, and delivers the resulting events.
type App struct {
	config   Config
	camera   capture.Camera
	motion   *capture.MotionGate
	detector detector.Detector
	engine   *gesture.Engine
	sinkMgr  *sink.Manager
	sinkExec *sink.Executor

	enabled   bool
	listeners []Listener
	mu        sync.RWMutex
	stopCh    chan struct{}
}

// New creates a new App instance with the given configuration.
func New(config Config) *App {
	motionThreshold := config.MotionThresh
	if motionThreshold <= 0 {
		motionThreshold = 1.0 // Default threshold: 1% pixel change
	}

	a := &App{
		config:   config,
		camera:   capture.NewCamera(config.CameraID),
		motion:   capture.NewMotionGate(motionThreshold),
		engine:   gesture.NewEngine(config.Params, nil, nil),
		sinkMgr:  sink.NewManager(config.SinkDir),
		sinkExec: sink.NewExecutor(SinkTimeoutMs),
		enabled:  false,
	}

	// Try MediaPipe first, fall back to mock detector
	if mp, err := detector.NewMediaPipeDetector(detector.DefaultConfig()); err == nil {
		a.detector = mp
		log.Println("Using MediaPipe hand detection")
	} else {
		log.Printf("MediaPipe not available (%v), using mock detector", err)
		a.detector = detector.NewMockDetector()
	}

	a.subscribeEngine()

	return a
}

// subscribeEngine registers one bus handler per event name; each fans
// the event out to listeners and sinks.
func (a *App) subscribeEngine() {
	events := []string{
		gesture.EventSwipe,
		gesture.EventZoom,
		gesture.EventRotate,
		gesture.EventReset,
		gesture.EventLock,
		gesture.EventUnlock,
	}
	for _, event := range events {
		event := event
		a.engine.Bus().On(event, func(payload any) {
			a.dispatch(event, payload)
		})
	}
}

// dispatch delivers one event to every listener synchronously and to
// the sinks asynchronously.
func (a *App) dispatch(event string, payload any) {
	a.mu.RLock()
	listeners := a.listeners
	a.mu.RUnlock()

	for _, l := range listeners {
		l(event, payload)
	}

	sinks := a.sinkMgr.List()
	if len(sinks) == 0 {
		return
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s payload: %v", event, err)
		return
	}
	n := &sink.Notification{
		Event:     event,
		Payload:   raw,
		Timestamp: time.Now(),
	}

	for _, s := range sinks {
		if !s.Wants(event) {
			continue
		}
		go func(s *sink.Sink) {
			if _, err := a.sinkExec.Deliver(s, n); err != nil {
				log.Printf("Sink %s failed on %s: %v", s.Manifest.Name, event, err)
			}
		}(s)
	}
}

// AddListener registers a listener for all interaction events.
func (a *App) AddListener(l Listener) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.listeners = append(a.listeners, l)
}

// SetEnabled enables or disables gesture detection.
func (a *App) SetEnabled(enabled bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.enabled = enabled
}

// IsEnabled returns whether gesture detection is currently enabled.
func (a *App) IsEnabled() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.enabled
}

// SetDetector sets the hand detector implementation to use.
func (a *App) SetDetector(d detector.Detector) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.detector = d
}

// SetCamera replaces the frame source. Must be called before Start.
func (a *App) SetCamera(c capture.Camera) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.camera = c
}

// ApplyProfile reconfigures the engine with the profile's parameters.
func (a *App) ApplyProfile(p *store.Profile) {
	a.engine.SetParams(p.Params)
	log.Printf("Activated profile %s", p.Name)
}

// DiscoverSinks scans the sink directory for event sinks.
func (a *App) DiscoverSinks() error {
	return a.sinkMgr.Discover()
}

// Start begins the detection pipeline.
func (a *App) Start() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	// Don't start if already running
	if a.stopCh != nil {
		return nil
	}

	if err := a.camera.Open(); err != nil {
		return err
	}
	a.camera.SetFPS(capture.DefaultIdleFPS)

	a.stopCh = make(chan struct{})
	go a.runPipeline(a.stopCh)

	log.Println("Detection pipeline started")
	return nil
}

// Stop halts the detection pipeline and releases resources.
func (a *App) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.stopCh != nil {
		close(a.stopCh)
		a.stopCh = nil
	}

	if err := a.camera.Close(); err != nil {
		log.Printf("Error closing camera: %v", err)
	}

	a.motion.Close()

	if a.detector != nil {
		if err := a.detector.Close(); err != nil {
			log.Printf("Error closing detector: %v", err)
		}
	}

	log.Println("Detection pipeline stopped")
}

// Engine returns the gesture engine.
func (a *App) Engine() *gesture.Engine {
	return a.engine
}

// Camera returns the camera instance.
func (a *App) Camera() capture.Camera {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.camera
}

// MotionGate returns the motion gate instance.
func (a *App) MotionGate() *capture.MotionGate {
	return a.motion
}

// SinkManager returns the sink manager.
func (a *App) SinkManager() *sink.Manager {
	return a.sinkMgr
}

// Detector returns the hand detector.
func (a *App) Detector() detector.Detector {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.detector
}
