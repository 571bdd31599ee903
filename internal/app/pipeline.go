package app

import (
	"log"
	"time"

	"github.com/mudralabs/mudra/internal/capture"
)

// runPipeline is the main detection loop that processes frames from the
// camera and feeds detections into the gesture engine.
//
// Pipeline logic:
// 1. Start in idle mode at the idle frame rate
// 2. On motion detected, switch to the active frame rate
// 3. Run hand detection and feed every frame to the engine, including
//    empty ones so it can see the hands vanish
// 4. After 2s without motion, reset the engine and drop back to idle
func (a *App) runPipeline(stopCh chan struct{}) {
	activeMode := false
	lastMotionTime := time.Now()

	frameInterval := time.Second / time.Duration(capture.DefaultIdleFPS)
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			// Skip processing if detection is disabled
			if !a.IsEnabled() {
				continue
			}

			camera := a.Camera()
			frame, err := camera.ReadFrame()
			if err != nil {
				log.Printf("Error reading frame: %v", err)
				continue
			}

			// Step 1: Motion gating
			motionDetected, _ := a.motion.Detect(frame)

			if motionDetected {
				lastMotionTime = time.Now()

				if !activeMode {
					activeMode = true
					camera.SetFPS(capture.DefaultActiveFPS)
					frameInterval = time.Second / time.Duration(capture.DefaultActiveFPS)
					ticker.Reset(frameInterval)
					log.Println("Switched to active mode")
				}
			} else if activeMode {
				if time.Since(lastMotionTime) > time.Duration(IdleTimeoutMs)*time.Millisecond {
					activeMode = false
					camera.SetFPS(capture.DefaultIdleFPS)
					frameInterval = time.Second / time.Duration(capture.DefaultIdleFPS)
					ticker.Reset(frameInterval)

					// Let the engine see the hands vanish.
					a.engine.ProcessFrame(nil)
					log.Println("Switched to idle mode")
				}
			}

			if !activeMode {
				frame.Close()
				continue
			}

			// Step 2: Hand detection
			d := a.Detector()
			hands, err := d.Detect(frame)
			frame.Close()
			if err != nil {
				log.Printf("Error detecting hands: %v", err)
				continue
			}

			// Step 3: Gesture recognition. Empty frames reset the
			// engine, so they are processed too.
			a.engine.ProcessFrame(hands)
		}
	}
}
