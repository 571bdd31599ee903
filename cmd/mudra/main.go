package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mudralabs/mudra/internal/app"
	"github.com/mudralabs/mudra/internal/config"
	"github.com/mudralabs/mudra/internal/gesture"
	"github.com/mudralabs/mudra/internal/server"
	"github.com/mudralabs/mudra/internal/store"
	"github.com/mudralabs/mudra/internal/tray"
)

func main() {
	fmt.Println("mudra - hand gesture control")

	configPath := flag.String("config", defaultConfigPath(), "path to config file")
	headless := flag.Bool("headless", false, "run without the system tray")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Storage.DBPath), 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	st, err := store.New(cfg.Storage.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// The active profile, if one exists, overrides the config tuning.
	params := cfg.Params()
	if p, err := activeProfile(st); err == nil {
		params = p.Params
		log.Printf("Using profile %s", p.Name)
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Printf("Failed to load active profile: %v", err)
	}

	a := app.New(app.Config{
		Store:        st,
		SinkDir:      cfg.Sinks.Dir,
		CameraID:     cfg.Camera.DeviceID,
		MotionThresh: cfg.Camera.MotionThreshold,
		Params:       params,
	})

	if err := a.DiscoverSinks(); err != nil {
		log.Printf("Sink discovery failed: %v", err)
	} else if n := len(a.SinkManager().List()); n > 0 {
		log.Printf("Discovered %d event sinks", n)
	}

	srv := server.New(server.Config{
		Store:      st,
		Engine:     a.Engine(),
		OnActivate: a.ApplyProfile,
	})
	a.AddListener(func(event string, payload any) {
		srv.Events().Publish(event, payload)
	})

	go func() {
		log.Printf("Starting server on %s", cfg.Server.ListenAddr)
		if err := srv.ListenAndServe(cfg.Server.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	a.SetEnabled(true)
	defer a.Stop()

	if *headless {
		select {}
	}

	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnQuit(a.Stop)
	a.AddListener(func(event string, payload any) {
		t.SetLastEvent(describeEvent(event, payload))
	})

	// Blocks until quit.
	t.Run()
}

// describeEvent renders a short human-readable menu label for an event.
func describeEvent(event string, payload any) string {
	switch p := payload.(type) {
	case gesture.SwipeEvent:
		return fmt.Sprintf("swipe %s", p.Direction)
	case gesture.ZoomEvent:
		return fmt.Sprintf("zoom %.3f", p.Scale)
	case gesture.RotateEvent:
		return "rotate"
	default:
		return event
	}
}

// activeProfile loads the profile recorded as active in settings.
func activeProfile(st *store.Store) (*store.Profile, error) {
	id, err := st.Settings().ActiveProfileID()
	if err != nil {
		return nil, err
	}
	return st.Profiles().GetByID(id)
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "mudra.yaml"
	}
	return filepath.Join(home, ".mudra", "mudra.yaml")
}
