package main

import (
	"encoding/json"
	"os"
)

// PrefsPath is the path to the viewer preferences file, relative to the
// process working directory.
const PrefsPath = "config/viewer.json"

// Prefs holds viewer-only preferences. The simulation core takes no
// configuration beyond its constructor arguments.
type Prefs struct {
	Width        int  `json:"width"`
	Height       int  `json:"height"`
	TargetFPS    int  `json:"target_fps"`
	DumpFrames   bool `json:"dump_frames"`
	ResetSeconds int  `json:"reset_seconds,omitempty"`
}

func defaultPrefs() Prefs {
	return Prefs{
		Width:     1440,
		Height:    900,
		TargetFPS: 66,
	}
}

// loadPrefs reads preferences from config/viewer.json. A missing or invalid
// file yields the defaults and is not created.
func loadPrefs() Prefs {
	data, err := os.ReadFile(PrefsPath)
	if err != nil {
		return defaultPrefs()
	}
	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return defaultPrefs()
	}
	if p.Width <= 0 || p.Height <= 0 {
		return defaultPrefs()
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = defaultPrefs().TargetFPS
	}
	return p
}
