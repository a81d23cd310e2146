package web

import (
	"github.com/vovakirdan/crescent-arcade/internal/core"
)

// Client message types.
const (
	MsgKey    = "key"
	MsgClick  = "click"
	MsgResize = "resize"
)

// ClientMessage is sent by the browser over the play websocket.
type ClientMessage struct {
	Type string `json:"type"`
	Key  string `json:"key,omitempty"`
	X    int    `json:"x,omitempty"`
	Y    int    `json:"y,omitempty"`
	W    int    `json:"w,omitempty"`
	H    int    `json:"h,omitempty"`
}

// State mirrors core.GameState for JSON clients.
type State struct {
	Score    int  `json:"score"`
	GameOver bool `json:"game_over"`
	Won      bool `json:"won"`
	Paused   bool `json:"paused"`
}

func stateOf(s core.GameState) State {
	return State{Score: s.Score, GameOver: s.GameOver, Won: s.Won, Paused: s.Paused}
}

// Frame is one rendered screen pushed to the browser.
type Frame struct {
	Session string   `json:"session"`
	Game    string   `json:"game"`
	Tick    uint64   `json:"tick"`
	Rows    []string `json:"rows"`
	State   State    `json:"state"`
}

// FeedbackRequest is the body of POST /api/feedback. An empty kind means
// general feedback.
type FeedbackRequest struct {
	Kind    string `json:"kind" binding:"omitempty,oneof=general game-idea improvement bug other"`
	Message string `json:"message" binding:"required,max=2000"`
	Email   string `json:"email" binding:"omitempty,email"`
}

// ErrorResponse is returned with every non-2xx API status.
type ErrorResponse struct {
	Error string `json:"error"`
}

// keyActions maps browser key names to game actions. Letters follow the
// terminal bindings.
var keyActions = map[string]core.Action{
	"up":         core.ActionUp,
	"arrowup":    core.ActionUp,
	"w":          core.ActionUp,
	"k":          core.ActionUp,
	"down":       core.ActionDown,
	"arrowdown":  core.ActionDown,
	"s":          core.ActionDown,
	"j":          core.ActionDown,
	"left":       core.ActionLeft,
	"arrowleft":  core.ActionLeft,
	"a":          core.ActionLeft,
	"h":          core.ActionLeft,
	"right":      core.ActionRight,
	"arrowright": core.ActionRight,
	"d":          core.ActionRight,
	"l":          core.ActionRight,
	"enter":      core.ActionConfirm,
	"space":      core.ActionConfirm,
	" ":          core.ActionConfirm,
	"r":          core.ActionRestart,
	"p":          core.ActionPause,
	"q":          core.ActionQuit,
	"escape":     core.ActionQuit,
	"esc":        core.ActionQuit,
}

// actionForKey returns the action for a key name; unknown keys are AnyKey.
func actionForKey(key string) core.Action {
	if a, ok := keyActions[key]; ok {
		return a
	}
	if key == "" {
		return core.ActionNone
	}
	return core.ActionAnyKey
}
