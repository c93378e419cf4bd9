package engine

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// watchedKeys are the keys the viewer reacts to
var watchedKeys = []glfw.Key{
	glfw.KeyLeft, glfw.KeyRight, glfw.KeyUp, glfw.KeyDown,
	glfw.KeyPageUp, glfw.KeyPageDown,
	glfw.KeySpace, glfw.KeyT, glfw.KeyR, glfw.KeyL, glfw.KeyP, glfw.KeyEscape,
}

// InputHandler tracks key state between frames so presses can be told apart
// from held keys
type InputHandler struct {
	window          *glfw.Window
	currentKeys     map[glfw.Key]bool
	previousKeys    map[glfw.Key]bool
	mouseWheelDelta float64
}

// NewInputHandler creates a new input handler
func NewInputHandler(window *glfw.Window) *InputHandler {
	handler := &InputHandler{
		window:       window,
		currentKeys:  make(map[glfw.Key]bool),
		previousKeys: make(map[glfw.Key]bool),
	}

	window.SetScrollCallback(func(_ *glfw.Window, _, yoffset float64) {
		handler.mouseWheelDelta += yoffset
	})

	return handler
}

// Update samples the watched keys; call once per frame after PollEvents
func (ih *InputHandler) Update() {
	for _, key := range watchedKeys {
		ih.previousKeys[key] = ih.currentKeys[key]
		ih.currentKeys[key] = ih.window.GetKey(key) == glfw.Press
	}
}

// IsKeyPressed reports whether key went down this frame
func (ih *InputHandler) IsKeyPressed(key glfw.Key) bool {
	return ih.currentKeys[key] && !ih.previousKeys[key]
}

// Axis returns -1, 0 or +1 from a pair of held keys
func (ih *InputHandler) Axis(negative, positive glfw.Key) float64 {
	v := 0.0
	if ih.currentKeys[negative] {
		v--
	}
	if ih.currentKeys[positive] {
		v++
	}
	return v
}

// GetMouseWheelDelta returns the wheel movement since the last call
func (ih *InputHandler) GetMouseWheelDelta() float64 {
	delta := ih.mouseWheelDelta
	ih.mouseWheelDelta = 0
	return delta
}
