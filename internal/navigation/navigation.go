// Package navigation defines the portal screens and how paths map onto them.
package navigation

import "strings"

// Screen identifies a navigable screen by its route path.
type Screen string

const (
	ScreenLanding  Screen = ""
	ScreenRegister Screen = "register"
	ScreenLogin    Screen = "login"
	ScreenVerify   Screen = "verify"
)

var routes = map[string]Screen{
	"":         ScreenLanding,
	"register": ScreenRegister,
	"login":    ScreenLogin,
	"verify":   ScreenVerify,
}

// Resolve maps a request path to a screen. Unknown paths resolve to the
// landing screen with ok set to false so callers can redirect.
func Resolve(path string) (Screen, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	screen, ok := routes[strings.Trim(path, "/")]
	if !ok {
		return ScreenLanding, false
	}
	return screen, true
}

// Path returns the absolute URL path of the screen.
func (s Screen) Path() string {
	return "/" + string(s)
}

// Name returns a readable name for logs.
func (s Screen) Name() string {
	if s == ScreenLanding {
		return "landing"
	}
	return string(s)
}

// Navigator moves the visitor to another screen.
type Navigator interface {
	Navigate(to Screen)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(to Screen)

// Navigate implements Navigator.
func (f NavigatorFunc) Navigate(to Screen) {
	f(to)
}
