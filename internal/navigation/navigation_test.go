package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		path string
		want Screen
		ok   bool
	}{
		{"/", ScreenLanding, true},
		{"", ScreenLanding, true},
		{"/register", ScreenRegister, true},
		{"/login/", ScreenLogin, true},
		{"/verify?token=abc", ScreenVerify, true},
		{"/dashboard", ScreenLanding, false},
		{"/login/extra", ScreenLanding, false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, ok := Resolve(tt.path)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestScreenPath(t *testing.T) {
	assert.Equal(t, "/", ScreenLanding.Path())
	assert.Equal(t, "/login", ScreenLogin.Path())
	assert.Equal(t, "landing", ScreenLanding.Name())
}

func TestNavigatorFunc(t *testing.T) {
	var got Screen
	NavigatorFunc(func(to Screen) { got = to }).Navigate(ScreenLogin)
	assert.Equal(t, ScreenLogin, got)
}
