package ui

import "testing"

func TestDefaultProgramOptions(t *testing.T) {
	opts := DefaultProgramOptions()

	if opts.AltScreen != true {
		t.Errorf("Expected AltScreen to be true by default, got %v", opts.AltScreen)
	}

	if opts.MouseSupport != true {
		t.Errorf("Expected MouseSupport to be true by default, got %v", opts.MouseSupport)
	}
}

func TestProgramOptionsConfiguration(t *testing.T) {
	testCases := []struct {
		name string
		opts ProgramOptions
		want int
	}{
		{"plain", ProgramOptions{}, 0},
		{"alt screen", ProgramOptions{AltScreen: true}, 1},
		{"mouse", ProgramOptions{MouseSupport: true}, 1},
		{"both", ProgramOptions{AltScreen: true, MouseSupport: true}, 2},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := len(programOptions(tc.opts)); got != tc.want {
				t.Errorf("Expected %d program options, got %d", tc.want, got)
			}
		})
	}
}

func TestNewProgram(t *testing.T) {
	screen, _, _ := newTestScreen(t)

	program := NewProgram(screen, ProgramOptions{})
	if program == nil {
		t.Fatal("NewProgram should return a non-nil program")
	}
}
