package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/katyella/sprig-sample/internal/analytics"
	"github.com/katyella/sprig-sample/internal/constants"
)

// button invokes exactly one client method when pressed. press returns a
// description of the call for the activity log.
type button struct {
	label   string
	binding key.Binding
	press   func(c Analytics) (string, error)
}

func sampleButtons(keys keyMap) []button {
	return []button{
		{label: constants.IdentifyButtonLabel, binding: keys.Identify, press: pressIdentify},
		{label: constants.TrackButtonLabel, binding: keys.Track, press: pressTrack},
		{label: constants.TrackPropertiesButtonLabel, binding: keys.TrackProperties, press: pressTrackWithProperties},
		{label: constants.LogoutButtonLabel, binding: keys.Logout, press: pressLogout},
	}
}

func pressIdentify(c Analytics) (string, error) {
	traits := analytics.NewTraits().
		PutEmail(constants.SampleEmail).
		Put("v1", 1).
		Put("v2", "2")
	return fmt.Sprintf("identify %s %v", constants.SampleUserID, map[string]interface{}(traits)),
		c.Identify(constants.SampleUserID, traits, nil)
}

func pressTrack(c Analytics) (string, error) {
	return "track " + constants.SampleEvent, c.Track(constants.SampleEvent)
}

func pressTrackWithProperties(c Analytics) (string, error) {
	props := analytics.NewProperties().
		PutValue("key_1", "value_1").
		PutValue("key_2", "value_2")
	return fmt.Sprintf("track %s %v", constants.SampleEventWithProperties, map[string]interface{}(props)),
		c.Track(constants.SampleEventWithProperties, props)
}

func pressLogout(c Analytics) (string, error) {
	c.Reset(false)
	return "reset", nil
}

// rect is a screen region in cells.
type rect struct {
	X, Y, W, H int
}

func (r rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// buttonGap is the number of blank columns between buttons.
const buttonGap = 1

// buttonColumns returns how many buttons fit side by side in width.
func buttonColumns(width, count int) int {
	outer := constants.ButtonWidth + 2 // border
	cols := (width + buttonGap) / (outer + buttonGap)
	if cols < 1 {
		cols = 1
	}
	if cols > count {
		cols = count
	}
	return cols
}

// buttonLayout returns where each of count buttons is drawn for a screen
// of the given width. Buttons start below the header.
func buttonLayout(width, count int) []rect {
	outer := constants.ButtonWidth + 2
	cols := buttonColumns(width, count)
	top := constants.HeaderHeight + 1

	rects := make([]rect, count)
	for i := range rects {
		row, col := i/cols, i%cols
		rects[i] = rect{
			X: col * (outer + buttonGap),
			Y: top + row*constants.ButtonHeight,
			W: outer,
			H: constants.ButtonHeight,
		}
	}
	return rects
}

// buttonRows returns the number of rows count buttons occupy.
func buttonRows(width, count int) int {
	cols := buttonColumns(width, count)
	return (count + cols - 1) / cols
}

// buttonAt returns the index of the button under (x, y), or -1.
func buttonAt(width, count, x, y int) int {
	for i, r := range buttonLayout(width, count) {
		if r.contains(x, y) {
			return i
		}
	}
	return -1
}
