// Package ui holds the headless state behind the interactive parts of a
// turn: the right-click menu and the active targeter. Both are owned by
// the game loop and only change through the calls defined here.
package ui

import (
	"log"

	rpgerr "github.com/KirkDiggler/tactics-engine/internal/errors"
)

// Entry is a selectable line of a menu level
type Entry struct {
	Text     string
	Callback func() error
}

// Level is one page of a menu. Selecting an entry may open a deeper level.
type Level struct {
	Title   string
	Entries []Entry
}

// Texts returns the entry labels in display order
func (l Level) Texts() []string {
	texts := make([]string, len(l.Entries))
	for i, e := range l.Entries {
		texts[i] = e.Text
	}
	return texts
}

// Command mutates menu state. Commands are the only way to change a Menu.
type Command interface {
	apply(m *Menu) error
}

// Show pushes a new level and requests the popup
type Show struct {
	Level Level
}

// Displayed is sent by the presenter once the popup is on screen
type Displayed struct{}

// HidePopup suppresses the visual popup while keeping the levels readable,
// used when the AI drives a menu instead of a human
type HidePopup struct{}

// SelectEntry picks an entry of the lowest level by text, or by index
// when Text is empty. The menu closes before the callback runs, so a
// callback that shows a submenu leaves that submenu open.
type SelectEntry struct {
	Text  string
	Index int
}

// Clear closes the menu and drops all levels
type Clear struct{}

// Menu is the single owner of right-click menu state
type Menu struct {
	levels  []Level
	opening bool
	visible bool
}

// NewMenu creates a closed menu
func NewMenu() *Menu {
	return &Menu{}
}

// Dispatch applies a command
func (m *Menu) Dispatch(cmd Command) error {
	if cmd == nil {
		return rpgerr.InvalidArgument("menu command cannot be nil")
	}
	return cmd.apply(m)
}

// IsOpen reports whether the menu holds levels that are shown or about to be
func (m *Menu) IsOpen() bool {
	return len(m.levels) > 0 && (m.opening || m.visible)
}

// IsOpening reports whether a level was pushed but not displayed yet
func (m *Menu) IsOpening() bool {
	return m.opening
}

// Depth returns the number of stacked levels
func (m *Menu) Depth() int {
	return len(m.levels)
}

// LowestLevel returns the deepest level, false when the menu is empty
func (m *Menu) LowestLevel() (Level, bool) {
	if len(m.levels) == 0 {
		return Level{}, false
	}
	lvl := m.levels[len(m.levels)-1]
	lvl.Entries = append([]Entry(nil), lvl.Entries...)
	return lvl, true
}

func (c Show) apply(m *Menu) error {
	m.levels = append(m.levels, c.Level)
	m.opening = true
	return nil
}

func (Displayed) apply(m *Menu) error {
	if len(m.levels) == 0 {
		return nil
	}
	m.opening = false
	m.visible = true
	return nil
}

func (HidePopup) apply(m *Menu) error {
	m.opening = false
	m.visible = false
	return nil
}

func (c SelectEntry) apply(m *Menu) error {
	lvl, ok := m.LowestLevel()
	if !ok {
		return rpgerr.NotFound("menu has no open level")
	}

	index := c.Index
	if c.Text != "" {
		index = -1
		for i, e := range lvl.Entries {
			if e.Text == c.Text {
				index = i
				break
			}
		}
		if index < 0 {
			return rpgerr.NotFoundf("menu entry %q not found", c.Text)
		}
	}
	if index < 0 || index >= len(lvl.Entries) {
		return rpgerr.InvalidArgumentf("menu entry index %d out of range", index)
	}

	entry := lvl.Entries[index]
	m.reset()

	if entry.Callback == nil {
		return nil
	}
	if err := entry.Callback(); err != nil {
		log.Printf("Menu: entry %q callback failed: %v", entry.Text, err)
		return err
	}
	return nil
}

func (Clear) apply(m *Menu) error {
	m.reset()
	return nil
}

func (m *Menu) reset() {
	m.levels = nil
	m.opening = false
	m.visible = false
}
