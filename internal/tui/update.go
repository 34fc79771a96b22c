package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, a.forwardToScreen(a.contentSizeMsg())

	case transitionDoneMsg:
		a.ctrl.FinishTransition()
		return a, nil

	case showModalMsg:
		a.pushModal(msg.modal)
		return a, nil

	case pushEventMsg:
		var cmds []tea.Cmd
		if top := a.topModal(); top != nil {
			if _, cmd := top.Update(msg); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		cmds = append(cmds, a.forwardToScreen(msg), a.waitForEvent())
		return a, tea.Batch(cmds...)

	case eventsClosedMsg:
		a.events = nil
		return a, a.setStatus("live updates disconnected", true)

	case statusExpiredMsg:
		if msg.seq == a.statusSeq {
			a.status = ""
			a.statusErr = false
		}
		return a, nil

	case tea.KeyMsg:
		return a, a.handleKey(msg)

	case tea.MouseMsg:
		return a, a.handleMouse(msg)
	}

	// everything else is data for the visible screen
	return a, a.forwardToScreen(msg)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, a.keys.ForceQuit) {
		return tea.Quit
	}

	// the topmost modal owns the keyboard
	if top := a.topModal(); top != nil {
		pop, cmd := top.Update(msg)
		if pop {
			a.popModal()
		}
		return cmd
	}

	if a.gotoActive {
		return a.handleGotoKey(msg)
	}

	capturing := false
	if c, ok := a.renderer.Visible().(InputCapturer); ok {
		capturing = c.CapturingInput()
	}

	if !capturing {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.pushModal(NewHelpModal())
			return nil
		case key.Matches(msg, a.keys.Stats):
			return statsModalCmd(a.deps)
		case key.Matches(msg, a.keys.Goto):
			a.gotoActive = true
			a.gotoInput.SetValue("")
			return tea.Batch(a.gotoInput.Focus(), textinput.Blink)
		}
		if a.input.HandleKey(msg) {
			return a.afterNav()
		}
	}

	return a.forwardToScreen(msg)
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if top := a.topModal(); top != nil {
		pop, cmd := top.Update(msg)
		if pop {
			a.popModal()
		}
		return cmd
	}
	if a.gotoActive {
		return nil
	}

	capturing := false
	if c, ok := a.renderer.Visible().(InputCapturer); ok {
		capturing = c.CapturingInput()
	}
	if !capturing && a.input.HandleMouse(msg) {
		return a.afterNav()
	}

	return a.forwardToScreen(msg)
}

// handleGotoKey runs the location prompt, the address-bar analogue. A typed
// location is an external navigation: it is handled silently, without being
// mirrored back to the recorder.
func (a *App) handleGotoKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		loc := strings.TrimSpace(a.gotoInput.Value())
		a.gotoActive = false
		a.gotoInput.Blur()
		if loc == "" {
			return nil
		}
		if err := a.ctrl.HandleExternalLocation(loc); err != nil {
			return a.setStatus(fmt.Sprintf("cannot open %s", loc), true)
		}
		return a.afterNav()

	case tea.KeyEsc:
		a.gotoActive = false
		a.gotoInput.Blur()
		return nil
	}

	var cmd tea.Cmd
	a.gotoInput, cmd = a.gotoInput.Update(msg)
	return cmd
}

// forwardToScreen delivers a message to the visible screen and applies any
// navigation it requests.
func (a *App) forwardToScreen(msg tea.Msg) tea.Cmd {
	vis := a.renderer.Visible()
	if vis == nil {
		return nil
	}
	cmd, req := vis.Update(msg)
	if req == nil {
		return cmd
	}
	return tea.Batch(cmd, a.applyNav(req))
}

// applyNav runs one screen-requested controller operation.
func (a *App) applyNav(req *NavRequest) tea.Cmd {
	var err error
	switch req.Op {
	case NavPush:
		err = a.ctrl.Navigate(req.Route, req.Params)
	case NavBack:
		err = a.ctrl.GoBack()
	case NavReplace:
		err = a.ctrl.Replace(req.Route, req.Params)
	case NavReset:
		err = a.ctrl.ResetTo(req.Route, req.Params)
	}
	if err != nil {
		// blocked mid-transition or back at root; the controller logged it
		return nil
	}
	return a.afterNav()
}

// afterNav collects what a successful navigation leaves behind: the new
// screen's Init command, its content size, and the transition timer.
func (a *App) afterNav() tea.Cmd {
	var cmds []tea.Cmd
	if cmd := a.renderer.TakeInit(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if a.width > 0 {
		if cmd := a.forwardToScreen(a.contentSizeMsg()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if a.ctrl.Animating() {
		cmds = append(cmds, a.transitionCmd())
	}
	return tea.Batch(cmds...)
}

// transitionCmd arms the fixed-duration timer that ends the transition gate.
func (a *App) transitionCmd() tea.Cmd {
	d := a.ctrl.TransitionFor()
	if d <= 0 {
		a.ctrl.FinishTransition()
		return nil
	}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return transitionDoneMsg{}
	})
}

// waitForEvent reads one change from the push feed. The command re-arms
// itself from the pushEventMsg handler.
func (a *App) waitForEvent() tea.Cmd {
	events := a.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-events
		if !ok {
			return eventsClosedMsg{}
		}
		return pushEventMsg{change: change}
	}
}

// setStatus shows a transient status line message.
func (a *App) setStatus(text string, isErr bool) tea.Cmd {
	a.status = text
	a.statusErr = isErr
	a.statusSeq++
	seq := a.statusSeq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{seq: seq}
	})
}

// contentSizeMsg is the size screens actually get to draw in.
func (a *App) contentSizeMsg() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: a.width, Height: a.contentHeight()}
}

// contentHeight is the terminal height minus the chrome: the status line,
// plus the header when the visible screen wants one.
func (a *App) contentHeight() int {
	h := a.height - 1
	if a.renderer.Spec().ShowHeader {
		h--
	}
	if h < 1 {
		h = 1
	}
	return h
}
