package nav

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
}

// detailFixture starts at Home and navigates onto RecipeDetail, which has
// gestures enabled.
func detailFixture(t *testing.T, transition time.Duration) (*controllerFixture, *InputHandler) {
	t.Helper()
	f := newFixture(t, transition)
	if err := f.ctrl.Navigate(RouteRecipeDetail, Params{"id": "1"}); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	return f, NewInputHandler(f.ctrl, 6, discardLogger())
}

func TestInput_RightwardDragGoesBack(t *testing.T) {
	t.Parallel()

	f, h := detailFixture(t, 0)
	h.HandleMouse(press(10, 5))
	if !h.HandleMouse(motion(17, 5)) {
		t.Fatal("drag past threshold did not fire")
	}
	if f.ctrl.Current().Route != RouteHome {
		t.Errorf("current = %q, want Home", f.ctrl.Current().Route)
	}
}

func TestInput_GestureFiresOncePerPress(t *testing.T) {
	t.Parallel()

	f, h := detailFixture(t, 0)
	if err := f.ctrl.Navigate(RouteFavorites, nil); err != nil {
		t.Fatalf("Navigate: %v", err)
	}

	h.HandleMouse(press(0, 0))
	if !h.HandleMouse(motion(10, 0)) {
		t.Fatal("first drag did not fire")
	}
	if h.HandleMouse(motion(30, 0)) {
		t.Error("second trigger within the same press")
	}
	h.HandleMouse(release(30, 0))

	// back on RecipeDetail now; a fresh press may fire again
	h.HandleMouse(press(0, 0))
	if !h.HandleMouse(motion(10, 0)) {
		t.Error("drag after release did not fire")
	}
	if f.ctrl.Current().Route != RouteHome {
		t.Errorf("current = %q, want Home", f.ctrl.Current().Route)
	}
}

func TestInput_DragBelowThresholdIgnored(t *testing.T) {
	t.Parallel()

	f, h := detailFixture(t, 0)
	h.HandleMouse(press(10, 5))
	if h.HandleMouse(motion(15, 5)) {
		t.Error("five-cell drag fired with a six-cell threshold")
	}
	if f.ctrl.Current().Route != RouteRecipeDetail {
		t.Errorf("current = %q, want RecipeDetail", f.ctrl.Current().Route)
	}
}

func TestInput_VerticalDragIgnored(t *testing.T) {
	t.Parallel()

	f, h := detailFixture(t, 0)
	h.HandleMouse(press(10, 5))
	if h.HandleMouse(motion(17, 11)) {
		t.Error("mostly vertical drag fired")
	}
	if f.ctrl.Current().Route != RouteRecipeDetail {
		t.Errorf("current = %q, want RecipeDetail", f.ctrl.Current().Route)
	}
}

func TestInput_LeftwardDragIgnored(t *testing.T) {
	t.Parallel()

	f, h := detailFixture(t, 0)
	h.HandleMouse(press(20, 5))
	if h.HandleMouse(motion(5, 5)) {
		t.Error("leftward drag fired")
	}
}

func TestInput_GestureDisabledScreen(t *testing.T) {
	t.Parallel()

	f := newFixture(t, -1)
	if err := f.ctrl.Navigate(RouteRecipeForm, nil); err != nil {
		t.Fatalf("Navigate: %v", err)
	}
	h := NewInputHandler(f.ctrl, 6, discardLogger())

	h.HandleMouse(press(0, 0))
	if h.HandleMouse(motion(12, 0)) {
		t.Error("gesture fired on a gesture-disabled screen")
	}
	if f.ctrl.Current().Route != RouteRecipeForm {
		t.Errorf("current = %q, want RecipeForm", f.ctrl.Current().Route)
	}
}

func TestInput_GestureIgnoredWhileAnimating(t *testing.T) {
	t.Parallel()

	f, h := detailFixture(t, 50*time.Millisecond)
	if !f.ctrl.Animating() {
		t.Fatal("fixture not animating")
	}
	h.HandleMouse(press(0, 0))
	if h.HandleMouse(motion(12, 0)) {
		t.Error("gesture fired while animating")
	}
	if f.ctrl.Current().Route != RouteRecipeDetail {
		t.Errorf("current = %q, want RecipeDetail", f.ctrl.Current().Route)
	}
}

func TestInput_BackKeys(t *testing.T) {
	t.Parallel()

	f, h := detailFixture(t, 0)
	if !h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}) {
		t.Fatal("esc not consumed")
	}
	if f.ctrl.Current().Route != RouteHome {
		t.Errorf("current = %q, want Home", f.ctrl.Current().Route)
	}

	// at root: the key is left for the host to interpret
	if h.HandleKey(tea.KeyMsg{Type: tea.KeyEsc}) {
		t.Error("esc consumed at root")
	}
}

func TestInput_AltLeftKey(t *testing.T) {
	t.Parallel()

	f, h := detailFixture(t, 0)
	if !h.HandleKey(tea.KeyMsg{Type: tea.KeyLeft, Alt: true}) {
		t.Fatal("alt+left not consumed")
	}
	if f.ctrl.Current().Route != RouteHome {
		t.Errorf("current = %q, want Home", f.ctrl.Current().Route)
	}
}

func TestInput_UnrelatedKeyNotConsumed(t *testing.T) {
	t.Parallel()

	_, h := detailFixture(t, 0)
	if h.HandleKey(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}) {
		t.Error("unrelated key consumed")
	}
}
