package uvinput

import (
	"testing"
	"time"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/arcball/pkg/camera"
)

func TestMapKey(t *testing.T) {
	tests := []struct {
		name string
		key  uv.Key
		want camera.Key
	}{
		{"w", uv.Key{Code: 'w'}, camera.KeyW},
		{"shifted W", uv.Key{Code: 'W', Mod: uv.ModShift}, camera.KeyW},
		{"e", uv.Key{Code: 'e'}, camera.KeyE},
		{"arrow up", uv.Key{Code: uv.KeyUp}, camera.KeyArrowUp},
		{"page down", uv.Key{Code: uv.KeyPgDown}, camera.KeyPageDown},
		{"home", uv.Key{Code: uv.KeyHome}, camera.KeyHome},
		{"keypad 8", uv.Key{Code: uv.KeyKp8}, camera.KeyNumpad8},
		{"left ctrl", uv.Key{Code: uv.KeyLeftCtrl}, camera.KeyControl},
		{"unbound", uv.Key{Code: 'x'}, camera.KeyUnknown},
		{"escape", uv.Key{Code: uv.KeyEscape}, camera.KeyUnknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := MapKey(tc.key); got != tc.want {
				t.Errorf("MapKey = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTranslateMouse(t *testing.T) {
	tr := New()
	now := time.Now()

	got := tr.Translate(uv.MouseClickEvent{X: 10, Y: 5, Button: uv.MouseLeft}, now)
	want := camera.Event{Kind: camera.PointerDown, X: 10, Y: 10, Button: camera.ButtonLeft}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("click = %+v, want %+v", got, want)
	}

	got = tr.Translate(uv.MouseMotionEvent{X: 12, Y: 6, Button: uv.MouseLeft}, now)
	want = camera.Event{Kind: camera.PointerMove, X: 12, Y: 12}
	if len(got) != 1 || got[0] != want {
		t.Fatalf("motion = %+v, want %+v", got, want)
	}

	// Legacy encodings release without naming the button.
	tr.Translate(uv.MouseClickEvent{X: 12, Y: 6, Button: uv.MouseRight}, now)
	got = tr.Translate(uv.MouseReleaseEvent{X: 12, Y: 6, Button: uv.MouseNone}, now)
	if len(got) != 2 || got[0].Button != camera.ButtonLeft || got[1].Button != camera.ButtonRight {
		t.Fatalf("release = %+v, want left and right up", got)
	}
	for _, ev := range got {
		if ev.Kind != camera.PointerUp {
			t.Errorf("release kind = %v", ev.Kind)
		}
	}

	if got := tr.Translate(uv.MouseReleaseEvent{Button: uv.MouseNone}, now); len(got) != 0 {
		t.Errorf("release with nothing held = %+v", got)
	}
}

func TestTranslateWheel(t *testing.T) {
	tests := []struct {
		button uv.MouseButton
		want   int
	}{
		{uv.MouseWheelUp, camera.WheelDelta},
		{uv.MouseWheelDown, -camera.WheelDelta},
	}

	tr := New()
	for _, tc := range tests {
		got := tr.Translate(uv.MouseWheelEvent{Button: tc.button}, time.Now())
		if len(got) != 1 || got[0].Kind != camera.Wheel || got[0].Wheel != tc.want {
			t.Errorf("wheel %v = %+v, want %d", tc.button, got, tc.want)
		}
	}
}

func TestTranslateFocus(t *testing.T) {
	tr := New()
	now := time.Now()

	got := tr.Translate(uv.FocusEvent{}, now)
	if len(got) != 1 || got[0] != (camera.Event{Kind: camera.Activate, Active: true}) {
		t.Errorf("focus = %+v", got)
	}

	tr.Translate(uv.KeyPressEvent{Code: 'w'}, now)
	got = tr.Translate(uv.BlurEvent{}, now)
	want := []camera.Event{
		{Kind: camera.KeyUp, Key: camera.KeyW},
		{Kind: camera.Activate, Active: false},
		{Kind: camera.CaptureLost},
	}
	if len(got) != len(want) {
		t.Fatalf("blur = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("blur[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestExpireReleasesQuietKeys(t *testing.T) {
	tr := New()
	start := time.Now()

	tr.Translate(uv.KeyPressEvent{Code: 'w'}, start)
	tr.Translate(uv.KeyPressEvent{Code: 'd'}, start)

	// Auto-repeat keeps W alive.
	tr.Translate(uv.KeyPressEvent{Code: 'w', IsRepeat: true}, start.Add(400*time.Millisecond))

	got := tr.Expire(start.Add(DefaultHoldTime))
	if len(got) != 1 || got[0] != (camera.Event{Kind: camera.KeyUp, Key: camera.KeyD}) {
		t.Fatalf("Expire = %+v, want D up", got)
	}

	got = tr.Expire(start.Add(400*time.Millisecond + DefaultHoldTime))
	if len(got) != 1 || got[0].Key != camera.KeyW {
		t.Fatalf("Expire = %+v, want W up", got)
	}

	if got := tr.Expire(start.Add(time.Hour)); len(got) != 0 {
		t.Errorf("Expire with nothing held = %+v", got)
	}
}

func TestRealReleasesDisableExpiry(t *testing.T) {
	tr := New()
	start := time.Now()

	tr.Translate(uv.KeyPressEvent{Code: 'a'}, start)
	got := tr.Translate(uv.KeyReleaseEvent{Code: 'a'}, start)
	if len(got) != 1 || got[0] != (camera.Event{Kind: camera.KeyUp, Key: camera.KeyA}) {
		t.Fatalf("release = %+v", got)
	}
	if !tr.ReportsReleases() {
		t.Fatal("release not recorded")
	}

	tr.Translate(uv.KeyPressEvent{Code: 's'}, start)
	if got := tr.Expire(start.Add(time.Hour)); len(got) != 0 {
		t.Errorf("Expire after real releases = %+v", got)
	}
}

func TestCtrlModifierHoldsControl(t *testing.T) {
	tr := New()
	got := tr.Translate(uv.KeyPressEvent{Code: 'w', Mod: uv.ModCtrl}, time.Now())
	want := []camera.Event{
		{Kind: camera.KeyDown, Key: camera.KeyControl},
		{Kind: camera.KeyDown, Key: camera.KeyW},
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ctrl+w = %+v, want %+v", got, want)
	}
}
