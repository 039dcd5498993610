package raw

import "testing"

func TestPositionDistance(t *testing.T) {
	tests := []struct {
		a, b Position
		want float64
	}{
		{Position{0, 0}, Position{0, 0}, 0},
		{Position{0, 0}, Position{3, 4}, 7},
		{Position{10, 10}, Position{7, 14}, 7},
		{Position{-2, 0}, Position{2, 0}, 4},
	}

	for _, tt := range tests {
		if got := tt.a.Distance(tt.b); got != tt.want {
			t.Errorf("%v.Distance(%v) = %g, want %g", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPositionSub(t *testing.T) {
	d := Position{X: 10, Y: 4}.Sub(Position{X: 3, Y: 6})
	if d.X != 7 || d.Y != -2 {
		t.Errorf("Sub = %v, want {7 -2}", d)
	}
}

func TestDeltaIsZero(t *testing.T) {
	if !(Delta{}).IsZero() {
		t.Error("zero delta should be zero")
	}
	if (Delta{X: 0.1}).IsZero() {
		t.Error("nonzero X should not be zero")
	}
	if (Delta{Y: -1}).IsZero() {
		t.Error("nonzero Y should not be zero")
	}
}

func TestEventDevices(t *testing.T) {
	tests := []struct {
		ev   Event
		want Device
	}{
		{Key{}, DeviceKeyboard},
		{PointerButton{}, DevicePointer},
		{PointerMove{}, DevicePointer},
		{Wheel{}, DevicePointer},
		{Gesture{}, DeviceTouch},
	}

	for _, tt := range tests {
		if got := tt.ev.EventDevice(); got != tt.want {
			t.Errorf("%T.EventDevice() = %v, want %v", tt.ev, got, tt.want)
		}
	}
}

func TestGestureKindFromName(t *testing.T) {
	for _, kind := range []GestureKind{GesturePan, GesturePinch, GestureTwoFingerPan, GestureTwoFingerDown, GestureLongPress} {
		got, ok := GestureKindFromName(kind.String())
		if !ok || got != kind {
			t.Errorf("GestureKindFromName(%q) = %v, %v", kind.String(), got, ok)
		}
	}
	if _, ok := GestureKindFromName("bogus"); ok {
		t.Error("unknown gesture name should not be recognized")
	}
}
