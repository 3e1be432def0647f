package corkboard

import (
	"math"
	"testing"
)

func inertiaOptions() Options {
	o := DefaultOptions()
	o.Inertia = true
	return o
}

// settle runs updates until no resize is settling.
func settle(t *testing.T, b *Board, onStep func()) {
	t.Helper()
	for i := 0; b.Settling(); i++ {
		if i > 1000 {
			t.Fatal("settle never finished")
		}
		b.update(testDT)
		if onStep != nil {
			onStep()
		}
	}
}

func TestInertiaSettlesPastRelease(t *testing.T) {
	b, it := resizableItem(t, inertiaOptions())
	s := b.beginResize(it, EdgeRight)
	b.resizeBy(s, 10, 0, testDT)
	b.endResize(s)
	if !b.Settling() {
		t.Fatal("fast release should start a settle")
	}

	v := 10 / float64(testDT)
	wantW := 200 + 10 + v*inertiaReach
	maxW := 0.0
	settle(t, b, func() { maxW = math.Max(maxW, it.Width) })

	if math.Abs(it.Width-wantW) > 0.01 || math.Abs(it.Height-wantW/2) > 0.01 {
		t.Fatalf("settled at %vx%v, want %vx%v", it.Width, it.Height, wantW, wantW/2)
	}
	if maxW <= wantW+1 {
		t.Errorf("max width %v, expected the settle to overshoot %v", maxW, wantW)
	}
}

func TestSlowReleaseStops(t *testing.T) {
	b, it := resizableItem(t, inertiaOptions())
	s := b.beginResize(it, EdgeRight)
	b.resizeBy(s, 1, 0, 1)
	b.endResize(s)
	if b.Settling() {
		t.Fatal("slow release should not settle")
	}
	if it.Width != 201 {
		t.Fatalf("width = %v, want 201", it.Width)
	}
}

func TestInertiaDisabled(t *testing.T) {
	b, it := resizableItem(t, quietOptions())
	s := b.beginResize(it, EdgeRight)
	b.resizeBy(s, 50, 0, testDT)
	b.endResize(s)
	if b.Settling() {
		t.Fatal("settle started with inertia off")
	}
}

func TestNewGrabCancelsSettle(t *testing.T) {
	b, it := resizableItem(t, inertiaOptions())
	s := b.beginResize(it, EdgeRight)
	b.resizeBy(s, 20, 0, testDT)
	b.endResize(s)
	if !b.Settling() {
		t.Fatal("expected a settle")
	}
	b.beginResize(it, EdgeRight)
	if b.Settling() {
		t.Fatal("grabbing the item should cancel its settle")
	}
}

func TestSettleHonorsMinimum(t *testing.T) {
	b, it := resizableItem(t, inertiaOptions())
	s := b.beginResize(it, EdgeLeft)
	b.resizeBy(s, 150, 0, testDT)
	b.endResize(s)
	settle(t, b, func() {
		if it.Width < 10 || it.Height < 10 {
			t.Fatalf("settle shrank item to %vx%v", it.Width, it.Height)
		}
	})
	if !approx(it.X+it.Width, 200) {
		t.Fatalf("right edge moved to %v", it.X+it.Width)
	}
}

func TestFastResizeGestureSettles(t *testing.T) {
	b, _ := resizableItem(t, inertiaOptions())
	b.InjectDrag(198, 50, 298, 50, 3, MouseButtonLeft)
	flush(t, b)
	if !b.Settling() {
		t.Fatal("fast resize gesture should leave a settle running")
	}
	settle(t, b, nil)
}

func TestDragDuringSettleKeepsTranslation(t *testing.T) {
	b, it := resizableItem(t, inertiaOptions())
	b.InjectDrag(198, 50, 298, 50, 3, MouseButtonLeft)
	flush(t, b)
	if !b.Settling() {
		t.Fatal("fast resize gesture should leave a settle running")
	}

	startX, startY := it.X, it.Y
	b.InjectDrag(40, 40, 90, 40, 4, MouseButtonLeft)
	flush(t, b)
	if b.Settling() {
		t.Fatal("moving the item should stop its settle")
	}
	settle(t, b, nil)
	b.update(testDT)

	if !approx(it.X, startX+50) || !approx(it.Y, startY) {
		t.Fatalf("item at (%v, %v), want (%v, %v)", it.X, it.Y, startX+50, startY)
	}
}

func TestSettleOnOtherItemSurvivesMove(t *testing.T) {
	b, it := resizableItem(t, inertiaOptions())
	other := b.AddItem("a.png")
	s := b.beginResize(it, EdgeRight)
	b.resizeBy(s, 10, 0, testDT)
	b.endResize(s)

	b.MoveItem(other, 5, 5)
	if !b.Settling() {
		t.Fatal("moving another item stopped the settle")
	}
	settle(t, b, nil)
}
