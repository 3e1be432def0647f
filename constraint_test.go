package corkboard

import "testing"

func TestAspectRatio(t *testing.T) {
	start := Rect{Width: 200, Height: 100}
	tests := []struct {
		name   string
		c      AspectRatio
		edges  Edges
		w, h   float64
		wantW  float64
		wantH  float64
		origin Rect
	}{
		{"preserve from width", AspectRatio{Preserve: true}, EdgeRight, 300, 999, 300, 150, start},
		{"preserve from height", AspectRatio{Preserve: true}, EdgeTop, 999, 50, 100, 50, start},
		{"corner follows width", AspectRatio{Preserve: true}, EdgeLeft | EdgeBottom, 100, 10, 100, 50, start},
		{"base ratio", AspectRatio{}, EdgeRight, 300, 1, 300, 300, start},
		{"fixed ratio", AspectRatio{Ratio: 2}, EdgeBottom, 1, 40, 80, 40, start},
		{"degenerate start", AspectRatio{Ratio: 1, Preserve: true}, EdgeRight, 30, 1, 30, 30, Rect{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := tt.c.Constrain(ResizeContext{Start: tt.origin, Edges: tt.edges}, tt.w, tt.h)
			if !approx(w, tt.wantW) || !approx(h, tt.wantH) {
				t.Fatalf("Constrain = %vx%v, want %vx%v", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestMinSize(t *testing.T) {
	m := MinSize{Width: 10, Height: 10}
	tests := []struct {
		w, h         float64
		wantW, wantH float64
	}{
		{30, 40, 30, 40},
		{5, 2.5, 20, 10},
		{100, 5, 200, 10},
		{5, 100, 10, 200},
		{-5, 20, 10, 20},
		{0, 0, 10, 10},
	}
	for _, tt := range tests {
		w, h := m.Constrain(ResizeContext{}, tt.w, tt.h)
		if !approx(w, tt.wantW) || !approx(h, tt.wantH) {
			t.Errorf("Constrain(%v, %v) = %vx%v, want %vx%v", tt.w, tt.h, w, h, tt.wantW, tt.wantH)
		}
	}
}

func TestDefaultConstraintsRespectMinimum(t *testing.T) {
	chain := defaultConstraints(DefaultOptions())
	sizes := []float64{-500, -1, 0, 0.25, 3, 9.99, 10, 640}
	edges := []Edges{EdgeLeft, EdgeRight, EdgeTop, EdgeBottom, EdgeLeft | EdgeTop, EdgeRight | EdgeBottom}
	starts := []Rect{{Width: 200, Height: 100}, {Width: 10, Height: 400}, {Width: 1000, Height: 10}}
	for _, start := range starts {
		for _, e := range edges {
			for _, w := range sizes {
				for _, h := range sizes {
					gw, gh := w, h
					ctx := ResizeContext{Start: start, Edges: e}
					for _, c := range chain {
						gw, gh = c.Constrain(ctx, gw, gh)
					}
					if gw < 10 || gh < 10 {
						t.Fatalf("start %+v edges %b size %vx%v -> %vx%v", start, e, w, h, gw, gh)
					}
				}
			}
		}
	}
}
