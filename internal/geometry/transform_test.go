package geometry

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestToDocumentScenario(t *testing.T) {
	// A 200x300 page rendered at scale 0.5.
	v := FitWidth(Size{Width: 200, Height: 300}, 100)
	if diff := cmp.Diff(Size{Width: 100, Height: 150}, v.Render); diff != "" {
		t.Fatalf("render size mismatch (-want +got):\n%s", diff)
	}
	if v.Scale() != 0.5 {
		t.Fatalf("Scale() = %v, want 0.5", v.Scale())
	}

	got, err := v.ToDocument(Rect{X: 10, Y: 10, Width: 40, Height: 20})
	if err != nil {
		t.Fatalf("ToDocument: %v", err)
	}
	want := Placement{X: 20, Y: 240, Width: 80, Height: 40}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("placement mismatch (-want +got):\n%s", diff)
	}
}

func TestToDocumentUnmeasured(t *testing.T) {
	tests := []struct {
		name string
		v    Viewport
	}{
		{"zero", Viewport{}},
		{"no render height", Viewport{Render: Size{Width: 100}, Native: Size{Width: 200, Height: 300}}},
		{"no render width", Viewport{Render: Size{Height: 100}, Native: Size{Width: 200, Height: 300}}},
		{"no native", Viewport{Render: Size{Width: 100, Height: 150}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.v.ToDocument(Rect{Width: 10, Height: 10}); !errors.Is(err, ErrNotMeasured) {
				t.Errorf("ToDocument error = %v, want ErrNotMeasured", err)
			}
			if _, err := tt.v.ToPixels(Placement{Width: 10, Height: 10}); !errors.Is(err, ErrNotMeasured) {
				t.Errorf("ToPixels error = %v, want ErrNotMeasured", err)
			}
		})
	}
}

func TestFitWidthDegenerate(t *testing.T) {
	v := FitWidth(Size{Width: 0, Height: 300}, 100)
	if v.Measured() {
		t.Error("viewport of a zero-width page must not be measured")
	}
	v = FitWidth(Size{Width: 200, Height: 300}, 0)
	if v.Measured() {
		t.Error("viewport of a zero-width container must not be measured")
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	opt := cmpopts.EquateApprox(0, 1e-9)
	for i := 0; i < 500; i++ {
		native := Size{Width: 50 + rng.Float64()*1000, Height: 50 + rng.Float64()*1000}
		v := FitWidth(native, 100+rng.Float64()*1500)

		w := rng.Float64() * v.Render.Width
		h := rng.Float64() * v.Render.Height
		r := Rect{
			X:      rng.Float64() * (v.Render.Width - w),
			Y:      rng.Float64() * (v.Render.Height - h),
			Width:  w,
			Height: h,
		}

		p, err := v.ToDocument(r)
		if err != nil {
			t.Fatalf("ToDocument: %v", err)
		}
		back, err := v.ToPixels(p)
		if err != nil {
			t.Fatalf("ToPixels: %v", err)
		}
		if diff := cmp.Diff(r, back, opt); diff != "" {
			t.Fatalf("round trip %d mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{5, 0, -3, 0},
	}
	for _, tt := range tests {
		if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.want {
			t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tt.v, tt.lo, tt.hi, got, tt.want)
		}
	}
}

func TestToPixelsScenario(t *testing.T) {
	v := FitWidth(Size{Width: 200, Height: 300}, 100)
	got, err := v.ToPixels(Placement{X: 20, Y: 240, Width: 80, Height: 40})
	if err != nil {
		t.Fatalf("ToPixels: %v", err)
	}
	want := Rect{X: 10, Y: 10, Width: 40, Height: 20}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("rect mismatch (-want +got):\n%s", diff)
	}
}
