package canvassurface

import (
	"image/color"
	"image/png"
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/driftfield/field"
	"github.com/pthm-cable/driftfield/host"
)

var red = field.Paint{Hue: 0, Saturation: 1, Lightness: 0.5, Alpha: 1}

func TestResizeUsesPhysicalPixels(t *testing.T) {
	s := New(40, 30, 2)
	if b := s.Image().Bounds(); b.Dx() != 80 || b.Dy() != 60 {
		t.Errorf("expected 80x60 backing image, got %v", b)
	}
	if w, h := s.Size(); w != 40 || h != 30 {
		t.Errorf("expected logical 40x30, got %vx%v", w, h)
	}

	s.Resize(101, 10, 1.5)
	if b := s.Image().Bounds(); b.Dx() != 151 || b.Dy() != 15 {
		t.Errorf("expected floor(101*1.5)=151 wide, got %v", b)
	}
	if s.PixelRatio() != 1.5 {
		t.Errorf("expected ratio 1.5, got %v", s.PixelRatio())
	}
}

func TestFillCircleHonoursScale(t *testing.T) {
	s := New(40, 30, 2)
	s.SetScale(2)
	s.Clear()
	s.FillCircle(10, 10, 4, red)

	img := s.Image()
	if c := img.RGBAAt(20, 20); c.R < 200 || c.G > 40 || c.A < 200 {
		t.Errorf("expected red at circle centre, got %+v", c)
	}
	if c := img.RGBAAt(70, 50); c.A != 0 {
		t.Errorf("expected transparent far from circle, got %+v", c)
	}
}

func TestClearWithBackground(t *testing.T) {
	s := New(10, 10, 1)
	s.SetScale(1)
	s.FillCircle(5, 5, 3, red)
	s.SetBackground(color.RGBA{R: 0, G: 0, B: 255, A: 255})
	s.Clear()

	if c := s.Image().RGBAAt(5, 5); c.B != 255 || c.R != 0 {
		t.Errorf("expected blue background after clear, got %+v", c)
	}
}

func TestHeadlessFrames(t *testing.T) {
	s := New(320, 200, 1)
	loop := host.NewFrameLoop()
	opts := field.DefaultOptions()
	opts.Opacity = 1
	opts.Rand = rand.New(rand.NewSource(5))
	e := field.Start(field.Host{Surface: s, Scheduler: loop}, opts)
	if e == nil {
		t.Fatal("expected engine to start")
	}

	for i := 0; i < 3; i++ {
		loop.Tick()
	}
	e.Stop()

	painted := 0
	img := s.Image()
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			painted++
		}
	}
	if painted == 0 {
		t.Error("expected the field to paint some pixels")
	}

	path := filepath.Join(t.TempDir(), "frame.png")
	if err := s.WritePNG(path); err != nil {
		t.Fatalf("writing png: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("expected %v, got %v", img.Bounds(), decoded.Bounds())
	}
}

func TestStartOnNilSurfaceDoesNothing(t *testing.T) {
	var s *Surface
	loop := host.NewFrameLoop()
	e := field.Start(field.Host{Surface: s, Scheduler: loop}, field.DefaultOptions())
	if e != nil {
		t.Fatal("expected nil engine on a nil surface")
	}
	if loop.Pending() != 0 {
		t.Errorf("expected no frames requested, got %d", loop.Pending())
	}
	if loop.Tick() != 0 {
		t.Error("expected tick to run nothing")
	}
}
