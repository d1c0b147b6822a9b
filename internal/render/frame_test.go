package render

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestRenderFrameColumnIndependence(t *testing.T) {
	const width, height = 97, 120
	rc := newRaycaster(t)
	hm, cm := randomMaps(t, 128, 42)
	cam := newCamera(t, mgl64.Vec3{64, 80, 64}, width, height)
	cam.SetYaw(-2.5)

	sequential := NewFrameRenderer(rc, 1)
	want := make([]byte, FrameSize(width, height))
	Fill(want, sentinel)
	if err := sequential.RenderFrame(cam, hm, cm, want); err != nil {
		t.Fatalf("sequential RenderFrame: %v", err)
	}

	// reverse column order by hand
	reversed := make([]byte, len(want))
	Fill(reversed, sentinel)
	stride := height * BytesPerPixel
	for col := width - 1; col >= 0; col-- {
		rc.CastColumn(cam, hm, cm, col, reversed[col*stride:(col+1)*stride])
	}
	if !bytes.Equal(want, reversed) {
		t.Error("reversed column order differs from sequential render")
	}

	for _, workers := range []int{2, 3, 8, 200} {
		parallel := NewFrameRenderer(rc, workers)
		got := make([]byte, len(want))
		Fill(got, sentinel)
		if err := parallel.RenderFrame(cam, hm, cm, got); err != nil {
			t.Fatalf("workers=%d RenderFrame: %v", workers, err)
		}
		parallel.Shutdown()
		if !bytes.Equal(want, got) {
			t.Errorf("workers=%d output differs from sequential render", workers)
		}
	}
}

func TestRenderFrameRepeatedFramesWithPool(t *testing.T) {
	const width, height = 40, 60
	rc := newRaycaster(t)
	hm, cm := randomMaps(t, 32, 7)
	cam := newCamera(t, mgl64.Vec3{16, 70, 16}, width, height)

	fr := NewFrameRenderer(rc, 4)
	defer fr.Shutdown()
	if fr.Workers() != 4 {
		t.Errorf("Workers() = %d, want 4", fr.Workers())
	}

	ref := NewFrameRenderer(rc, 1)
	buf := make([]byte, FrameSize(width, height))
	want := make([]byte, len(buf))
	for frame := range 10 {
		cam.Eye = mgl64.Vec3{16 + float64(frame)*3, 70, 16 - float64(frame)}
		cam.SetYaw(float64(frame) * 0.2)

		Fill(buf, sentinel)
		Fill(want, sentinel)
		if err := fr.RenderFrame(cam, hm, cm, buf); err != nil {
			t.Fatalf("frame %d: %v", frame, err)
		}
		if err := ref.RenderFrame(cam, hm, cm, want); err != nil {
			t.Fatalf("frame %d reference: %v", frame, err)
		}
		if !bytes.Equal(buf, want) {
			t.Fatalf("frame %d differs from sequential render", frame)
		}
	}
}

func TestRenderFrameSizeMismatch(t *testing.T) {
	rc := newRaycaster(t)
	cam := newCamera(t, mgl64.Vec3{}, 10, 10)
	m := uniformMap(t, 0, 0, 0)

	for _, workers := range []int{1, 4} {
		fr := NewFrameRenderer(rc, workers)
		err := fr.RenderFrame(cam, m, m, make([]byte, FrameSize(10, 10)-1))
		if !errors.Is(err, ErrFrameSize) {
			t.Errorf("workers=%d: expected ErrFrameSize, got %v", workers, err)
		}
		fr.Shutdown()
	}
}

func TestRenderFrameAfterShutdown(t *testing.T) {
	rc := newRaycaster(t)
	cam := newCamera(t, mgl64.Vec3{}, 10, 10)
	m := uniformMap(t, 0, 0, 0)

	fr := NewFrameRenderer(rc, 2)
	fr.Shutdown()
	fr.Shutdown()

	if err := fr.RenderFrame(cam, m, m, make([]byte, FrameSize(10, 10))); err == nil {
		t.Error("expected error rendering on a shut down pool")
	}
}

func TestFillAndAt(t *testing.T) {
	buf := make([]byte, FrameSize(3, 5))
	px := Pixel{B: 1, G: 2, R: 3, A: 4}
	Fill(buf, px)
	for col := range 3 {
		for row := range 5 {
			if got := At(buf, 5, col, row); got != px {
				t.Fatalf("At(%d,%d) = %+v, want %+v", col, row, got, px)
			}
		}
	}

	// column major: column 1 row 0 follows column 0 row 4
	buf[(1*5+0)*BytesPerPixel] = 99
	if At(buf, 5, 1, 0).B != 99 || At(buf, 5, 0, 4).B != 1 {
		t.Error("At does not index column major")
	}
}

func BenchmarkRenderFrameSequential(b *testing.B) {
	benchmarkRenderFrame(b, 1)
}

func BenchmarkRenderFrameParallel(b *testing.B) {
	benchmarkRenderFrame(b, 8)
}

func benchmarkRenderFrame(b *testing.B, workers int) {
	rc := newRaycaster(b)
	hm, cm := randomMaps(b, 256, 1)
	cam := newCamera(b, mgl64.Vec3{127, 90, 127}, 640, 400)
	fr := NewFrameRenderer(rc, workers)
	defer fr.Shutdown()
	buf := make([]byte, FrameSize(640, 400))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Fill(buf, Pixel{})
		if err := fr.RenderFrame(cam, hm, cm, buf); err != nil {
			b.Fatal(err)
		}
	}
}
