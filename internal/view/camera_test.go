package view_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simlab/internal/view"
	"github.com/san-kum/simlab/internal/view/viewtest"
)

var _ = Describe("Camera", func() {
	var cam *view.Camera

	BeforeEach(func() {
		var err error
		cam, err = view.NewCamera(100)
		Expect(err).NotTo(HaveOccurred())
	})

	It("rejects a non-positive base view range", func() {
		_, err := view.NewCamera(0)
		Expect(errors.Is(err, view.ErrInvalidCamera)).To(BeTrue())
		_, err = view.NewCamera(math.NaN())
		Expect(errors.Is(err, view.ErrInvalidCamera)).To(BeTrue())
	})

	It("rejects inverted zoom bounds", func() {
		cam.ZoomMin, cam.ZoomMax = 5, 2
		Expect(cam.Validate()).To(MatchError(view.ErrInvalidCamera))
	})

	It("maps half the shorter side to the effective view range", func() {
		Expect(cam.Scale(800, 600)).To(BeNumerically("~", 3.0, 1e-12))
		cam.Zoom = 2
		Expect(cam.EffectiveViewRange()).To(Equal(50.0))
		Expect(cam.Scale(800, 600)).To(BeNumerically("~", 6.0, 1e-12))
	})

	DescribeTable("world origin lands on the screen centre",
		func(zoom, w, h float64) {
			cam.Zoom = zoom
			rec := viewtest.New(w, h)
			cam.Apply(rec)
			x, y := rec.Device(0, 0)
			Expect(x).To(Equal(w / 2))
			Expect(y).To(Equal(h / 2))
		},
		Entry("unit zoom", 1.0, 800.0, 600.0),
		Entry("zoomed in", 10.0, 800.0, 600.0),
		Entry("zoomed out", 0.1, 333.0, 1000.0),
		Entry("odd zoom", 3.7, 1.0, 1.0),
	)

	It("keeps the camera position at the screen centre when panned", func() {
		cam.X, cam.Y, cam.Zoom = 12.5, -7.25, 4.2
		x, y := cam.WorldToScreen(cam.X, cam.Y, 640, 480)
		Expect(x).To(Equal(320.0))
		Expect(y).To(Equal(240.0))

		rec := viewtest.New(640, 480)
		cam.Apply(rec)
		dx, dy := rec.Device(cam.X, cam.Y)
		Expect(dx).To(BeNumerically("~", 320, 1e-9))
		Expect(dy).To(BeNumerically("~", 240, 1e-9))
	})

	It("flips Y so world up is screen up", func() {
		_, y := cam.WorldToScreen(0, 10, 800, 600)
		Expect(y).To(BeNumerically("<", 300))
		Expect(cam.Transform(800, 600).Mirrored()).To(BeTrue())
	})

	It("round trips between world and screen", func() {
		cam.X, cam.Y, cam.Zoom = 3, -4, 2.5
		sx, sy := cam.WorldToScreen(17, 9, 1024, 768)
		wx, wy := cam.ScreenToWorld(sx, sy, 1024, 768)
		Expect(wx).To(BeNumerically("~", 17, 1e-9))
		Expect(wy).To(BeNumerically("~", 9, 1e-9))
	})

	It("drags the world along with the pointer", func() {
		before, _ := cam.ScreenToWorld(400, 300, 800, 600)
		cam.Pan(30, -15, 800, 600)
		after, _ := cam.ScreenToWorld(430, 285, 800, 600)
		Expect(after).To(BeNumerically("~", before, 1e-9))
		Expect(cam.X).To(BeNumerically("~", -10, 1e-9))
		Expect(cam.Y).To(BeNumerically("~", -5, 1e-9))
	})

	It("zooms exponentially and stays inside the bounds", func() {
		cam.ZoomBy(-view.WheelNotch)
		Expect(cam.Zoom).To(BeNumerically("~", math.Pow(1.001, 100), 1e-12))

		for range 1000 {
			cam.ZoomBy(-view.WheelNotch)
		}
		Expect(cam.Zoom).To(Equal(view.DefaultZoomMax))

		for range 1000 {
			cam.ZoomBy(view.WheelNotch)
		}
		Expect(cam.Zoom).To(Equal(view.DefaultZoomMin))
	})

	It("ignores a non-finite zoom result", func() {
		cam.ZoomBy(math.Inf(-1))
		Expect(cam.Zoom).To(Equal(1.0))
		cam.ZoomBy(math.NaN())
		Expect(cam.Zoom).To(Equal(1.0))
	})

	It("pans by held keys proportionally to the view range", func() {
		cam.PanByKeys(view.Keys{Up: true, Right: true}, 0.5)
		Expect(cam.X).To(Equal(50.0))
		Expect(cam.Y).To(Equal(50.0))
		cam.Zoom = 10
		cam.PanByKeys(view.Keys{Down: true, Left: true}, 1)
		Expect(cam.X).To(Equal(40.0))
		Expect(cam.Y).To(Equal(40.0))
	})

	It("resets to the origin at unit zoom", func() {
		cam.X, cam.Y, cam.Zoom = 1, 2, 3
		cam.Reset()
		Expect([]float64{cam.X, cam.Y, cam.Zoom}).To(Equal([]float64{0, 0, 1}))
	})
})
