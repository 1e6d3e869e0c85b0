package view_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/simlab/internal/view"
)

var _ = Describe("Dispatcher", func() {
	var (
		d   *view.Dispatcher
		cam *view.Camera
	)

	BeforeEach(func() {
		d = &view.Dispatcher{}
		cam, _ = view.NewCamera(100)
		panel := view.Rect{X: 0, Y: 0, W: 200, H: 300}
		d.Subscribe("panel", view.RegionGuard(func() view.Rect { return panel }))
		d.Subscribe("camera", view.CameraHandler(cam, func() (float64, float64) { return 800, 600 }))
	})

	It("keeps subscribers in registration order", func() {
		Expect(d.Subscribers()).To(Equal([]string{"panel", "camera"}))
	})

	It("suppresses drags over the panel", func() {
		Expect(d.Dispatch(view.DragEvent{X: 50, Y: 50, DX: 30, DY: 0})).To(BeTrue())
		Expect(cam.X).To(Equal(0.0))
	})

	It("pans on drags outside the panel", func() {
		d.Dispatch(view.DragEvent{X: 500, Y: 400, DX: 30, DY: 0})
		Expect(cam.X).To(BeNumerically("~", -10, 1e-9))
	})

	It("zooms on wheel outside the panel", func() {
		d.Dispatch(view.WheelEvent{X: 500, Y: 400, Delta: -view.WheelNotch})
		Expect(cam.Zoom).To(BeNumerically(">", 1))
	})

	It("passes keys through unconsumed", func() {
		Expect(d.Dispatch(view.KeyEvent{Key: "x"})).To(BeFalse())
	})

	It("drops a subscriber by name", func() {
		d.Unsubscribe("panel")
		d.Dispatch(view.DragEvent{X: 50, Y: 50, DX: 30})
		Expect(cam.X).NotTo(Equal(0.0))
	})
})
