package render_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/recart/internal/expr"
	"github.com/san-kum/recart/internal/render"
)

func TestRenderSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Render Suite")
}

var _ = Describe("Renderer", func() {
	var (
		ctx  context.Context
		sink *render.MemorySink
	)

	BeforeEach(func() {
		ctx = context.Background()
		sink = &render.MemorySink{}
	})

	Context("with a 4x4 grid, one frame and depth 1", func() {
		It("emits a single buffer of 16 pixels", func() {
			r := render.NewRandom(expr.NewSeededBuilder(0),
				render.Config{Width: 4, Height: 4, Frames: 1, Depth: 1})

			n, err := r.Render(ctx, sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(1))
			Expect(sink.Frames).To(HaveLen(1))
			Expect(sink.Frames[0].Pix).To(HaveLen(16))
		})
	})

	DescribeTable("emits frame_count frames in increasing order",
		func(frames, workers int) {
			r := render.NewRandom(expr.NewSeededBuilder(int64(frames)),
				render.Config{Width: 12, Height: 12, Frames: frames, Depth: 4, Workers: workers})

			n, err := r.Render(ctx, sink)
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(frames))
			Expect(sink.Frames).To(HaveLen(frames))
			for i, f := range sink.Frames {
				Expect(f.Index).To(Equal(i))
				if i > 0 {
					Expect(f.T).To(BeNumerically(">", sink.Frames[i-1].T))
				}
			}
		},
		Entry("single frame", 1, 1),
		Entry("several frames", 7, 1),
		Entry("several frames, parallel rows", 7, 3),
	)

	It("spans t over [-1, 1) across the frames", func() {
		r := render.NewRandom(expr.NewSeededBuilder(1),
			render.Config{Width: 2, Height: 2, Frames: 4, Depth: 2})

		_, err := r.Render(ctx, sink)
		Expect(err).NotTo(HaveOccurred())
		ts := make([]float64, 0, len(sink.Frames))
		for _, f := range sink.Frames {
			ts = append(ts, f.T)
		}
		Expect(ts).To(Equal([]float64{-1, -0.5, 0, 0.5}))
	})

	It("treats a zero-sized grid as a no-op", func() {
		r := render.NewRandom(expr.NewSeededBuilder(1),
			render.Config{Width: 0, Height: 0, Frames: 0, Depth: 3})

		n, err := r.Render(ctx, sink)
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeZero())
		Expect(sink.Frames).To(BeEmpty())
	})

	It("renders the same pixels for the same seed", func() {
		cfg := render.Config{Width: 9, Height: 7, Frames: 2, Depth: 5}
		a, b := &render.MemorySink{}, &render.MemorySink{}

		_, err := render.NewRandom(expr.NewSeededBuilder(77), cfg).Render(ctx, a)
		Expect(err).NotTo(HaveOccurred())
		_, err = render.NewRandom(expr.NewSeededBuilder(77), cfg).Render(ctx, b)
		Expect(err).NotTo(HaveOccurred())

		for k := range a.Frames {
			Expect(a.Frames[k].Pix).To(Equal(b.Frames[k].Pix))
		}
	})
})
