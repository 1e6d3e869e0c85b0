package viz

import (
	"image"
	"image/color"
	"image/color/palette"
	"image/gif"
	"os"
)

const (
	charW, charH = 8, 16
	// frameDelay is in hundredths of a second.
	frameDelay = 2
)

// Recording collects canvas frames for a GIF.
type Recording struct {
	frames []*image.Paletted
}

func NewRecording() *Recording { return &Recording{} }

func (r *Recording) Len() int { return len(r.frames) }

// Capture rasterises the canvas dots, each cell in its own color. Text is
// not rasterised.
func (r *Recording) Capture(c *Canvas) {
	imgW, imgH := c.Width*charW, c.Height*charH
	img := image.NewPaletted(image.Rect(0, 0, imgW, imgH), palette.Plan9)
	bg := uint8(img.Palette.Index(c.Background))
	for i := range img.Pix {
		img.Pix[i] = bg
	}
	dotW, dotH := charW/2, charH/4
	for row := 0; row < c.Height; row++ {
		for col := 0; col < c.Width; col++ {
			pattern := int(c.Grid[row][col] - blank)
			if pattern == 0 {
				continue
			}
			fg := uint8(img.Palette.Index(opaque(c.Colors[row][col])))
			baseX, baseY := col*charW, row*charH
			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] == 0 {
						continue
					}
					for py := 0; py < dotH; py++ {
						for px := 0; px < dotW; px++ {
							img.SetColorIndex(baseX+dx*dotW+px, baseY+dy*dotH+py, fg)
						}
					}
				}
			}
		}
	}
	r.frames = append(r.frames, img)
}

func opaque(c color.RGBA) color.RGBA {
	c.A = 255
	return c
}

// Save writes the frames as a looping GIF. An empty recording writes
// nothing.
func (r *Recording) Save(path string) error {
	if len(r.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, frameDelay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gif.EncodeAll(f, &anim); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
