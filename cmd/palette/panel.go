package main

import (
	"fmt"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/Open-Games-Studios-OGS/rpg-tactical-fantasy-game/palette"
	"github.com/Open-Games-Studios-OGS/rpg-tactical-fantasy-game/tileset"
)

// DragPayload is the in-flight selection started by clicking a tile. It is
// cleared when the mouse button is released.
type DragPayload struct {
	Tileset   string
	LocalID   int
	Image     *ebiten.Image
	StampMode bool
}

var (
	panelBgColor     = color.RGBA{30, 30, 30, 255}
	panelGridColor   = color.RGBA{45, 45, 45, 255}
	panelBorderColor = color.RGBA{70, 70, 70, 255}
	panelTextColor   = color.RGBA{220, 220, 220, 255}
	selectedColor    = color.RGBA{200, 200, 50, 255}
	hoveredColor     = color.RGBA{150, 150, 150, 255}
)

const (
	barHeight    = 24
	buttonWidth  = 50
	buttonHeight = 24
)

// PalettePanel is the direct-mode tile browsing panel: a paged grid of tile
// cells with a tileset bar on top and paging buttons on the bottom.
type PalettePanel struct {
	model *palette.Model
	rect  image.Rectangle
	cfg   Config
	face  text.Face

	onTilesetMenu func()

	selected *tileset.TileEntry
	hovered  int // page-local cell index, -1 when none
	drag     *DragPayload

	pixel  *ebiten.Image
	images map[*tileset.TileEntry]*ebiten.Image

	prevButton    image.Rectangle
	nextButton    image.Rectangle
	tilesetButton image.Rectangle
}

func NewPalettePanel(model *palette.Model, rect image.Rectangle, face text.Face, cfg Config, onTilesetMenu func()) *PalettePanel {
	p := &PalettePanel{
		model:   model,
		rect:    rect,
		cfg:     cfg,
		face:    face,
		hovered: -1,
		images:  make(map[*tileset.TileEntry]*ebiten.Image),

		onTilesetMenu: onTilesetMenu,
	}
	p.tilesetButton = image.Rect(
		rect.Min.X+cfg.Padding,
		rect.Min.Y+cfg.Padding,
		rect.Max.X-cfg.Padding,
		rect.Min.Y+cfg.Padding+barHeight,
	)
	p.prevButton = image.Rect(
		rect.Min.X+cfg.Padding,
		rect.Max.Y-cfg.Padding-buttonHeight,
		rect.Min.X+cfg.Padding+buttonWidth,
		rect.Max.Y-cfg.Padding,
	)
	p.nextButton = image.Rect(
		rect.Max.X-cfg.Padding-buttonWidth,
		rect.Max.Y-cfg.Padding-buttonHeight,
		rect.Max.X-cfg.Padding,
		rect.Max.Y-cfg.Padding,
	)
	return p
}

// ResetImages drops the converted tile images, e.g. after a cache reload.
func (p *PalettePanel) ResetImages() {
	p.images = make(map[*tileset.TileEntry]*ebiten.Image)
	p.selected = nil
	p.drag = nil
}

// Selected returns the currently selected tile, nil if none.
func (p *PalettePanel) Selected() *tileset.TileEntry {
	return p.selected
}

// Drag returns the active drag payload, nil if none.
func (p *PalettePanel) Drag() *DragPayload {
	return p.drag
}

func (p *PalettePanel) gridOriginY() int {
	return p.tilesetButton.Max.Y + p.cfg.Gutter
}

// tileIndexAt returns the page-local cell index under (x, y), or -1.
func (p *PalettePanel) tileIndexAt(x, y int) int {
	originX := p.rect.Min.X + p.cfg.Padding
	originY := p.gridOriginY()
	size := p.cfg.TileRenderSize
	gutter := p.cfg.Gutter
	for row := 0; row < p.cfg.GridRows; row++ {
		for col := 0; col < p.cfg.GridCols; col++ {
			cx := originX + col*(size+gutter)
			cy := originY + row*(size+gutter)
			cell := image.Rect(cx, cy, cx+size, cy+size)
			if image.Pt(x, y).In(cell) {
				return row*p.cfg.GridCols + col
			}
		}
	}
	return -1
}

func (p *PalettePanel) Update() {
	mx, my := ebiten.CursorPosition()
	p.hovered = p.tileIndexAt(mx, my)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		switch {
		case image.Pt(mx, my).In(p.tilesetButton):
			if p.onTilesetMenu != nil {
				p.onTilesetMenu()
			}
		case image.Pt(mx, my).In(p.prevButton):
			p.model.PrevPage()
		case image.Pt(mx, my).In(p.nextButton):
			p.model.NextPage()
		default:
			if idx := p.tileIndexAt(mx, my); idx >= 0 {
				tiles := p.model.PageTiles()
				if idx < len(tiles) {
					tile := tiles[idx]
					p.selected = tile
					stamp := ebiten.IsKeyPressed(ebiten.KeyShift)
					p.drag = &DragPayload{
						Tileset:   tile.Tileset,
						LocalID:   tile.LocalID,
						Image:     p.tileImage(tile),
						StampMode: stamp,
					}
				}
			}
		}
	}

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) ||
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonRight) {
		p.drag = nil
	}

	if image.Pt(mx, my).In(p.rect) {
		if _, wy := ebiten.Wheel(); wy > 0 {
			p.model.PrevPage()
		} else if wy < 0 {
			p.model.NextPage()
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyPageUp) {
		p.model.PrevPage()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyPageDown) {
		p.model.NextPage()
	}
}

func (p *PalettePanel) Draw(screen *ebiten.Image) {
	p.fillRect(screen, p.rect, panelBgColor)
	p.strokeRect(screen, p.rect, panelBorderColor)

	p.drawTilesetBar(screen)
	p.drawGrid(screen)
	p.drawPaging(screen)
	p.drawDragGhost(screen)
}

func (p *PalettePanel) drawTilesetBar(screen *ebiten.Image) {
	p.fillRect(screen, p.tilesetButton, panelGridColor)
	p.strokeRect(screen, p.tilesetButton, panelBorderColor)
	name := p.model.TilesetName()
	if name == "" {
		name = "Select tileset"
	}
	p.drawText(screen, name,
		float64(p.tilesetButton.Min.X+6),
		float64(p.tilesetButton.Min.Y+barHeight/2),
		false)
}

func (p *PalettePanel) drawGrid(screen *ebiten.Image) {
	tiles := p.model.PageTiles()
	size := p.cfg.TileRenderSize
	gutter := p.cfg.Gutter
	originX := p.rect.Min.X + p.cfg.Padding
	originY := p.gridOriginY()

	for idx := 0; idx < p.cfg.GridRows*p.cfg.GridCols; idx++ {
		col := idx % p.cfg.GridCols
		row := idx / p.cfg.GridCols
		x := originX + col*(size+gutter)
		y := originY + row*(size+gutter)
		cell := image.Rect(x, y, x+size, y+size)
		p.fillRect(screen, cell, panelGridColor)
		p.strokeRect(screen, cell, panelBorderColor)

		if idx >= len(tiles) {
			continue
		}
		tile := tiles[idx]
		img := p.tileImage(tile)
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(
			float64(size)/float64(img.Bounds().Dx()),
			float64(size)/float64(img.Bounds().Dy()),
		)
		op.GeoM.Translate(float64(x), float64(y))
		op.Filter = ebiten.FilterNearest
		screen.DrawImage(img, op)

		if p.selected != nil && tile.LocalID == p.selected.LocalID && tile.Tileset == p.selected.Tileset {
			p.strokeRectWidth(screen, cell, selectedColor, 2)
		} else if p.hovered == idx {
			p.strokeRect(screen, cell, hoveredColor)
		}
	}
}

func (p *PalettePanel) drawPaging(screen *ebiten.Image) {
	p.fillRect(screen, p.prevButton, panelGridColor)
	p.strokeRect(screen, p.prevButton, panelBorderColor)
	p.drawText(screen, "<",
		float64(p.prevButton.Min.X+p.prevButton.Dx()/2),
		float64(p.prevButton.Min.Y+p.prevButton.Dy()/2),
		true)

	p.fillRect(screen, p.nextButton, panelGridColor)
	p.strokeRect(screen, p.nextButton, panelBorderColor)
	p.drawText(screen, ">",
		float64(p.nextButton.Min.X+p.nextButton.Dx()/2),
		float64(p.nextButton.Min.Y+p.nextButton.Dy()/2),
		true)

	pages := p.model.PageCount()
	if pages < 1 {
		pages = 1
	}
	label := fmt.Sprintf("%d/%d", p.model.PageIndex()+1, pages)
	p.drawText(screen, label,
		float64(p.rect.Min.X+p.rect.Dx()/2),
		float64(p.prevButton.Min.Y+p.prevButton.Dy()/2),
		true)
}

func (p *PalettePanel) drawDragGhost(screen *ebiten.Image) {
	if p.drag == nil || p.drag.Image == nil {
		return
	}
	mx, my := ebiten.CursorPosition()
	size := p.cfg.TileRenderSize
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(
		float64(size)/float64(p.drag.Image.Bounds().Dx()),
		float64(size)/float64(p.drag.Image.Bounds().Dy()),
	)
	op.GeoM.Translate(float64(mx-size/2), float64(my-size/2))
	op.ColorScale.ScaleAlpha(0.7)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(p.drag.Image, op)
}

func (p *PalettePanel) tileImage(tile *tileset.TileEntry) *ebiten.Image {
	if img, ok := p.images[tile]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(tile.Image)
	p.images[tile] = img
	return img
}

func (p *PalettePanel) fillRect(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	if p.pixel == nil {
		p.pixel = ebiten.NewImage(1, 1)
		p.pixel.Fill(color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.Dx()), float64(r.Dy()))
	op.GeoM.Translate(float64(r.Min.X), float64(r.Min.Y))
	op.ColorScale.ScaleWithColor(c)
	dst.DrawImage(p.pixel, op)
}

func (p *PalettePanel) strokeRect(dst *ebiten.Image, r image.Rectangle, c color.Color) {
	p.strokeRectWidth(dst, r, c, 1)
}

func (p *PalettePanel) strokeRectWidth(dst *ebiten.Image, r image.Rectangle, c color.Color, w int) {
	p.fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+w), c)
	p.fillRect(dst, image.Rect(r.Min.X, r.Max.Y-w, r.Max.X, r.Max.Y), c)
	p.fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+w, r.Max.Y), c)
	p.fillRect(dst, image.Rect(r.Max.X-w, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// drawText draws a single line vertically centered on y. When centerX is
// set, x is the horizontal center instead of the left edge.
func (p *PalettePanel) drawText(dst *ebiten.Image, s string, x, y float64, centerX bool) {
	w, h := text.Measure(s, p.face, 0)
	op := &text.DrawOptions{}
	if centerX {
		x -= w / 2
	}
	op.GeoM.Translate(x, y-h/2)
	op.ColorScale.ScaleWithColor(panelTextColor)
	text.Draw(dst, s, p.face, op)
}
