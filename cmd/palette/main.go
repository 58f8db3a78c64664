// palette is the tileset-browsing panel for the level editor. It discovers
// .tsx tilesets, overlays the editor metadata side-file, and opens a paged,
// filterable tile palette with drag selection.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.design/x/clipboard"

	"github.com/Open-Games-Studios-OGS/rpg-tactical-fantasy-game/palette"
	"github.com/Open-Games-Studios-OGS/rpg-tactical-fantasy-game/tileset"
)

const sidebarWidth = 220

type Game struct {
	cfg          Config
	roots        []string
	metadataPath string

	model   *palette.Model
	panel   *PalettePanel
	ui      *ebitenui.UI
	face    text.Face
	watcher *tileset.Watcher

	clipboardOK bool
	needReload  bool
	width       int
	height      int
}

func (g *Game) Update() error {
	if g.watcher != nil {
		select {
		case path, ok := <-g.watcher.Events:
			if ok {
				log.Printf("Change detected: %s", path)
				g.needReload = true
			}
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("Watcher error: %v", err)
			}
		default:
		}
	}
	if g.needReload {
		g.needReload = false
		g.reload()
	}

	g.ui.Update()
	g.panel.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyC) && g.clipboardOK {
		if tile := g.panel.Selected(); tile != nil {
			ref := fmt.Sprintf("%s:%d", tile.Tileset, tile.LocalID)
			clipboard.Write(clipboard.FmtText, []byte(ref))
			log.Printf("Copied %s", ref)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(panelBgColor)
	g.panel.Draw(screen)
	g.ui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

func (g *Game) onTilesetSelected(name string) {
	if err := g.model.SetTileset(name); err != nil {
		log.Printf("Select tileset: %v", err)
	}
}

func (g *Game) onFilterSelected(f palette.Filter) {
	g.model.SetFilter(f)
}

// reload re-discovers tilesets and re-applies metadata. The old cache stays
// in place when anything fails.
func (g *Game) reload() {
	cache, err := loadCache(g.roots, g.metadataPath)
	if err != nil {
		log.Printf("Reload failed, keeping previous tilesets: %v", err)
		return
	}
	g.model.SetCache(cache)
	if g.model.TilesetName() == "" {
		if names := g.model.TilesetNames(); len(names) > 0 {
			if err := g.model.SetTileset(names[0]); err != nil {
				log.Printf("Select tileset: %v", err)
			}
		}
	}
	g.panel.ResetImages()
	g.ui = buildPaletteUI(g.face, g.model.TilesetNames(), categoriesFromCache(cache),
		g.onTilesetSelected, g.onFilterSelected)
	log.Printf("Reloaded %d tilesets", len(cache))
}

func loadCache(roots []string, metadataPath string) (tileset.Cache, error) {
	var paths []string
	for _, root := range roots {
		found, err := tileset.Discover(root)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no .tsx tilesets found under: %s", strings.Join(roots, ", "))
	}
	cache, err := tileset.LoadAll(paths)
	if err != nil {
		return nil, err
	}
	md, err := tileset.LoadMetadata(metadataPath)
	if err != nil {
		return nil, err
	}
	md.Apply(cache)
	return cache, nil
}

func main() {
	configPath := flag.String("config", "palette.yaml", "Path to the palette config file")
	tilesetDirs := flag.String("tilesets", "", "Comma-separated tileset search roots (overrides config)")
	metadataPath := flag.String("metadata", "", "Path to the tileset metadata side-file (overrides config)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	roots := cfg.SearchRoots
	if *tilesetDirs != "" {
		roots = strings.Split(*tilesetDirs, ",")
	}
	metadata := cfg.Metadata
	if *metadataPath != "" {
		metadata = *metadataPath
	}

	cache, err := loadCache(roots, metadata)
	if err != nil {
		log.Fatalf("Failed to load tilesets: %v", err)
	}
	log.Printf("Loaded tilesets: %s", strings.Join(cache.Names(), ", "))

	model := palette.NewModel(cache, cfg.PageSize)
	if names := model.TilesetNames(); len(names) > 0 {
		if err := model.SetTileset(names[0]); err != nil {
			log.Fatalf("Failed to select tileset: %v", err)
		}
	}

	panelWidth := 2*cfg.Padding + cfg.GridCols*(cfg.TileRenderSize+cfg.Gutter) - cfg.Gutter
	panelHeight := 2*cfg.Padding + barHeight + 2*cfg.Gutter + buttonHeight +
		cfg.GridRows*(cfg.TileRenderSize+cfg.Gutter) - cfg.Gutter
	panelRect := image.Rect(10, 10, 10+panelWidth, 10+panelHeight)

	face := loadFontFace()
	g := &Game{
		cfg:          cfg,
		roots:        roots,
		metadataPath: metadata,
		model:        model,
		face:         face,
		width:        panelRect.Max.X + 10 + sidebarWidth,
		height:       panelRect.Max.Y + 10,
	}
	g.panel = NewPalettePanel(model, panelRect, face, cfg, func() {
		// The sidebar is always visible; the bar click is a no-op hook kept
		// for a future collapsible layout.
	})
	g.ui = buildPaletteUI(face, model.TilesetNames(), categoriesFromCache(cache),
		g.onTilesetSelected, g.onFilterSelected)

	var watchDirs []string
	for _, root := range roots {
		if _, err := os.Stat(root); err == nil {
			watchDirs = append(watchDirs, root)
		}
	}
	if len(watchDirs) > 0 {
		watcher, err := tileset.NewWatcher(watchDirs...)
		if err != nil {
			log.Printf("Tileset watcher disabled: %v", err)
		} else {
			g.watcher = watcher
			defer watcher.Close()
		}
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("Clipboard disabled: %v", err)
	} else {
		g.clipboardOK = true
	}

	ebiten.SetWindowSize(g.width, g.height)
	ebiten.SetWindowTitle("Tile Palette")
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Palette exited: %v", err)
	}
}
