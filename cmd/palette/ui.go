package main

import (
	"bytes"
	"image/color"
	"sort"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/Open-Games-Studios-OGS/rpg-tactical-fantasy-game/palette"
	"github.com/Open-Games-Studios-OGS/rpg-tactical-fantasy-game/tileset"
)

type filterOption struct {
	Label  string
	Filter palette.Filter // nil clears the filter
}

func loadFontFace() text.Face {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	return &text.GoTextFace{Source: s, Size: 14}
}

// buildPaletteUI builds the right-hand sidebar: a tileset list on top and a
// filter list below it.
func buildPaletteUI(
	fontFace text.Face,
	tilesetNames []string,
	categories []string,
	onTilesetSelected func(name string),
	onFilterSelected func(f palette.Filter),
) *ebitenui.UI {
	ui := &ebitenui.UI{}
	ui.PrimaryTheme = newPaletteTheme(&fontFace)

	sidebar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(sidebarWidth, 400),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(color.RGBA{40, 40, 40, 255})),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
			),
		),
	)

	tilesetEntries := make([]any, 0, len(tilesetNames))
	for _, name := range tilesetNames {
		tilesetEntries = append(tilesetEntries, name)
	}
	tilesetList := widget.NewList(
		widget.ListOpts.Entries(tilesetEntries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if name, ok := e.(string); ok {
				return name
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if name, ok := args.Entry.(string); ok && onTilesetSelected != nil {
				onTilesetSelected(name)
			}
		}),
	)
	sidebar.AddChild(tilesetList)

	filterEntries := make([]any, 0, len(categories)+3)
	filterEntries = append(filterEntries,
		filterOption{Label: "All tiles"},
		filterOption{Label: "Animated", Filter: palette.Animated()},
		filterOption{Label: "With properties", Filter: palette.HasProperties()},
	)
	for _, cat := range categories {
		filterEntries = append(filterEntries, filterOption{
			Label:  "Category: " + cat,
			Filter: palette.Category(cat),
		})
	}
	filterList := widget.NewList(
		widget.ListOpts.Entries(filterEntries),
		widget.ListOpts.EntryLabelFunc(func(e any) string {
			if opt, ok := e.(filterOption); ok {
				return opt.Label
			}
			return ""
		}),
		widget.ListOpts.EntrySelectedHandler(func(args *widget.ListEntrySelectedEventArgs) {
			if opt, ok := args.Entry.(filterOption); ok && onFilterSelected != nil {
				onFilterSelected(opt.Filter)
			}
		}),
	)
	sidebar.AddChild(filterList)

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	sidebar.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionEnd,
		VerticalPosition:   widget.AnchorLayoutPositionCenter,
		StretchVertical:    true,
	}
	root.AddChild(sidebar)
	ui.Container = root
	return ui
}

// categoriesFromCache collects the distinct category names tagged onto any
// cached tile, sorted.
func categoriesFromCache(cache tileset.Cache) []string {
	seen := make(map[string]struct{})
	for _, data := range cache {
		for _, tile := range data.Tiles {
			value := tile.Properties["category"]
			if value == "" {
				continue
			}
			for _, part := range strings.Split(value, ",") {
				if part = strings.TrimSpace(part); part != "" {
					seen[part] = struct{}{}
				}
			}
		}
	}
	cats := make([]string, 0, len(seen))
	for cat := range seen {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}
