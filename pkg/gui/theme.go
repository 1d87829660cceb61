package gui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// MemoryTheme is a light theme that matches the blue accents of the web page
type MemoryTheme struct{}

// Color returns the color for the specified theme color name
func (t MemoryTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	case theme.ColorNameButton:
		return color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}
	case theme.ColorNameInputBackground:
		return color.NRGBA{R: 0xf3, G: 0xf4, B: 0xf6, A: 0xff}
	case theme.ColorNamePrimary, theme.ColorNameFocus:
		return BarColor()
	case theme.ColorNameSeparator:
		return color.NRGBA{R: 0xd1, G: 0xd5, B: 0xdb, A: 0xff}
	default:
		return theme.DefaultTheme().Color(name, theme.VariantLight)
	}
}

// Font returns the font resource for the specified text style
func (t MemoryTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns the icon resource for the specified icon name
func (t MemoryTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns the size value for the specified size name
func (t MemoryTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameText:
		return 14
	case theme.SizeNameHeadingText:
		return 22
	case theme.SizeNameSubHeadingText:
		return 17
	default:
		return theme.DefaultTheme().Size(name)
	}
}

// BarColor is the fill used by chart bars and lane balls
func BarColor() color.Color {
	return color.NRGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
}

// LaneColor is the track behind the animation
func LaneColor() color.Color {
	return color.NRGBA{R: 0xe5, G: 0xe7, B: 0xeb, A: 0xff}
}
