package window

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// variantTheme pins the default theme to one variant.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (pinned variantTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return pinned.Theme.Color(name, pinned.variant)
}

func themeFor(useSystem, dark bool) fyne.Theme {
	if useSystem {
		return theme.DefaultTheme()
	}
	if dark {
		return variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantDark}
	}
	return variantTheme{Theme: theme.DefaultTheme(), variant: theme.VariantLight}
}
