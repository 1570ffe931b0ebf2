package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/careerlens/internal/ui/theme"
)

const bannerArt = `
  ██████╗ █████╗ ██████╗ ███████╗███████╗██████╗
 ██╔════╝██╔══██╗██╔══██╗██╔════╝██╔════╝██╔══██╗
 ██║     ███████║██████╔╝█████╗  █████╗  ██████╔╝
 ██║     ██╔══██║██╔══██╗██╔══╝  ██╔══╝  ██╔══██╗
 ╚██████╗██║  ██║██║  ██║███████╗███████╗██║  ██║
  ╚═════╝╚═╝  ╚═╝╚═╝  ╚═╝╚══════╝╚══════╝╚═╝  ╚═╝
        ██╗     ███████╗███╗   ██╗███████╗
        ██║     ██╔════╝████╗  ██║██╔════╝
        ██║     █████╗  ██╔██╗ ██║███████╗
        ██║     ██╔══╝  ██║╚██╗██║╚════██║
        ███████╗███████╗██║ ╚████║███████║
        ╚══════╝╚══════╝╚═╝  ╚═══╝╚══════╝`

const bannerCompact = "C A R E E R L E N S"

// RenderBanner returns the banner styled in the primary color. Terminals
// narrower than 54 columns get the compact form.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 54 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
