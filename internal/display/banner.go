package display

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)

// PrintBanner prints the ASCII art banner, styled when color is enabled.
func PrintBanner(color bool) {
	banner := `  ____                               _____                _
 / ___|__ _ _ __ ___   ___ _ __ __ _|_   _|__  _   _  ___| |__
| |   / _` + "`" + ` | '_ ` + "`" + ` _ \ / _ \ '__/ _` + "`" + ` | | |/ _ \| | | |/ __| '_ \
| |__| (_| | | | | | |  __/ | | (_| | | | (_) | |_| | (__| | | |
 \____\__,_|_| |_| |_|\___|_|  \__,_| |_|\___/ \__,_|\___|_| |_|
`
	if color {
		fmt.Fprintln(os.Stdout, bannerStyle.Render(banner))
		return
	}
	fmt.Fprintln(os.Stdout, banner)
}
