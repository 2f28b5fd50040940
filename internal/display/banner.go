package display

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/framereel/framereel/internal/term"
)

// PrintBanner prints the ASCII art banner; magenta when colors are enabled.
func PrintBanner() {
	banner := ` _____                        ____           _
|  ___| __ __ _ _ __ ___   __|  _ \ ___  ___| |
| |_ | '__/ _` + "`" + ` | '_ ` + "`" + ` _ \ / _ \ |_) / _ \/ _ \ |
|  _|| | | (_| | | | | | |  __/  _ <  __/  __/ |
|_|  |_|  \__,_|_| |_| |_|\___|_| \_\___|\___|_|
`
	if term.Enabled() {
		c := color.New(color.FgHiMagenta, color.Bold)
		c.EnableColor()
		c.Fprint(os.Stdout, banner)
		fmt.Fprintln(os.Stdout)
		return
	}
	fmt.Fprint(os.Stdout, banner)
	fmt.Fprintln(os.Stdout)
}
