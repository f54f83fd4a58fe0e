package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs an ASCII art banner for Grafter.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Green-to-lime scheme, darkest at the top.
	s1 := termenv.String("   ____            __ _           ").Foreground(p.Color("#15803d"))
	s2 := termenv.String("  / ___|_ __ __ _ / _| |_ ___ _ __").Foreground(p.Color("#16a34a"))
	s3 := termenv.String(" | |  _| '__/ _` | |_| __/ _ \\ '__|").Foreground(p.Color("#22c55e"))
	s4 := termenv.String(" | |_| | | | (_| |  _| ||  __/ |  ").Foreground(p.Color("#4ade80"))
	s5 := termenv.String("  \\____|_|  \\__,_|_|  \\__\\___|_|  ").Foreground(p.Color("#86efac"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}

// Pass renders s in green, Fail in red, Accent in yellow.
func Pass(s string) string {
	p := termenv.ColorProfile()
	return termenv.String(s).Foreground(p.Color("#22c55e")).String()
}

func Fail(s string) string {
	p := termenv.ColorProfile()
	return termenv.String(s).Foreground(p.Color("#ef4444")).Bold().String()
}

func Accent(s string) string {
	p := termenv.ColorProfile()
	return termenv.String(s).Foreground(p.Color("#eab308")).String()
}
