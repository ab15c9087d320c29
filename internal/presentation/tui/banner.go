package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the interactive calculator.
func PrintBanner(version string) {
	p := termenv.ColorProfile()
	// Amber-to-teal gradient
	s1 := termenv.String("        _                         ").Foreground(p.Color("#fbbf24"))
	s2 := termenv.String("   __ _| |__   __ _  ___ _   _ ___").Foreground(p.Color("#f59e0b"))
	s3 := termenv.String("  / _` | '_ \\ / _` |/ __| | | / __|").Foreground(p.Color("#34d399"))
	s4 := termenv.String(" | (_| | |_) | (_| | (__| |_| \\__ \\").Foreground(p.Color("#2dd4bf"))
	s5 := termenv.String("  \\__,_|_.__/ \\__,_|\\___|\\__,_|___/").Foreground(p.Color("#22d3ee"))
	tag := termenv.String("  scientific calculator " + version).Foreground(p.Color("#94a3b8")).Italic()

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println(tag)
	fmt.Println()
}
