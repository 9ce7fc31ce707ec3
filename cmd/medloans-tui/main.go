package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/medloans/internal/calculation"
	"github.com/rgehrsitz/medloans/internal/compare"
	"github.com/rgehrsitz/medloans/internal/config"
	"github.com/rgehrsitz/medloans/internal/tui"
)

func main() {
	// Get input file path (and optional reference override) from arguments
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmt.Println("Usage: medloans-tui <input-file> [reference-file]")
		os.Exit(1)
	}
	inputPath := os.Args[1]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		fmt.Printf("Error: Input file not found: %s\n", inputPath)
		os.Exit(1)
	}

	referencePath := ""
	if len(os.Args) == 3 {
		referencePath = os.Args[2]
	}
	ref, err := config.LoadReferenceData(referencePath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	engine := compare.NewCompareEngine(calculation.NewCalculationEngineWithReference(ref))
	model := tui.NewModel(inputPath, engine)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
