package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"photosnap/internal/api"
	"photosnap/internal/artifact"
	"photosnap/internal/ui"
)

func main() {
	server := flag.String("server", defaultServer(), "photosnapd base URL")
	flag.Parse()

	store, err := artifact.NewStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: image saving disabled: %v\n", err)
		store = nil
	}

	model := ui.NewAppModel(api.NewClient(*server), store)
	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func defaultServer() string {
	if url := os.Getenv("PHOTOSNAP_SERVER"); url != "" {
		return url
	}
	return "http://localhost:8080"
}
