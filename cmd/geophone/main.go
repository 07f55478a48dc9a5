// Command geophone enriches spreadsheet contact lists with the country of
// origin of their phone numbers, then lets the operator filter, sort,
// annotate and re-export the result from a terminal UI.
//
// Usage:
//
//	geophone [file.xlsx]
//
// When a file is given it is loaded at startup; otherwise press 'o' inside
// the UI to open one.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/abelbrown/geophone/internal/config"
	"github.com/abelbrown/geophone/internal/enrich"
	"github.com/abelbrown/geophone/internal/logging"
	"github.com/abelbrown/geophone/internal/phone"
	"github.com/abelbrown/geophone/internal/session"
	"github.com/abelbrown/geophone/internal/store"
	"github.com/abelbrown/geophone/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [file.xlsx]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	cfg := config.Load()
	logging.Info("Configuration loaded",
		"phone_column", cfg.PhoneColumn,
		"page_size", cfg.PageSize,
		"locale", cfg.Locale)

	st, err := store.New()
	if err != nil {
		fatal("Failed to initialize annotation store: %v", err)
	}
	defer st.Close()

	resolver := phone.NewResolver(phone.NewLocalizer(cfg.LocaleTag()))
	engine := enrich.New(resolver, cfg.PhoneColumn)
	sess := session.New(cfg, engine, st)

	var initialPath string
	if flag.NArg() > 0 {
		initialPath = flag.Arg(0)
	}

	p := tea.NewProgram(ui.New(sess, initialPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.Error("Application error", "error", err)
		fatal("Error: %v", err)
	}

	logging.Info("geophone exiting normally")
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
