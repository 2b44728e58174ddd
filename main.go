package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"golang.org/x/term"

	"tabpager/internal/bridge"
	"tabpager/internal/config"
	"tabpager/internal/domain"
	"tabpager/internal/eventbus"
	"tabpager/internal/logging"
	"tabpager/internal/nav"
	"tabpager/internal/session"
	"tabpager/internal/source"
	"tabpager/internal/ui"
	"tabpager/internal/window"
)

const dateLayout = "2006-01-02"

func main() {
	var sourceName string
	var configPath string
	flag.StringVar(&sourceName, "source", "demo", "Data source to browse: demo (finite) or journal (infinite)")
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.Parse()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "tabpager requires an interactive terminal")
		os.Exit(1)
	}

	// Load configuration
	configSvc := config.NewConfigService()
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = configSvc.LoadFromPath(configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		cfg = config.DefaultConfig()
	}

	// Set up logging. The TUI owns the terminal, so logs go to a file.
	if _, err := logging.Setup(cfg.Logging); err != nil {
		slog.SetDefault(logging.NullLogger())
	}
	slog.Info("starting", "source", sourceName)

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	adapter := buildAdapter(sourceName)
	win := window.NewService(adapter, bus)
	navSvc := nav.NewService(win, bus, nav.Options{
		CommitThreshold: cfg.Nav.CommitThreshold,
		LookaheadBound:  cfg.Nav.LookaheadBound,
		NeighborCount:   cfg.Nav.NeighborCount,
	})
	br := bridge.New(navSvc, win)

	// Session persistence, so a restart lands on the tab you left.
	sessionPath := ""
	if cfg.Session.Enabled {
		sessionPath = cfg.Session.File
	}
	store, err := session.Open(sessionPath)
	if err != nil {
		slog.Warn("session store unavailable", "error", err)
		store, _ = session.Open("")
	}
	defer store.Close()

	model := ui.NewModel(cfg, bus, navSvc, win, br, store, sourceName)
	p := tea.NewProgram(model, tea.WithAltScreen())

	// Forward domain events into the UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			slog.Warn("event channel full, dropping event", "event", e.Type())
		}
	}
	bus.Subscribe(eventbus.EventSelectionChanged, forward)
	bus.Subscribe(eventbus.EventWindowReloaded, forward)
	bus.Subscribe(eventbus.EventError, forward)
	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	// Seed the initial selection, restoring last session when possible.
	if initial, ok := initialItem(adapter, store, sourceName); ok {
		if err := navSvc.SelectInitial(initial); err != nil {
			slog.Error("initial selection failed", "error", err)
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}

	close(eventChan)
	slog.Info("exited")
}

// initialItem resolves where to land on startup: the remembered
// selection when the source still has it, else the source's natural
// first item.
func initialItem(adapter source.Adapter, store *session.Store, sourceName string) (domain.Item, bool) {
	remembered, found := store.LastSelection(sourceName)

	if fa, ok := adapter.(source.FiniteAdapter); ok {
		items := fa.AllItems()
		if len(items) == 0 {
			return domain.Item{}, false
		}
		if found {
			if kept, ok := lo.Find(items, func(i domain.Item) bool { return i.ID == remembered }); ok {
				return kept, true
			}
		}
		return items[0], true
	}

	// Infinite journal: any date is addressable, remembered or today.
	if found {
		if t, err := time.Parse(dateLayout, remembered); err == nil {
			return dateItem(t), true
		}
	}
	return dateItem(time.Now()), true
}

func buildAdapter(sourceName string) source.Adapter {
	if sourceName == "journal" {
		return journalAdapter()
	}
	return demoAdapter()
}

// demoAdapter is a small finite tab set with synthetic pages. Pages
// carry a fetch timestamp so a data reload visibly re-resolves them.
func demoAdapter() source.Adapter {
	titles := []string{"Inbox", "Today", "Upcoming", "Projects", "Archive", "Trash"}
	items := lo.Map(titles, func(title string, i int) domain.Item {
		return domain.Item{ID: fmt.Sprintf("demo-%d", i), Title: title}
	})

	content := func(i domain.Item) domain.ContentHandle {
		body := fmt.Sprintf("%s\n\nThis is the %s page.\n\nFetched at %s.\n\nDrag with h/l, switch tabs with the arrow keys,\nor press / to jump anywhere.",
			i.Title, i.Title, time.Now().Format(time.TimeOnly))
		return domain.ContentHandle{ID: i.ID + "@" + time.Now().Format(time.RFC3339Nano), Body: body}
	}
	cell := func(i domain.Item) domain.CellDescriptor {
		return domain.CellDescriptor{ReuseID: "tab", Title: i.Title}
	}
	return source.NewFinite(items, content, cell)
}

// journalAdapter browses an unbounded run of daily pages, one tab per
// date. Neighbors are derived, never enumerated.
func journalAdapter() source.Adapter {
	content := func(i domain.Item) domain.ContentHandle {
		t, err := time.Parse(dateLayout, i.ID)
		if err != nil {
			return domain.ContentHandle{ID: i.ID}
		}
		body := fmt.Sprintf("%s\n\nJournal entry for %s.\n\nNeighboring days materialize on demand;\nscroll as far as you like in either direction.",
			t.Format("Monday, January 2 2006"), i.ID)
		return domain.ContentHandle{ID: i.ID, Body: body}
	}
	cell := func(i domain.Item) domain.CellDescriptor {
		return domain.CellDescriptor{ReuseID: "day", Title: i.Title}
	}
	shift := func(days int) source.NeighborFunc {
		return func(i domain.Item) (domain.Item, bool) {
			t, err := time.Parse(dateLayout, i.ID)
			if err != nil {
				return domain.Item{}, false
			}
			return dateItem(t.AddDate(0, 0, days)), true
		}
	}
	return source.NewInfinite(shift(-1), shift(1), content, cell)
}

func dateItem(t time.Time) domain.Item {
	id := t.Format(dateLayout)
	return domain.Item{ID: id, Title: t.Format("Jan 2")}
}
