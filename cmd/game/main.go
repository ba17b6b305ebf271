// Package main provides the interactive terminal game. It wires together
// configuration, content loading, persistence, and the command loop.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/forgottenship/game/internal/config"
	"github.com/forgottenship/game/internal/game/command"
	"github.com/forgottenship/game/internal/game/dice"
	"github.com/forgottenship/game/internal/game/inventory"
	"github.com/forgottenship/game/internal/game/session"
	"github.com/forgottenship/game/internal/game/world"
	"github.com/forgottenship/game/internal/observability"
	"github.com/forgottenship/game/internal/state"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("51"))
	roomStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	promptStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("84"))
	mapStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).
			Border(lipgloss.RoundedBorder()).Padding(0, 1)
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	playerName := flag.String("name", "", "override the configured player name")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *playerName != "" {
		cfg.Game.PlayerName = *playerName
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	deck, err := world.LoadDeckFromFile(cfg.Game.DeckPath)
	if err != nil {
		logger.Fatal("loading deck", zap.String("path", cfg.Game.DeckPath), zap.Error(err))
	}
	defs, err := inventory.LoadItems(cfg.Game.ItemsPath)
	if err != nil {
		logger.Fatal("loading items", zap.String("path", cfg.Game.ItemsPath), zap.Error(err))
	}
	catalog, err := inventory.NewCatalogFromDefs(defs)
	if err != nil {
		logger.Fatal("building catalog", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.String("deck", deck.Name),
		zap.Int("rooms", len(deck.Rooms)),
		zap.Int("items", catalog.Len()),
	)

	spawn, err := cfg.Game.SpawnCoordinate()
	if err != nil {
		logger.Fatal("parsing spawn", zap.Error(err))
	}

	store := state.NewStore(cfg.Save.SavePath, cfg.Save.SettingsPath, catalog, deck, logger)
	sess, err := session.New(deck, catalog, store, dice.NewCryptoSource(), session.Options{
		PlayerName: cfg.Game.PlayerName,
		Spawn:      spawn,
		Capacity:   cfg.Game.Capacity,
	}, logger)
	if err != nil {
		logger.Fatal("starting session", zap.Error(err))
	}

	registry := command.DefaultRegistry()
	fmt.Println(titleStyle.Render("FORGOTTEN SHIP"))
	fmt.Println(roomStyle.Render("You wake up alone on the " + deck.Name + ". Type 'help' for commands."))
	if notice := deathNotice(sess, logger); notice != "" {
		fmt.Println(notice)
	}
	fmt.Println()
	fmt.Println(roomStyle.Render(command.HandleLook(sess)))

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(promptStyle.Render("> "))
		if !scanner.Scan() {
			break
		}
		parsed := command.Parse(scanner.Text())
		if parsed.Command == "" {
			continue
		}
		cmd, ok := registry.Resolve(parsed.Command)
		if !ok {
			fmt.Println(errorStyle.Render("Unknown command. Type 'help' for commands."))
			continue
		}
		if cmd.Handler == command.HandlerQuit {
			if err := sess.Save(); err != nil {
				logger.Warn("saving on quit", zap.Error(err))
			}
			fmt.Println(roomStyle.Render("The ship keeps your place. Goodbye."))
			return
		}
		fmt.Println(dispatch(sess, registry, cmd, parsed))
		if notice := deathNotice(sess, logger); notice != "" {
			fmt.Println(notice)
		}
	}
	if err := sess.Save(); err != nil {
		logger.Warn("saving on exit", zap.Error(err))
	}
}

// deathNotice resets the run when the explorer is dead and returns the text
// to display, or "" while they live. A restored save can already carry zero
// health, so this runs once at startup as well as after every command; the
// dead never get to act.
func deathNotice(sess *session.Session, logger *zap.Logger) string {
	if sess.Player().IsAlive() {
		return ""
	}
	notice := errorStyle.Render("You did not make it. The ship drifts on without you.")
	if err := sess.Reset(); err != nil {
		logger.Warn("resetting after death", zap.Error(err))
	}
	return notice + "\n" + roomStyle.Render("You wake at the start again.")
}

// dispatch routes a resolved command to its handler and styles the output.
func dispatch(sess *session.Session, registry *command.Registry, cmd *command.Command, parsed command.ParseResult) string {
	switch cmd.Handler {
	case command.HandlerMove:
		out := command.HandleMove(sess, cmd.Name, parsed.Args)
		if fight := command.HandleEncounter(sess); fight != "" {
			out += "\n" + errorStyle.Render(fight)
		}
		return roomStyle.Render(out)
	case command.HandlerLook:
		return roomStyle.Render(command.HandleLook(sess))
	case command.HandlerMap:
		return mapStyle.Render(command.HandleMap(sess))
	case command.HandlerDoor:
		return roomStyle.Render(command.HandleDoor(sess))
	case command.HandlerUse:
		return roomStyle.Render(command.HandleUse(sess, parsed.RawArgs))
	case command.HandlerTake:
		return roomStyle.Render(command.HandleTake(sess, parsed.RawArgs))
	case command.HandlerDrop:
		return roomStyle.Render(command.HandleDrop(sess, parsed.RawArgs))
	case command.HandlerStore:
		return roomStyle.Render(command.HandleStore(sess, parsed.Args, parsed.RawArgs))
	case command.HandlerRetrieve:
		return roomStyle.Render(command.HandleRetrieve(sess, parsed.Args, parsed.RawArgs))
	case command.HandlerInventory:
		return roomStyle.Render(command.HandleInventory(sess))
	case command.HandlerStatus:
		return roomStyle.Render(command.HandleStatus(sess))
	case command.HandlerSave:
		return roomStyle.Render(command.HandleSave(sess))
	case command.HandlerReset:
		return roomStyle.Render(command.HandleReset(sess))
	case command.HandlerHelp:
		return renderHelp(registry)
	default:
		return errorStyle.Render("Nothing happens.")
	}
}

// renderHelp lists every command grouped by category.
func renderHelp(registry *command.Registry) string {
	byCat := registry.CommandsByCategory()
	order := []string{
		command.CategoryMovement,
		command.CategoryWorld,
		command.CategoryInventory,
		command.CategorySystem,
	}

	var b strings.Builder
	for _, cat := range order {
		cmds := byCat[cat]
		if len(cmds) == 0 {
			continue
		}
		sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name < cmds[j].Name })
		b.WriteString(titleStyle.Render(strings.ToUpper(cat)) + "\n")
		for _, c := range cmds {
			name := c.Name
			if len(c.Aliases) > 0 {
				name += " (" + strings.Join(c.Aliases, ", ") + ")"
			}
			b.WriteString(helpStyle.Render(fmt.Sprintf("  %-28s %s", name, c.Help)) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// loadConfig reads the config file, falling back to built-in defaults when
// the default file is absent.
func loadConfig(path string) (config.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config.Default(), nil
	}
	return config.Load(path)
}
