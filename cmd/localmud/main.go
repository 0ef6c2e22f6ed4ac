// Command localmud runs the single-player chapel crawl: it loads the content
// directories, verifies the room graph, restores or creates a character, and
// hands the interpreter to either the full-screen interface or a plain
// line-oriented loop.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/localmud/localmud/internal/config"
	"github.com/localmud/localmud/internal/game/command"
	"github.com/localmud/localmud/internal/game/dice"
	"github.com/localmud/localmud/internal/game/item"
	"github.com/localmud/localmud/internal/game/monster"
	"github.com/localmud/localmud/internal/game/npc"
	"github.com/localmud/localmud/internal/game/player"
	"github.com/localmud/localmud/internal/game/session"
	"github.com/localmud/localmud/internal/game/world"
	"github.com/localmud/localmud/internal/observability"
	"github.com/localmud/localmud/internal/scripting"
	"github.com/localmud/localmud/internal/storage/file"
)

func main() {
	configPath := flag.String("config", "", "path to config file (defaults apply when empty)")
	plain := flag.Bool("plain", false, "plain line mode, for screen readers and pipes")
	debug := flag.Bool("debug", false, "enable the debug verbs")
	flag.Parse()

	if err := run(*configPath, *plain, *debug); err != nil {
		fmt.Fprintln(os.Stderr, "localmud:", err)
		os.Exit(1)
	}
}

func run(configPath string, plain, debug bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	regions, err := world.LoadRegionsFromDir(cfg.Content.RegionsDir)
	if err != nil {
		return fmt.Errorf("loading regions: %w", err)
	}
	graph, err := world.NewGraph(regions, logger)
	if err != nil {
		return err
	}

	// Diagnostic-only sweep; broken links are logged, never fatal.
	faults := graph.VerifyLinks()
	logger.Info("room graph loaded",
		zap.Int("rooms", graph.RoomCount()),
		zap.Int("link_faults", len(faults)))

	itemDefs, err := item.LoadDefs(cfg.Content.ItemsDir)
	if err != nil {
		return fmt.Errorf("loading items: %w", err)
	}
	items, err := item.NewRegistry(itemDefs)
	if err != nil {
		return err
	}

	templates, err := monster.LoadTemplates(cfg.Content.MonstersDir)
	if err != nil {
		return fmt.Errorf("loading monsters: %w", err)
	}
	library, err := monster.NewLibrary(templates)
	if err != nil {
		return err
	}
	monsters := monster.NewRegistry(library, logger)
	monsters.InitRegionSpawns(regions)

	npcDefs, err := npc.LoadDefinitions(cfg.Content.NPCsDir)
	if err != nil {
		return fmt.Errorf("loading npcs: %w", err)
	}

	src := dice.NewCryptoSource()
	resolver := npc.NewResolver(npc.NewRoster(npcDefs),
		scripting.NewEvaluator(cfg.Game.ScriptInstructionLimit, logger), src, logger)

	store, err := file.NewStore(cfg.Save.Dir, logger)
	if err != nil {
		return err
	}
	settings, err := store.LoadSettings()
	if err != nil {
		return err
	}

	// Creation and the plain loop share one scanner; a second scanner over
	// the same reader would swallow buffered readahead from piped input.
	stdin := bufio.NewScanner(os.Stdin)

	p, err := store.LoadPlayer()
	if err != nil {
		return err
	}
	if p == nil {
		p, err = createCharacter(stdin, os.Stdout, src, settings)
		if err != nil {
			return err
		}
		logger.Info("character created",
			zap.String("name", p.Name),
			zap.String("class", p.Class))
	}
	p.DebugMode = p.DebugMode || debug
	p.VerboseTravel = p.VerboseTravel || settings.VerboseTravel

	start := p.Location
	if _, ok := graph.Lookup(start); !ok {
		start = graph.StartRoom()
		p.Location = start
	}
	if room, ok := graph.Lookup(start); ok {
		room.Visited = true
	}
	sess := session.New(world.NormalizeID(start), cfg.Game.MOTD)

	interp, err := command.NewInterpreter(command.Deps{
		Graph:      graph,
		Items:      items,
		Monsters:   monsters,
		NPCs:       resolver,
		Player:     p,
		Session:    sess,
		Source:     src,
		Logger:     logger,
		DirtyWords: cfg.Game.DirtyWords,
	})
	if err != nil {
		return err
	}

	if plain {
		err = runPlain(interp, sess, p, stdin, os.Stdout)
	} else {
		_, err = tea.NewProgram(newModel(interp, sess, p), tea.WithAltScreen()).Run()
	}
	if err != nil {
		return err
	}

	if saveErr := store.SavePlayer(p); saveErr != nil {
		return saveErr
	}
	logger.Info("session ended",
		zap.Int("turns", sess.Turn),
		zap.Bool("won", interp.Won()))
	return nil
}

// runPlain is the line-oriented loop: one prompt, one command, the turn's
// narration, repeat. It exists for screen readers and for piping scripted
// sessions through the engine.
func runPlain(interp *command.Interpreter, sess *session.State, p *player.Player, scanner *bufio.Scanner, out io.Writer) error {
	fmt.Fprintln(out, "MOTD:", sess.MOTD)
	for _, line := range interp.Execute("look") {
		fmt.Fprintln(out, line)
	}

	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		for _, line := range interp.Execute(scanner.Text()) {
			fmt.Fprintln(out, line)
		}
		if interp.Won() {
			fmt.Fprintln(out, "*** You have won. ***")
			break
		}
		if sess.Quitting {
			break
		}
	}
	if p.IsSlain() {
		fmt.Fprintln(out, "Your story ends here.")
	}
	return scanner.Err()
}

// createCharacter runs the interactive creation sequence: name, a 3d6 roll
// per ability, class choice restricted to what the roll qualifies for, then
// background.
func createCharacter(scanner *bufio.Scanner, out io.Writer, src dice.Source, settings file.Settings) (*player.Player, error) {
	name := prompt(scanner, out, "What is your name?")
	if name == "" {
		name = "Adventurer"
	}

	stats := player.RollStats(src)
	fmt.Fprintln(out, "The dice decide who you are:")
	for _, stat := range player.CoreStats {
		fmt.Fprintf(out, "  %s: %d (%+d)\n", stat, stats.Score(stat), player.Modifier(stats.Score(stat)))
	}

	eligible := player.EligibleClasses(stats)
	if len(eligible) == 0 {
		// A rough enough roll qualifies for nothing; everyone can swing a sword.
		eligible = []string{"fighter"}
	}
	fmt.Fprintln(out, "You qualify for:")
	for i, key := range eligible {
		fmt.Fprintf(out, "  %d. %s: %s\n", i+1, player.Classes[key].Name, player.Classes[key].Description)
	}
	classKey := pickFrom(scanner, out, "Choose a class:", eligible)

	fmt.Fprintln(out, "Backgrounds:")
	for i, bg := range player.Backgrounds {
		fmt.Fprintf(out, "  %d. %s\n", i+1, bg)
	}
	background := pickFrom(scanner, out, "Choose a background:", player.Backgrounds)

	return player.New(name, classKey, background, stats, src, settings.MaxHPBonus)
}

func prompt(scanner *bufio.Scanner, out io.Writer, question string) string {
	fmt.Fprintln(out, question)
	fmt.Fprint(out, "> ")
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

// pickFrom accepts either a 1-based number or an option's name; anything else
// falls back to the first option.
func pickFrom(scanner *bufio.Scanner, out io.Writer, question string, options []string) string {
	answer := strings.ToLower(prompt(scanner, out, question))
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return options[n-1]
	}
	for _, opt := range options {
		if strings.ToLower(opt) == answer {
			return opt
		}
	}
	return options[0]
}
