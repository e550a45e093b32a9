package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	domain "github.com/KirkDiggler/spellbook/internal/domain/spellbook"
	"github.com/KirkDiggler/spellbook/internal/events"
	spellbookService "github.com/KirkDiggler/spellbook/internal/services/spellbook"
)

var (
	runMaster    bool
	runForbidden string
	runMaxSpells int
	runTrace     bool
)

// runCmd applies a line script to a fresh spellbook
var runCmd = &cobra.Command{
	Use:   "run [script]",
	Short: "Run a spellbook script from a file or stdin",
	Long: `Reads one instruction per line and applies it to a new spellbook:

  learn <name> <element> <cost>   learn a spell, e.g. "learn Chain Lightning Lightning 30"
  learn-key <key>                 learn a spell from the catalog, e.g. "learn-key fireball"
  cast <name>                     cast a learned spell
  restore <amount>                restore mana
  print                           list learned spells
  status                          show mana and slot usage

Blank lines and lines starting with # are ignored. A failing instruction
prints its message and the script continues.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open script: %w", err)
			}
			defer f.Close()
			in = f
		}

		input := &spellbookService.CreateInput{Owner: "cli", Kind: domain.KindBasic}
		if runMaster {
			forbidden := runForbidden
			if forbidden == "" {
				forbidden = cfg.Master.Forbidden
			}
			element, err := spell.ParseElement(forbidden)
			if err != nil {
				return err
			}

			maxSpells := runMaxSpells
			if !cmd.Flags().Changed("max") {
				maxSpells = cfg.Master.MaxSpells
			}

			input.Kind = domain.KindMaster
			input.Forbidden = element
			input.MaxSpells = maxSpells
		}

		var recorder *events.Recorder
		if runTrace {
			recorder = events.NewRecorder(provider.EventBus, "cli-trace",
				events.EventTypeSpellLearned,
				events.EventTypeSpellCast,
				events.EventTypeManaRestored,
				events.EventTypeActionFailed,
			)
		}

		books := provider.SpellbookService
		book, err := books.Create(cmd.Context(), input)
		if err != nil {
			return err
		}

		runner := &scriptRunner{books: books, bookID: book.ID, out: cmd.OutOrStdout()}
		failures, err := runner.Run(cmd.Context(), in)
		if err != nil {
			return err
		}

		if recorder != nil {
			writeTrace(cmd.ErrOrStderr(), recorder.Events())
		}

		logger.Debug("script finished",
			zap.String("book_id", book.ID),
			zap.Int("failures", failures))
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&runMaster, "master", false, "Use a master spellbook")
	runCmd.Flags().StringVar(&runForbidden, "forbidden", "", "Element a master spellbook refuses (default from SPELLBOOK_MASTER_FORBIDDEN)")
	runCmd.Flags().IntVar(&runMaxSpells, "max", domain.MaxSpells, "Slots in a master spellbook, clamped to 5")
	runCmd.Flags().BoolVar(&runTrace, "trace", false, "Print spellbook events to stderr when the script ends")
}

func writeTrace(w io.Writer, recorded []events.Event) {
	for _, e := range recorded {
		switch e.Type {
		case events.EventTypeActionFailed:
			fmt.Fprintf(w, "%-14s %s\n", e.Type, e.Reason)
		case events.EventTypeSpellLearned:
			fmt.Fprintf(w, "%-14s %s (%s) - %d mana\n", e.Type, e.SpellName, e.Element, e.ManaCost)
		default:
			fmt.Fprintf(w, "%-14s %s mana %d -> %d\n", e.Type, e.SpellName, e.ManaBefore, e.ManaAfter)
		}
	}
}
