package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	domain "github.com/KirkDiggler/spellbook/internal/domain/spellbook"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	spellbookService "github.com/KirkDiggler/spellbook/internal/services/spellbook"
)

// demoCmd walks through the Fireball scenario
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Cast Fireball until the mana runs out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDemo(cmd.Context(), provider.SpellbookService, cmd.OutOrStdout())
	},
}

func runDemo(ctx context.Context, books spellbookService.Service, out io.Writer) error {
	book, err := books.Create(ctx, &spellbookService.CreateInput{Owner: "demo", Kind: domain.KindBasic})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Mana: %d/%d.\n", book.CurrentMana, book.MaxMana)

	fireball := spell.MustNew("Fireball", spell.ElementFire, 20)
	if err := books.LearnSpell(ctx, book.ID, fireball); err != nil {
		return err
	}

	for i := 0; i < 3; i++ {
		if err := books.Cast(ctx, book.ID, fireball.Name()); err != nil {
			if !dnderr.IsInsufficientMana(err) {
				return err
			}
			fmt.Fprintln(out, dnderr.Message(err))
		}
	}

	if err := books.Print(ctx, book.ID, out); err != nil {
		return err
	}

	book, err = books.Get(ctx, book.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Mana: %d/%d.\n", book.CurrentMana, book.MaxMana)

	master, err := books.Create(ctx, &spellbookService.CreateInput{
		Owner:     "demo",
		Kind:      domain.KindMaster,
		Forbidden: spell.ElementIce,
		MaxSpells: 10,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Master spellbook refusing %s holds %d spells.\n", master.Forbidden, master.MaxSpellCount)

	frostbolt := spell.MustNew("Frostbolt", spell.ElementIce, 15)
	if err := books.LearnSpell(ctx, master.ID, frostbolt); err != nil {
		fmt.Fprintln(out, dnderr.Message(err))
	}

	_, err = books.Create(ctx, &spellbookService.CreateInput{
		Owner:     "demo",
		Kind:      domain.KindMaster,
		Forbidden: spell.ElementIce,
		MaxSpells: 0,
	})
	if err != nil {
		fmt.Fprintln(out, dnderr.Message(err))
	}
	return nil
}
