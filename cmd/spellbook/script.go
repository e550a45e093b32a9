package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/KirkDiggler/spellbook/internal/domain/spell"
	dnderr "github.com/KirkDiggler/spellbook/internal/errors"
	spellbookService "github.com/KirkDiggler/spellbook/internal/services/spellbook"
)

type opcode string

const (
	opLearn    opcode = "learn"
	opLearnKey opcode = "learn-key"
	opCast     opcode = "cast"
	opRestore  opcode = "restore"
	opPrint    opcode = "print"
	opStatus   opcode = "status"
)

// instruction is one parsed script line
type instruction struct {
	op     opcode
	spell  spell.Spell
	name   string // spell name for cast, catalog key for learn-key
	amount int
}

// parseInstruction parses a script line. Spell names may contain spaces, so
// learn reads element and cost from the last two fields.
func parseInstruction(line string) (*instruction, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, dnderr.InvalidArgument("empty instruction")
	}

	op := opcode(strings.ToLower(fields[0]))
	args := fields[1:]

	switch op {
	case opLearn:
		if len(args) < 3 {
			return nil, dnderr.InvalidArgument("usage: learn <name> <element> <cost>")
		}
		element, err := spell.ParseElement(args[len(args)-2])
		if err != nil {
			return nil, err
		}
		cost, err := strconv.Atoi(args[len(args)-1])
		if err != nil {
			return nil, dnderr.InvalidArgumentf("invalid mana cost '%s'", args[len(args)-1])
		}
		sp, err := spell.New(learnName(remainder(line, fields[0])), element, cost)
		if err != nil {
			return nil, err
		}
		return &instruction{op: op, spell: sp}, nil

	case opLearnKey:
		if len(args) != 1 {
			return nil, dnderr.InvalidArgument("usage: learn-key <key>")
		}
		return &instruction{op: op, name: args[0]}, nil

	case opCast:
		if len(args) == 0 {
			return nil, dnderr.InvalidArgument("usage: cast <name>")
		}
		return &instruction{op: op, name: remainder(line, fields[0])}, nil

	case opRestore:
		if len(args) != 1 {
			return nil, dnderr.InvalidArgument("usage: restore <amount>")
		}
		amount, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, dnderr.InvalidArgumentf("invalid amount '%s'", args[0])
		}
		return &instruction{op: op, amount: amount}, nil

	case opPrint, opStatus:
		if len(args) != 0 {
			return nil, dnderr.InvalidArgumentf("%s takes no arguments", op)
		}
		return &instruction{op: op}, nil
	}

	return nil, dnderr.InvalidArgumentf("unknown instruction '%s'", fields[0])
}

// remainder returns the line after its opcode with inner spacing intact
func remainder(line, op string) string {
	rest := strings.TrimSpace(line)
	return strings.TrimSpace(rest[len(op):])
}

// learnName drops the trailing element and cost fields from a learn remainder
func learnName(rest string) string {
	for i := 0; i < 2; i++ {
		rest = strings.TrimRightFunc(rest, unicode.IsSpace)
		rest = strings.TrimRightFunc(rest, func(r rune) bool { return !unicode.IsSpace(r) })
	}
	return strings.TrimSpace(rest)
}

// scriptRunner applies instructions to one book
type scriptRunner struct {
	books  spellbookService.Service
	bookID string
	out    io.Writer
}

// Run executes every line of the script. A failing line prints its message
// and the script carries on; the number of failed lines is returned.
func (r *scriptRunner) Run(ctx context.Context, in io.Reader) (int, error) {
	failures := 0
	scanner := bufio.NewScanner(in)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		inst, err := parseInstruction(line)
		if err != nil {
			failures++
			fmt.Fprintf(r.out, "line %d: %s\n", lineNo, dnderr.Message(err))
			continue
		}

		if err := r.apply(ctx, inst); err != nil {
			failures++
			fmt.Fprintln(r.out, dnderr.Message(err))
		}
	}

	if err := scanner.Err(); err != nil {
		return failures, fmt.Errorf("failed to read script: %w", err)
	}
	return failures, nil
}

func (r *scriptRunner) apply(ctx context.Context, inst *instruction) error {
	switch inst.op {
	case opLearn:
		return r.books.LearnSpell(ctx, r.bookID, inst.spell)
	case opLearnKey:
		return r.books.Learn(ctx, r.bookID, inst.name)
	case opCast:
		return r.books.Cast(ctx, r.bookID, inst.name)
	case opRestore:
		return r.books.Restore(ctx, r.bookID, inst.amount)
	case opPrint:
		return r.books.Print(ctx, r.bookID, r.out)
	case opStatus:
		info, err := r.books.Get(ctx, r.bookID)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(r.out, "Mana: %d/%d. Spells: %d/%d.\n",
			info.CurrentMana, info.MaxMana, info.SpellCount, info.MaxSpellCount)
		return err
	}
	return dnderr.Internalf("unhandled instruction '%s'", inst.op)
}
