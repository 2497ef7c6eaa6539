package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/idilsaglam/wishlist/internal/model"
	"github.com/idilsaglam/wishlist/internal/store"
	"github.com/idilsaglam/wishlist/internal/tui"
	"github.com/idilsaglam/wishlist/internal/ui"
)

// Exit codes.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Env carries everything a subcommand needs. Store must be open.
type Env struct {
	Store   *store.WishStore
	Printer ui.Printer
	// Interactive runs the full-screen list; defaults to tui.Run.
	Interactive func(ctx context.Context, st *store.WishStore) error
}

// Run dispatches subcommands and returns an exit code (0 ok, 1 error, 2 usage).
func Run(ctx context.Context, args []string, env Env) int {
	p := env.Printer
	if len(args) == 0 {
		PrintHelp(p)
		return ExitUsage
	}
	cmd, a := args[0], args[1:]

	switch cmd {
	case "help", "-h", "--help":
		PrintHelp(p)
		return ExitOK

	case "ls", "list":
		return doList(env)

	case "count":
		p.Println(model.CountLabel(env.Store.Count()))
		return ExitOK

	case "add":
		if len(a) == 0 {
			p.Fail("usage: wishlist add <title...>")
			return ExitUsage
		}
		return doAdd(ctx, env, strings.Join(a, " "))

	case "rm", "delete":
		if len(a) != 1 {
			p.Fail("usage: wishlist rm <index|id>")
			return ExitUsage
		}
		return doRemove(ctx, env, a[0])

	case "ui":
		run := env.Interactive
		if run == nil {
			run = tui.Run
		}
		if err := run(ctx, env.Store); err != nil {
			p.Fail("ui: " + err.Error())
			return ExitError
		}
		return ExitOK
	}

	p.Fail("unknown subcommand: " + cmd)
	PrintHelp(p)
	return ExitUsage
}

func PrintHelp(p ui.Printer) {
	p.Printf(`wishlist - keep track of the things you wish for

Usage:
  wishlist [flags] <subcommand> [args]

Subcommands:
  add <title...>     Add a new wish (title can be multiple words)
  ls                 List wishes
  count              Print how many wishes there are
  rm <index|id>      Remove the wish at a 1-based index, or by id
  ui                 Interactive list (a: add, d: delete, /: filter, q: quit)

Flags:
  -store json|sqlite|memory   storage backend (env WISHLIST_STORE)
  -path <file>                data file (env WISHLIST_PATH)
  -theme classic|neon|mono    output theme (env WISHLIST_THEME)
  -no-color                   plain output without ANSI colors

Examples:
  wishlist add "Travel to Europe"
  wishlist ls
  wishlist rm 2
`)
}

// -------------- subcommand impls ----------------

func doList(env Env) int {
	ui.Panel(env.Printer.Writer(), ui.ListLines(env.Store.List()))
	return ExitOK
}

func doAdd(ctx context.Context, env Env, title string) int {
	p := env.Printer
	if _, err := env.Store.Add(ctx, title); err != nil {
		if store.IsValidation(err) {
			p.Fail("add: empty title")
			return ExitUsage
		}
		p.Fail("save: " + err.Error())
		return ExitError
	}
	p.OK("added (" + model.CountLabel(env.Store.Count()) + ")")
	return ExitOK
}

func doRemove(ctx context.Context, env Env, arg string) int {
	p := env.Printer
	wishes := env.Store.List()

	var target model.Wish
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(wishes) {
			p.Fail(fmt.Sprintf("index out of range: have %d, got %d", len(wishes), n))
			p.Hint("Hint: run `wishlist ls` to see valid indexes")
			return ExitUsage
		}
		target = wishes[n-1]
	} else {
		id, err := model.ParseID(arg)
		if err != nil {
			p.Fail("rm: not an index or wish id: " + arg)
			return ExitUsage
		}
		w, ok := env.Store.Get(id)
		if !ok {
			p.OK("nothing to remove")
			return ExitOK
		}
		target = w
	}

	if err := env.Store.Delete(ctx, target.ID); err != nil {
		p.Fail("save: " + err.Error())
		return ExitError
	}
	p.OK("removed " + strconv.Quote(target.Title))
	return ExitOK
}
