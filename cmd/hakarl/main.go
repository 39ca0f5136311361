package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/term"

	"github.com/sphennings/Hakarl/pkg/cli"
	"github.com/sphennings/Hakarl/pkg/config"
	"github.com/sphennings/Hakarl/pkg/diag"
	"github.com/sphennings/Hakarl/pkg/scanner"
	"github.com/sphennings/Hakarl/pkg/token"
)

func main() {
	app := cli.NewApp("hakarl")
	app.Synopsis = "[options] [script ...]"
	app.Description = "Tokenizer for the Hakarl scripting language. Scans each script (or lines read interactively) and prints the token stream."
	app.Authors = []string{"sphennings"}
	app.Repository = "<https://github.com/sphennings/Hakarl>"

	var (
		fingerprint bool
		wall        bool
		wnoall      bool
	)
	fs := app.FlagSet
	fs.Bool(&fingerprint, "fingerprint", "f", false, "Print a 64-bit hash of the token stream instead of the tokens.")
	fs.Bool(&wall, "Wall", "", false, "Enable all warnings.")
	fs.Bool(&wnoall, "Wno-all", "", false, "Disable all warnings.")

	cfg := config.NewConfig()
	warningFlags, featureFlags := cfg.SetupFlagGroups(fs)

	app.Action = func(scripts []string) error {
		// -Wall/-Wno-all first so individual -W flags can override them.
		if wall {
			cfg.SetAllWarnings(true)
		}
		if wnoall {
			cfg.SetAllWarnings(false)
		}
		cfg.ApplyFlagGroups(warningFlags, featureFlags)

		if len(scripts) == 0 {
			return runPrompt(cfg, fingerprint)
		}

		hadError := false
		for _, path := range scripts {
			failed, err := runFile(path, cfg, fingerprint)
			if err != nil {
				return err
			}
			hadError = hadError || failed
		}
		if hadError {
			os.Exit(65)
		}
		return nil
	}

	if err := app.Run(os.Args[1:]); err != nil {
		os.Exit(1)
	}
}

func runFile(path string, cfg *config.Config, fingerprint bool) (hadError bool, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("could not read file '%s': %w", path, err)
	}
	sink := diag.NewSink(os.Stderr)
	tokens := scanner.New(string(content), cfg, sink).ScanTokens()
	emit(tokens, fingerprint)
	return sink.HadError(), nil
}

func runPrompt(cfg *config.Config, fingerprint bool) error {
	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	sink := diag.NewSink(os.Stderr)
	in := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !in.Scan() {
			break
		}
		// an error on one line never ends the session
		sink.Reset()
		tokens := scanner.New(in.Text(), cfg, sink).ScanTokens()
		emit(tokens, fingerprint)
	}
	return in.Err()
}

func emit(tokens []token.Token, fingerprint bool) {
	if fingerprint {
		fmt.Printf("%016x\n", xxhash.Sum64String(dump(tokens)))
		return
	}
	fmt.Print(dump(tokens))
}

// dump renders one token per line; the same text feeds the fingerprint,
// so it must stay deterministic across runs.
func dump(tokens []token.Token) string {
	var sb strings.Builder
	for _, tok := range tokens {
		sb.WriteString(tok.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
