package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/iw2rmb/quill"
	"github.com/iw2rmb/quill/config"
	"github.com/iw2rmb/quill/field"
	"github.com/iw2rmb/quill/mode"
	"github.com/iw2rmb/quill/termhost"
)

type options struct {
	configPath string
	logFile    string
	debug      bool
}

func newRootCmd() *cobra.Command {
	var opt options
	cmd := &cobra.Command{
		Use:           "quill-demo",
		Short:         "Edit a form of text fields in the terminal",
		Long:          "quill-demo shows a form of text fields driven by the quill editing core. Fields come from a TOML or YAML file, or a built-in sample form.",
		Version:       quill.Version(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.OutOrStdout(), opt)
		},
	}
	cmd.Flags().StringVarP(&opt.configPath, "config", "c", "", "path to a .toml, .yaml or .yml form definition")
	cmd.Flags().StringVar(&opt.logFile, "log-file", "", "write logs to this file")
	cmd.Flags().BoolVar(&opt.debug, "debug", false, "log at debug level")
	return cmd
}

func run(out io.Writer, opt options) error {
	closeLog, err := setupLogging(opt.logFile, opt.debug)
	if err != nil {
		return err
	}
	defer closeLog()

	entries, err := loadEntries(opt.configPath)
	if err != nil {
		return err
	}
	log.Info().Int("fields", len(entries)).Str("config", opt.configPath).Msg("starting")

	m := termhost.New(entries, termhost.Options{Clipboard: termhost.DetectClipboard()})
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	if err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	if fm, ok := final.(termhost.Model); ok {
		for _, s := range fm.Submissions() {
			fmt.Fprintf(out, "%s: %s\n", s.Label, s.Text)
		}
	}
	return nil
}

// setupLogging points the global logger at path. Without a path logging is
// discarded, since the terminal belongs to the program.
func setupLogging(path string, debug bool) (func(), error) {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	if path == "" {
		log.Logger = zerolog.New(io.Discard)
		return func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: f, NoColor: true}).With().Timestamp().Logger()
	return func() { _ = f.Close() }, nil
}

func loadEntries(path string) ([]termhost.Entry, error) {
	if path == "" {
		return sampleEntries(), nil
	}
	file, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	named, err := file.Configs()
	if err != nil {
		return nil, err
	}
	entries := make([]termhost.Entry, 0, len(named))
	for _, n := range named {
		entries = append(entries, termhost.Entry{Label: n.Name, Config: n.Config})
	}
	return entries, nil
}

func sampleEntries() []termhost.Entry {
	name := field.DefaultConfig()
	name.Mode = mode.SingleLine()
	name.MaxChars = 40
	name.Prompt = &field.Prompt{Text: "your name"}

	age := field.DefaultConfig()
	age.Mode = mode.Int()
	age.MaxChars = 3
	age.Prompt = &field.Prompt{Text: "0"}

	color := field.DefaultConfig()
	color.Mode = mode.Hex()
	color.MaxChars = 6
	color.Prompt = &field.Prompt{Text: "ffcc00"}

	notes := field.DefaultConfig()
	notes.Lines = 4
	notes.ClearOnSubmit = false
	notes.Prompt = &field.Prompt{Text: "anything else? ctrl+s submits"}

	return []termhost.Entry{
		{Label: "Name", Config: name},
		{Label: "Age", Config: age},
		{Label: "Color", Config: color},
		{Label: "Notes", Config: notes},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
