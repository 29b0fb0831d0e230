package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	dendec "github.com/dendec/dendec-go"
	"github.com/dendec/dendec-go/refer"
	"github.com/dendec/dendec-go/wrap"
)

const version = "0.1.0"

// Config carries the process-level dependencies so tests can
// substitute buffers and canned prompts.
type Config struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// ReadPassword prompts once with echo disabled and returns the
	// entered passphrase.
	ReadPassword func(prompt string) (string, error)
}

// DefaultConfig wires the real process streams and the terminal
// prompt.
func DefaultConfig() *Config {
	return &Config{
		Stdin:        os.Stdin,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		ReadPassword: promptPassword,
	}
}

// exitFunc is replaced in tests.
var exitFunc = os.Exit

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	exitFunc(1)
}

func run(args []string, cfg *Config) error {
	// A local .env is a convenience for DENDEC_* variables; absence is
	// normal.
	_ = godotenv.Load()

	return newApp(cfg).Run(args)
}

func newApp(cfg *Config) *cli.App {
	app := cli.NewApp()
	app.Name = "dendec"
	app.Usage = "Password-based encrypted Unicode ↔ DNA encoding"
	app.Version = version
	app.Writer = cfg.Stdout
	app.ErrWriter = cfg.Stderr
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "load settings from `FILE` instead of $HOME/.dendec.yaml",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log per-file detail, including skipped files",
		},
	}
	app.Commands = []cli.Command{
		encodeCommand(cfg),
		decodeCommand(cfg),
		wrapCommand(cfg),
		referCommand(cfg),
	}
	return app
}

// newLogger builds the logger handed to the long-running subsystems.
// Library packages stay silent; only the CLI configures output.
func newLogger(w io.Writer, verbose bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	if verbose {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

func encodeCommand(cfg *Config) cli.Command {
	return cli.Command{
		Name:      "encode",
		Usage:     "encode text or a file into an encrypted DNA sequence",
		ArgsUsage: "[TEXT]",
		Description: "Examples:\n" +
			"   dendec encode \"Hello\"\n" +
			"   dendec encode --file main.go --as main.go.dna",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "file, f",
				Usage: "read input from `PATH` instead of the argument (binary-safe)",
			},
			cli.StringFlag{
				Name:  "as",
				Usage: "write DNA output to `PATH` instead of stdout",
			},
			cli.IntFlag{
				Name:  "group, g",
				Usage: "display DNA output in groups of `N` bases (default: continuous)",
			},
		},
		Action: func(c *cli.Context) error {
			return runEncode(c, cfg)
		},
	}
}

func runEncode(c *cli.Context, cfg *Config) error {
	settings, err := loadSettings(c.GlobalString("config"))
	if err != nil {
		return err
	}

	var plaintext []byte
	switch {
	case c.String("file") != "":
		plaintext, err = os.ReadFile(c.String("file"))
		if err != nil {
			return err
		}
	case c.Args().First() != "":
		plaintext = []byte(c.Args().First())
	default:
		return errors.New("provide text as an argument or use --file <PATH>")
	}

	password, err := resolvePassword(cfg, true)
	if err != nil {
		return err
	}

	fmt.Fprintln(cfg.Stderr, "Encoding… (Argon2id key derivation may take a moment)")

	group := settings.Group
	if c.IsSet("group") {
		group = c.Int("group")
	}
	var opts []dendec.EncodeOption
	if group > 0 {
		opts = append(opts, dendec.WithGroupSize(group))
	}

	symbols, err := dendec.Encode(plaintext, password, opts...)
	if err != nil {
		return err
	}

	if path := c.String("as"); path != "" {
		if err := os.WriteFile(path, []byte(symbols), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cfg.Stderr, "Written to %s\n", path)
		return nil
	}
	fmt.Fprintln(cfg.Stdout, symbols)
	return nil
}

func decodeCommand(cfg *Config) cli.Command {
	return cli.Command{
		Name:      "decode",
		Usage:     "decode an encrypted DNA sequence back to text or a file",
		ArgsUsage: "[DNA]",
		Description: "Examples:\n" +
			"   dendec decode \"ATGC...\"\n" +
			"   dendec decode --file main.go.dna --as main.go",
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "file, f",
				Usage: "read DNA input from `PATH`",
			},
			cli.StringFlag{
				Name:  "as",
				Usage: "write decoded output to `PATH` instead of stdout",
			},
		},
		Action: func(c *cli.Context) error {
			return runDecode(c, cfg)
		},
	}
}

func runDecode(c *cli.Context, cfg *Config) error {
	var symbols string
	switch {
	case c.String("file") != "":
		data, err := os.ReadFile(c.String("file"))
		if err != nil {
			return err
		}
		symbols = string(data)
	case c.Args().First() != "":
		symbols = c.Args().First()
	default:
		return errors.New("provide a DNA sequence as an argument or use --file <PATH>")
	}

	password, err := resolvePassword(cfg, false)
	if err != nil {
		return err
	}

	fmt.Fprintln(cfg.Stderr, "Decoding… (Argon2id key derivation may take a moment)")

	plaintext, err := dendec.Decode(symbols, password)
	if err != nil {
		return err
	}

	if path := c.String("as"); path != "" {
		if err := os.WriteFile(path, plaintext, 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cfg.Stderr, "Written to %s\n", path)
		return nil
	}

	// Terminal output is text mode. Anything else needs --as so raw
	// bytes never hit the terminal.
	if !utf8.Valid(plaintext) {
		return errors.New("decoded data is not valid UTF-8: use --as to write it to a file")
	}
	_, err = cfg.Stdout.Write(plaintext)
	return err
}

func wrapCommand(cfg *Config) cli.Command {
	return cli.Command{
		Name:      "wrap",
		Usage:     "run a command and encode or decode all files it produces",
		ArgsUsage: "COMMAND [ARG...]",
		Description: "wrap intercepts the output of any shell command and applies a DNA\n" +
			"   transform to every appropriate file. Directory structure is preserved\n" +
			"   exactly. Binary files are skipped automatically.\n\n" +
			"Examples:\n" +
			"   dendec wrap -e git clone https://github.com/user/repo\n" +
			"   dendec wrap -d git clone https://github.com/user/repo\n" +
			"   dendec wrap -e curl -o config.toml https://example.com/config.toml",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "encode, e",
				Usage: "encode mode: transform files to .dna",
			},
			cli.BoolFlag{
				Name:  "decode, d",
				Usage: "decode mode: restore files from .dna",
			},
		},
		Action: func(c *cli.Context) error {
			return runWrap(c, cfg)
		},
	}
}

func runWrap(c *cli.Context, cfg *Config) error {
	encode := c.Bool("encode")
	decode := c.Bool("decode")
	if encode && decode {
		return errors.New("wrap requires either -e (encode) or -d (decode), not both")
	}
	if !encode && !decode {
		return errors.New("wrap requires either -e or -d flag")
	}
	if len(c.Args()) == 0 {
		return errors.New("wrap requires a command to run")
	}

	settings, err := loadSettings(c.GlobalString("config"))
	if err != nil {
		return err
	}

	password, err := resolvePassword(cfg, encode)
	if err != nil {
		return err
	}

	mode := wrap.ModeDecode
	if encode {
		mode = wrap.ModeEncode
	}

	opts := []wrap.Option{
		wrap.WithLogger(newLogger(cfg.Stderr, c.GlobalBool("verbose"))),
		wrap.WithOutput(cfg.Stdout),
	}
	if len(settings.WrapExclude) > 0 {
		opts = append(opts, wrap.WithExcludeDirs(settings.WrapExclude...))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := wrap.Run(ctx, mode, c.Args(), password, opts...)
	if summary != nil {
		printSummary(cfg.Stderr, summary)
	}
	return err
}

// printSummary renders the wrap totals in one line.
func printSummary(w io.Writer, s *wrap.Summary) {
	fmt.Fprintf(w, "%d file(s) examined, %d transformed, %d skipped, %d failed (%s in, %s out)\n",
		s.Examined, s.Transformed, s.Skipped, s.Failed,
		humanize.IBytes(s.BytesIn), humanize.IBytes(s.BytesOut))
}

func referCommand(cfg *Config) cli.Command {
	return cli.Command{
		Name:  "refer",
		Usage: "convert a .dna file to a genomic coordinate BED file, or back",
		Description: "refer is a steganographic transport layer. It replaces the raw DNA\n" +
			"   bases in an encoded file with coordinates pointing to real locations\n" +
			"   in the human reference genome (hg38). The output is a standard BED\n" +
			"   file indistinguishable from routine genomics annotation.\n\n" +
			"   The operation is fully offline: all coordinate translation uses a\n" +
			"   local lookup table built by dendec-buildtable.\n\n" +
			"Examples:\n" +
			"   dendec refer -r --from secret.pdf.dna --to annotation_batch7.bed\n" +
			"   dendec refer -u --from annotation_batch7.bed --to secret.pdf.dna",
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "refer, r",
				Usage: "convert .dna to a genomic coordinate BED file",
			},
			cli.BoolFlag{
				Name:  "unrefer, u",
				Usage: "reconstruct .dna from a genomic coordinate BED file",
			},
			cli.StringFlag{
				Name:     "from",
				Usage:    "input file `PATH` (.dna for -r, .bed for -u)",
				Required: true,
			},
			cli.StringFlag{
				Name:     "to",
				Usage:    "output file `PATH` (.bed for -r, .dna for -u)",
				Required: true,
			},
			cli.StringFlag{
				Name:  "table",
				Usage: "lookup table `PATH` (default: refer.table from the config file)",
			},
		},
		Action: func(c *cli.Context) error {
			return runRefer(c, cfg)
		},
	}
}

func runRefer(c *cli.Context, cfg *Config) error {
	toBED := c.Bool("refer")
	fromBED := c.Bool("unrefer")
	if toBED && fromBED {
		return errors.New("refer requires either -r (refer) or -u (unrefer), not both")
	}
	if !toBED && !fromBED {
		return errors.New("refer requires either -r or -u flag")
	}

	settings, err := loadSettings(c.GlobalString("config"))
	if err != nil {
		return err
	}

	tablePath := c.String("table")
	if tablePath == "" {
		tablePath = settings.ReferTable
	}
	if tablePath == "" {
		return errors.New("no lookup table configured: pass --table or set refer.table in the config file")
	}

	table, err := refer.LoadTableFile(tablePath)
	if err != nil {
		return err
	}

	from, to := c.String("from"), c.String("to")

	if toBED {
		data, err := os.ReadFile(from)
		if err != nil {
			return err
		}
		doc, err := table.ToBED(string(data))
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if _, err := doc.WriteTo(&buf); err != nil {
			return err
		}
		if err := os.WriteFile(to, buf.Bytes(), 0o644); err != nil {
			return err
		}
		fmt.Fprintf(cfg.Stderr, "Written to %s\n", to)
		return nil
	}

	f, err := os.Open(from)
	if err != nil {
		return err
	}
	doc, err := refer.ReadDocument(f)
	f.Close()
	if err != nil {
		return err
	}
	symbols, err := table.FromBED(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(to, []byte(symbols), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cfg.Stderr, "Written to %s\n", to)
	return nil
}
