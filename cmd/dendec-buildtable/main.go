package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/natefinch/atomic"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"github.com/dendec/dendec-go/refer"
)

const (
	version = "0.1.0"

	// defaultMaxPerEntry keeps the table around 3 MiB while leaving
	// the encoder several placements to choose from per 8-mer.
	defaultMaxPerEntry = 8
)

func main() {
	if err := run(os.Args); err != nil {
		fatal("Error: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func run(args []string) error {
	app := cli.NewApp()
	app.Name = "dendec-buildtable"
	app.Usage = "build the refer lookup table from reference genome FASTA files"
	app.Version = version
	app.Flags = []cli.Flag{
		cli.StringSliceFlag{
			Name:  "fasta",
			Usage: "gzip-compressed FASTA `PATH` (repeat for multiple files)",
		},
		cli.StringFlag{
			Name:  "out, o",
			Value: "table.bin",
			Usage: "write the table to `PATH`",
		},
		cli.IntFlag{
			Name:  "max-per-entry",
			Value: defaultMaxPerEntry,
			Usage: "store at most `N` coordinates per 8-mer",
		},
	}
	app.Action = buildTable
	return app.Run(args)
}

func buildTable(c *cli.Context) error {
	fastas := c.StringSlice("fasta")
	if len(fastas) == 0 {
		return errors.New("provide at least one --fasta file")
	}
	maxPerEntry := c.Int("max-per-entry")
	if maxPerEntry < 1 || maxPerEntry > 255 {
		return errors.New("max-per-entry must be between 1 and 255")
	}

	log := newLogger()
	b := refer.NewTableBuilder(maxPerEntry)

	var total uint64
	for _, path := range fastas {
		if b.Full() {
			log.Info("table fully saturated, skipping remaining files")
			break
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		n, err := scanFASTA(f, b, log)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		total += n
	}

	covered, saturated := b.Covered(), b.Saturated()
	log.Infof("scanned %s bases total", humanize.Comma(int64(total)))
	log.Infof("coverage: %d/%d 8-mers (%.2f%%), %d saturated",
		covered, refer.TableSize, float64(covered)/refer.TableSize*100, saturated)
	if missing := refer.TableSize - covered; missing > 0 {
		log.Warnf("%d 8-mers have no placement; refer will fail on sequences that hit them", missing)
	}

	var buf bytes.Buffer
	if _, err := b.WriteTo(&buf); err != nil {
		return err
	}
	size := uint64(buf.Len())

	out := c.String("out")
	if err := atomic.WriteFile(out, &buf); err != nil {
		return err
	}
	log.Infof("wrote %s (%s)", out, humanize.IBytes(size))
	return nil
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	return l
}
