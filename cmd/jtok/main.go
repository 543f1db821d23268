// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jtok prints the lexical tokens of JSON input.
//
// Usage:
//
//	jtok [flags] [file ...]
//
// With no files, or the file "-", jtok reads standard input. By default each
// token is printed on a line of its own, as its kind and quoted value. With
// -count, jtok prints the number of tokens of each kind in each file.
package main

import (
	"bufio"
	"cmp"
	"errors"
	"flag"
	"fmt"
	"io"
	"iter"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/creachadair/jtok"
	"github.com/creachadair/jtok/internal/config"
	"github.com/creachadair/jtok/internal/pkginfo"
	"github.com/golang/glog"
	"golang.org/x/sync/errgroup"
)

// flags holds the command-line settings of the program.
type flags struct {
	fs *flag.FlagSet

	bufferSize    int
	strictNumbers bool
	chunkSize     int
	count         bool
	jobs          int
	configFile    string
	version       bool
}

func newFlags(fs *flag.FlagSet) *flags {
	f := &flags{fs: fs}
	fs.IntVar(&f.bufferSize, "buffer-size", 0, "Maximum characters per string chunk (0 for the default)")
	fs.BoolVar(&f.strictNumbers, "strict-numbers", false, "Reject redundant leading zeros in numbers")
	fs.IntVar(&f.chunkSize, "chunk-size", 0, "If positive, read input in chunks of this many bytes")
	fs.BoolVar(&f.count, "count", false, "Print token counts per file instead of tokens")
	fs.IntVar(&f.jobs, "j", 0, "Maximum files counted concurrently (0 for one per CPU)")
	fs.StringVar(&f.configFile, "config", "", "Read settings from this HuJSON file")
	fs.BoolVar(&f.version, "version", false, "Print the program version and exit")
	return f
}

// settings returns the configuration for this run: the contents of the
// config file, if any, overridden by flags set on the command line.
func (f *flags) settings() (*config.Config, error) {
	cfg := new(config.Config)
	if f.configFile != "" {
		c, err := config.Load(f.configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "buffer-size":
			cfg.BufferSize = f.bufferSize
		case "strict-numbers":
			cfg.StrictNumbers = f.strictNumbers
		case "chunk-size":
			cfg.ChunkSize = f.chunkSize
		case "j":
			cfg.Jobs = f.jobs
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	flag.Set("logtostderr", "true")
	f := newFlags(flag.CommandLine)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [file ...]\n\nFlags:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	defer glog.Flush()

	if f.version {
		info, ok := pkginfo.Current()
		if !ok {
			info = pkginfo.Info{Path: "jtok", Version: "(devel)"}
		}
		fmt.Println(info)
		return
	}

	cfg, err := f.settings()
	if err != nil {
		glog.Exitf("Invalid settings: %v", err)
	}
	names := flag.Args()
	if len(names) == 0 {
		names = []string{"-"}
	}

	if f.count {
		err = countFiles(os.Stdout, names, cfg)
	} else {
		err = printFiles(os.Stdout, names, cfg)
	}
	if err != nil {
		glog.Exit(err)
	}
}

// printFiles writes the tokens of each named file to w, one per line. When
// there is more than one file, each line is prefixed with the file name.
func printFiles(w io.Writer, names []string, cfg *config.Config) error {
	bw := bufio.NewWriter(w)
	for _, name := range names {
		err := tokenizeFile(name, cfg, func(tok jtok.Token) {
			if len(names) > 1 {
				fmt.Fprint(bw, name, ": ")
			}
			fmt.Fprint(bw, tok.Kind, "\t", jtok.Quote(tok.Value), "\n")
		})
		if err != nil {
			bw.Flush()
			return err
		}
	}
	return bw.Flush()
}

// counts records the number of tokens of each kind.
type counts [jtok.Colon + 1]int

func (c *counts) total() (n int) {
	for _, v := range c {
		n += v
	}
	return n
}

// countFiles counts the tokens of each named file, processing up to
// cfg.Jobs files concurrently, and writes a summary to w in the order the
// files were named.
func countFiles(w io.Writer, names []string, cfg *config.Config) error {
	results := make([]counts, len(names))

	var g errgroup.Group
	g.SetLimit(cmp.Or(cfg.Jobs, runtime.NumCPU()))
	for i, name := range names {
		g.Go(func() error {
			return tokenizeFile(name, cfg, func(tok jtok.Token) { results[i][tok.Kind]++ })
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 4, 8, 1, ' ', 0)
	for i, name := range names {
		fmt.Fprintf(tw, "%s\t%d tokens\n", name, results[i].total())
		for k, n := range results[i] {
			if n != 0 {
				fmt.Fprintf(tw, "\t%v\t%d\n", jtok.Kind(k), n)
			}
		}
	}
	return tw.Flush()
}

// tokenizeFile calls f for each token of the named file. The name "-"
// denotes standard input.
func tokenizeFile(name string, cfg *config.Config, f func(jtok.Token)) error {
	var r io.Reader = os.Stdin
	if name != "-" {
		fp, err := os.Open(name)
		if err != nil {
			return err
		}
		defer fp.Close()
		r = fp
	}

	start := time.Now()
	n, err := tokenize(r, cfg, f)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	glog.V(1).Infof("%s: %d tokens in %v", name, n, time.Since(start).Round(time.Microsecond))
	return nil
}

// tokenize calls f for each token read from r, and reports the number of
// tokens delivered.
func tokenize(r io.Reader, cfg *config.Config, f func(jtok.Token)) (int, error) {
	var seq iter.Seq2[jtok.Token, error]
	var rerr error
	if cfg.ChunkSize > 0 {
		seq = jtok.Tokenize(readChunks(r, cfg.ChunkSize, &rerr), cfg.Options())
	} else {
		seq = jtok.TokenizeReader(r, cfg.Options())
	}

	var n int
	for tok, err := range seq {
		if rerr != nil {
			// The input was cut short by a read error; report that instead of
			// the syntax error it may have caused.
			return n, rerr
		} else if err != nil {
			return n, err
		}
		f(tok)
		n++
	}
	return n, rerr
}

// readChunks returns a sequence of chunks of at most n bytes read from r.
// A read error ends the sequence and is stored in *errp.
func readChunks(r io.Reader, n int, errp *error) iter.Seq[string] {
	return func(yield func(string) bool) {
		buf := make([]byte, n)
		for {
			nr, err := r.Read(buf)
			if nr > 0 && !yield(string(buf[:nr])) {
				return
			}
			if errors.Is(err, io.EOF) {
				return
			} else if err != nil {
				*errp = err
				return
			}
		}
	}
}
