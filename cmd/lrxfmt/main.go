package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	ioutils "github.com/kvmet/tanukioke/internal/io"
	"github.com/kvmet/tanukioke/internal/lrx"
)

func main() {
	// Command line flags
	var (
		writeFlag = flag.Bool("w", false, "Write result to the source file instead of stdout")
		listFlag  = flag.Bool("l", false, "List files whose formatting differs")
	)

	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("lrxfmt - Validate and format LRX lyric files")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  lrxfmt [-w] [-l] <file.lrx>...")
		fmt.Println()
		flag.PrintDefaults()
		os.Exit(2)
	}

	exit := 0
	for _, path := range flag.Args() {
		if err := format(path, *writeFlag, *listFlag); err != nil {
			fmt.Fprintln(os.Stderr, err)
			exit = 1
		}
	}
	os.Exit(exit)
}

func format(path string, write, list bool) error {
	content, err := ioutils.ReadTextFile(path)
	if err != nil {
		return err
	}

	doc, err := lrx.Parse(content)
	if err != nil {
		var perr *lrx.ParseError
		if errors.As(err, &perr) {
			return fmt.Errorf("%s:%d: %v", path, perr.Line, perr.Err)
		}
		return fmt.Errorf("%s: %w", path, err)
	}

	out := lrx.Serialize(doc)
	changed := out != content

	if list && changed {
		fmt.Println(path)
	}
	if write {
		if changed {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}
			return os.WriteFile(path, []byte(out), info.Mode().Perm())
		}
		return nil
	}
	if !list {
		fmt.Print(out)
	}
	return nil
}
