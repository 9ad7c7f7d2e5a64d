package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/shaban/vmremote"
)

// watchList is the YAML file format for dump/watch parameter sets.
type watchList struct {
	Parameters []string `yaml:"parameters"`
}

func loadWatchList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watch list: %w", err)
	}

	var list watchList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("parse watch list %s: %w", path, err)
	}
	if len(list.Parameters) == 0 {
		return nil, fmt.Errorf("watch list %s names no parameters", path)
	}
	return list.Parameters, nil
}

// resolveNames merges -list file entries with positional names.
func resolveNames(listPath string, args []string) ([]string, error) {
	names := append([]string(nil), args...)
	if listPath != "" {
		fromFile, err := loadWatchList(listPath)
		if err != nil {
			return nil, err
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no parameters given (positional names or -list file)")
	}
	return names, nil
}

func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	listPath := fs.String("list", "", "YAML file naming the parameters to capture")
	outPath := fs.String("o", "", "write the snapshot to a file instead of stdout")
	if err := fs.Parse(args); err != nil {
		return err
	}

	names, err := resolveNames(*listPath, fs.Args())
	if err != nil {
		return err
	}

	client, cleanup, err := openClient()
	if err != nil {
		return err
	}
	defer cleanup()

	snap, err := client.Snapshot(names)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return snap.SaveToWriter(out)
}

func runWatch(args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	listPath := fs.String("list", "", "YAML file naming parameters to re-read on change")
	interval := fs.Duration("interval", 20*time.Millisecond, "base poll interval")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Watching without a parameter list still reports dirty ticks.
	var names []string
	if *listPath != "" || fs.NArg() > 0 {
		resolved, err := resolveNames(*listPath, fs.Args())
		if err != nil {
			return err
		}
		names = resolved
	}

	client, cleanup, err := openClient()
	if err != nil {
		return err
	}
	defer cleanup()

	watcher := vmremote.NewWatcher(client)
	if err := watcher.SetPollInterval(*interval, 10*(*interval)); err != nil {
		return err
	}

	watcher.OnDirty(func() {
		stamp := time.Now().Format("15:04:05.000")
		if len(names) == 0 {
			color.Cyan("%s parameters changed", stamp)
			return
		}
		for _, name := range names {
			value, err := client.Parameter(name)
			if err != nil {
				color.Red("%s %s: %v", stamp, name, err)
				continue
			}
			fmt.Printf("%s %s = %s\n", stamp, name, value)
		}
	})

	if err := watcher.Start(); err != nil {
		return err
	}
	defer watcher.Stop()

	color.Green("watching (ctrl-c to stop)")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	return nil
}
