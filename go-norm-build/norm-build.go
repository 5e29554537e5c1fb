// Copyright 2016 aletheia7. All rights reserved. Use of this source code is
// governed by a BSD-2-Clause license that can be found in the LICENSE file.

// norm-build builds libnorm and libprotokit for the cgo engine (-tags norm).
// It is run by go generate from the package directory.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
)

var (
	norm_dir = pflag.String("dir", "norm", "libnorm source directory")
	goos     = pflag.String("goos", "", "target os, default: $GOOS or runtime.GOOS")
	clean    = pflag.Bool("clean", true, "run waf distclean and make clean first")
	log      = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

type c struct {
	cmd  string
	args []string
	dir  string
	env  []string
}

func main() {
	pflag.Parse()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := run(ctx); err != nil {
		log.Error("norm-build", "err", err)
		os.Exit(1)
	}
}

func target_os() string {
	t := *goos
	if t == "" {
		t = os.Getenv("GOOS")
	}
	if t == "" {
		t = runtime.GOOS
	}
	if t == "darwin" {
		t = "macosx"
	}
	return t
}

func run(ctx context.Context) error {
	t := target_os()
	mk := filepath.Join(*norm_dir, "makefiles")
	var cmds []c
	if *clean {
		cmds = append(cmds, c{dir: *norm_dir, cmd: "./waf", args: []string{"distclean", "--color", "yes"}})
	}
	cmds = append(cmds,
		c{dir: *norm_dir, cmd: "./waf", args: []string{"configure", "--color", "yes"}},
		c{dir: *norm_dir, cmd: "./waf", args: []string{"--color", "yes"}},
	)
	if *clean {
		cmds = append(cmds, c{dir: mk, cmd: "make", args: []string{"-f", "Makefile." + t, "clean"}})
	}
	cmds = append(cmds, c{dir: mk, cmd: "make", args: []string{"-f", "Makefile." + t}})
	for _, cmd := range cmds {
		if err := ctx.Err(); err != nil {
			return nil
		}
		if err := do_cmd(ctx, cmd); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	if t == "linux" {
		log.Info("ignore waf configure warning: Checking for library netfilter_queue: not found, it's not used by protokit")
	}
	return nil
}

func do_cmd(ctx context.Context, in c) error {
	rp, wp := io.Pipe()
	cmd := exec.CommandContext(ctx, in.cmd, in.args...)
	cmd.Dir = in.dir
	if in.env != nil {
		cmd.Env = append(os.Environ(), in.env...)
	}
	cmd.Stderr = wp
	cmd.Stdout = wp
	done := make(chan struct{})
	go func() {
		defer close(done)
		scanner := bufio.NewScanner(rp)
		for scanner.Scan() {
			fmt.Println(scanner.Text())
		}
	}()
	log.Info("run", "dir", in.dir, "cmd", strings.Join(cmd.Args, " "))
	err := cmd.Run()
	wp.Close()
	<-done
	if err != nil {
		return fmt.Errorf("%v: %w", strings.Join(cmd.Args, " "), err)
	}
	return nil
}
