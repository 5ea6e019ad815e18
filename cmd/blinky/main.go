// Command blinky runs the canonical uTask example from spec.md §8 scenario
// 1: a task that posts id=0 to itself, whose handler alternates between
// posting id=1 a second later and id=0 two seconds after that.
//
// Grounded on QubicOS-Spark/main_host.go's flag parsing and
// signal.NotifyContext-based graceful shutdown.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"utaskgo/hostport"
	"utaskgo/internal/buildinfo"
	"utaskgo/kernel"
)

func main() {
	var (
		tickHz  int
		verbose bool
	)
	flag.IntVar(&tickHz, "tick-hz", 1000, "Simulated tick rate in Hz.")
	flag.BoolVar(&verbose, "v", false, "Enable debug-level diagnostics.")
	flag.Parse()

	log := logrus.New()
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}
	log.Infof("blinky %s starting", buildinfo.Short())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, tickHz, log); err != nil && err != context.Canceled {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, tickHz int, log *logrus.Logger) error {
	diag := kernel.NewDiagnostics(log)
	var p hostport.Port
	k := kernel.New(kernel.DefaultConfig(), &p, diag)
	k.SetIdleHook(func() { time.Sleep(time.Millisecond) })

	app := &kernel.Task{}
	app.Handler = func(task *kernel.Task, id int, _ []byte) {
		log.Infof("tick=%d id=%d", k.GetTick(), id)
		switch id {
		case 0:
			_ = k.Send(task, 1, nil, k.Seconds(1))
		case 1:
			_ = k.Send(task, 0, nil, k.Seconds(2))
		}
	}

	if err := k.Send(app, 0, nil, 0); err != nil {
		return err
	}

	driver := hostport.NewDriver(time.Second/time.Duration(tickHz), k.Tick)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return driver.Run(gctx) })
	g.Go(func() error { return k.Loop(gctx) })
	return g.Wait()
}
