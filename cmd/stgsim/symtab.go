package main

import (
	"context"
	"fmt"
	"io"
	"runtime"

	"github.com/charmbracelet/log"
	"github.com/maruel/subcommands"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/stgkit"
	"github.com/hupe1980/stgkit/resource"
	"github.com/hupe1980/stgkit/stg"
)

func cmdSymtab() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "symtab [-symbols N] [-scopes N] [-jobs N] [-parallel N] [-mmap] [-budget BYTES] [-seed S]",
		ShortDesc: "simulate symbol-table construction",
		LongDesc: `Simulate symbol-table construction.

Each job declares symbols in randomly nested scopes. Symbol records live in
an arena with a type sidecar; a hash map binds names to their innermost
symbol. Closing a scope unhides shadowed symbols and returns the records to
the arena free list, so later scopes reuse them.

 $ stgsim symtab -symbols 100000 -scopes 16 -jobs 8 -parallel 2
 $ stgsim symtab -mmap -budget 1048576 -log_level debug
`,
		CommandRun: func() subcommands.CommandRun {
			c := &symtabRun{}
			c.init()
			return c
		},
	}
}

type symtabRun struct {
	subcommands.CommandRunBase
	logFlags

	symbols int
	scopes  int
	names   int
	skew    float64
	jobs     int
	parallel int
	mmap     bool
	budget   int64
	seed     int64
	debug    bool
}

func (c *symtabRun) init() {
	c.logFlags.register(&c.Flags)
	c.Flags.IntVar(&c.symbols, "symbols", 10000, "symbols declared per job")
	c.Flags.IntVar(&c.scopes, "scopes", 8, "maximum scope nesting depth")
	c.Flags.IntVar(&c.names, "names", 0, "identifier pool size (default symbols/4)")
	c.Flags.Float64Var(&c.skew, "skew", 1.1, "Zipf exponent of name reuse, 0 for uniform")
	c.Flags.IntVar(&c.jobs, "jobs", 1, "number of independent workloads")
	c.Flags.IntVar(&c.parallel, "parallel", runtime.GOMAXPROCS(0), "maximum number of workloads running at once")
	c.Flags.BoolVar(&c.mmap, "mmap", false, "back arenas with anonymous mmap instead of the Go heap")
	c.Flags.Int64Var(&c.budget, "budget", 0, "memory budget in bytes shared by all jobs, 0 for unlimited")
	c.Flags.Int64Var(&c.seed, "seed", 1, "random seed of job 0, job i uses seed+i")
	c.Flags.BoolVar(&c.debug, "debug_checks", false, "enable free-list and duplicate-key checks")
}

func (c *symtabRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	if len(args) != 0 {
		fmt.Fprintf(a.GetErr(), "%s: unexpected arguments %q\n", a.GetName(), args)
		return 2
	}
	if err := c.logFlags.setup(a.GetErr()); err != nil {
		fmt.Fprintf(a.GetErr(), "%s: %v\n", a.GetName(), err)
		return 2
	}
	if c.jobs < 1 || c.parallel < 1 || c.symbols < 0 {
		fmt.Fprintf(a.GetErr(), "%s: -jobs and -parallel must be positive and -symbols non-negative\n", a.GetName())
		return 2
	}

	if err := c.run(context.Background(), a.GetOut()); err != nil {
		log.Error("symtab failed", "err", err)
		return 1
	}
	return 0
}

// runJob runs one workload; tests replace it to observe scheduling.
var runJob = runSymtab

func (c *symtabRun) run(ctx context.Context, w io.Writer) error {
	ctrl := resource.NewController(resource.Config{
		MemoryLimitBytes: c.budget,
		MaxWorkers:       int64(c.parallel),
	})

	var opts []stg.Option
	opts = append(opts, stg.WithBudget(ctrl))
	if c.mmap {
		opts = append(opts, stg.WithMemory(stg.MmapMemory()))
	}

	results := make([]symtabResult, c.jobs)
	g, ctx := errgroup.WithContext(ctx)
	for job := range c.jobs {
		g.Go(func() error {
			if !ctrl.TryAcquireWorker() {
				log.Debug("waiting for a worker slot", "job", job)
				if err := ctrl.AcquireWorker(ctx); err != nil {
					return err
				}
			}
			defer ctrl.ReleaseWorker()

			cfg := symtabConfig{
				Symbols:  c.symbols,
				Depth:    c.scopes,
				Names:    c.names,
				Skew:     c.skew,
				Seed:     c.seed + int64(job),
				Debug:    c.debug,
				ArenaOpt: opts,
			}
			var (
				res symtabResult
				err error
			)
			if ferr := stgkit.Catch(func() { res, err = runJob(cfg) }); ferr != nil {
				return fmt.Errorf("job %d: %w", job, ferr)
			}
			if err != nil {
				return fmt.Errorf("job %d: %w", job, err)
			}
			results[job] = res
			log.Debug("job done", "job", job, "declared", res.Declared, "max_live", res.MaxLive)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	fmt.Fprintf(w, "%-4s %9s %9s %8s %8s %6s %8s %8s %6s %8s %8s\n",
		"JOB", "DECLARED", "LOOKUPS", "HITS", "MAXLIVE", "DEPTH", "LEN", "SIZE", "GROWS", "REUSED", "TABLE")
	for job, r := range results {
		fmt.Fprintf(w, "%-4d %9d %9d %8d %8d %6d %8d %8d %6d %8d %8d\n",
			job, r.Declared, r.Lookups, r.Hits, r.MaxLive, r.MaxDepth,
			r.ArenaLen, r.ArenaSize, r.ArenaStats.Grows, r.ArenaStats.FreeHits, r.TableCap)
	}
	if limit := ctrl.MemoryLimit(); limit > 0 {
		fmt.Fprintf(w, "peak arena memory: %d bytes of %d\n", ctrl.PeakMemoryUsage(), limit)
	} else {
		fmt.Fprintf(w, "peak arena memory: %d bytes\n", ctrl.PeakMemoryUsage())
	}
	return nil
}
