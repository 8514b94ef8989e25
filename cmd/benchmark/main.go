package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/NguyenPhongVN/gohooks/hooks"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/urfave/cli/v3"
)

const (
	passesKey  = "passes"
	profileKey = "cpuprofile"
)

func main() {
	cmd := &cli.Command{
		Name:  "benchmark",
		Usage: "Measure render pass latency of the hooks runtime",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:  passesKey,
				Usage: "Timed passes per configuration",
				Value: 100,
			},
			&cli.StringFlag{
				Name:  profileKey,
				Usage: "Write a CPU profile to this file",
			},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

var (
	scopeCounts = []int{1, 10, 100, 1_000}
	hookDepths  = []int{1, 10, 100}
)

func run(ctx context.Context, cmd *cli.Command) error {
	if path := cmd.String(profileKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}
	iters := int(cmd.Uint(passesKey))

	tbl := table.NewWriter()
	tbl.SetTitle("Hooks Render Passes")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, scopes := range scopeCounts {
		for _, depth := range hookDepths {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			rt := hooks.NewRuntime()
			input := 0
			drivers := make([]*hooks.Driver, scopes)
			for i := range drivers {
				drivers[i] = hooks.NewDriver(rt, renderChain(&input, depth))
				drivers[i].Render()
			}

			for i := 0; i < iters; i++ {
				input++
				start := time.Now()
				for _, d := range drivers {
					d.Render()
				}
				tach.AddTime(time.Since(start))
			}

			for _, d := range drivers {
				d.Dispose()
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("passes: %d scopes * %d hooks", scopes, depth),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	tbl.Render()
	return nil
}

// renderChain builds a render function with a memo chain of the given depth
// feeding one deferred effect, all keyed off a shared external input.
func renderChain(input *int, depth int) hooks.RenderFunc {
	return func(s *hooks.Scope) {
		last := *input
		for j := 0; j < depth; j++ {
			v := last
			last = hooks.UseMemo(s, fmt.Sprintf("step-%d", j), hooks.DepsOf(v), func() int {
				return v + 1
			})
		}
		final := last
		hooks.UseEffect(s, "observe", hooks.DepsOf(final), func() hooks.Cleanup {
			return nil
		})
	}
}
