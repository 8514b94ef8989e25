package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/NguyenPhongVN/gohooks/hooks"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting hooks async benchmark, please wait...")
	defer log.Print("Finished hooks async benchmark")

	cfgs := []asyncBenchConfig{
		{
			name:     "single feed",
			scopes:   1,
			elements: 100_000,
		},
		{
			name:     "chat room",
			scopes:   50,
			elements: 5_000,
		},
		{
			name:     "dashboard",
			scopes:   500,
			elements: 500,
		},
		{
			name:     "wide fanout",
			scopes:   2_000,
			elements: 100,
		},
	}

	type results struct {
		renders  int
		duration time.Duration
	}

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{
		"test", "scopes", "elements", "events", "renders", "time", "eventRate",
	})

	testRepeats := 5
	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)

		best := &results{duration: time.Hour}
		for i := 0; i < testRepeats; i++ {
			renders, duration, err := runOnce(cfg)
			if err != nil {
				log.Fatalf("%s run %d: %v", cfg.name, i, err)
			}
			if duration < best.duration {
				best.duration = duration
				best.renders = renders
			}
		}

		events := int64(cfg.scopes) * int64(cfg.elements)
		eventRate := float64(events) / (float64(best.duration) / float64(time.Millisecond))
		tbl.Append([]string{
			cfg.name,
			humanize.Comma(int64(cfg.scopes)),
			humanize.Comma(int64(cfg.elements)),
			humanize.Comma(events),
			humanize.Comma(int64(best.renders)),
			fmt.Sprint(best.duration),
			humanize.Comma(int64(eventRate)) + "/ms",
		})
	}
	tbl.Render()
}

type asyncBenchConfig struct {
	name     string // friendly name for the test, should be unique
	scopes   int    // number of scopes subscribed to their own feed
	elements int    // elements each feed emits before closing
}

// runOnce subscribes every scope to a closing publisher, drains the runtime,
// and re-renders until no scope is invalid.
func runOnce(cfg asyncBenchConfig) (renders int, duration time.Duration, err error) {
	rt := hooks.NewRuntime()

	drivers := make([]*hooks.Driver, cfg.scopes)
	for i := range drivers {
		drivers[i] = hooks.NewDriver(rt, func(s *hooks.Scope) {
			hooks.UsePublisher(s, "feed", hooks.Once(), func(ctx context.Context) <-chan int {
				out := make(chan int, 64)
				go func() {
					defer close(out)
					for n := 0; n < cfg.elements; n++ {
						select {
						case out <- n:
						case <-ctx.Done():
							return
						}
					}
				}()
				return out
			})
		})
	}

	start := time.Now()
	for _, d := range drivers {
		d.Render()
		renders++
	}
	for {
		if err := rt.Settle(time.Minute); err != nil {
			return renders, 0, err
		}
		progressed := false
		for _, d := range drivers {
			if d.RenderIfNeeded() {
				renders++
				progressed = true
			}
		}
		if !progressed {
			break
		}
	}
	duration = time.Since(start)

	for _, d := range drivers {
		d.Dispose()
	}
	return renders, duration, nil
}
