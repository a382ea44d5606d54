// tiercache-bench exercises a tiercache instance with a mixed
// read/write workload and prints hit, promotion and eviction counters.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tiercache/tiercache"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	cmd := &cli.Command{
		Name:  "tiercache-bench",
		Usage: "load exerciser for the multi-tier cache",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "JSON config `FILE`; flags override it"},
			&cli.IntFlag{Name: "fast-capacity", Usage: "fast tier capacity"},
			&cli.IntFlag{Name: "medium-capacity", Usage: "medium tier capacity"},
			&cli.IntFlag{Name: "slow-capacity", Usage: "slow tier capacity"},
			&cli.StringFlag{Name: "default-ttl", Usage: "ttl for written entries, e.g. 500ms"},
			&cli.StringFlag{Name: "sweep-interval", Usage: "how often the sweeper runs"},
			&cli.IntFlag{Name: "ops", Usage: "operations to run"},
			&cli.IntFlag{Name: "keys", Usage: "distinct keys in the workload"},
			&cli.IntFlag{Name: "write-percent", Usage: "share of writes, 0-100"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
		},
		Action: run,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func run(ctx context.Context, cmd *cli.Command) error {
	conf := defaultBenchConfig()
	if path := cmd.String("config"); path != "" {
		fileConf, err := loadConfigFile(path)
		if err != nil {
			return err
		}
		merge(conf, fileConf)
	}
	merge(conf, &benchConfig{
		FastCapacity:   int(cmd.Int("fast-capacity")),
		MediumCapacity: int(cmd.Int("medium-capacity")),
		SlowCapacity:   int(cmd.Int("slow-capacity")),
		DefaultTTL:     cmd.String("default-ttl"),
		SweepInterval:  cmd.String("sweep-interval"),
		Ops:            int(cmd.Int("ops")),
		Keys:           int(cmd.Int("keys")),
		WritePercent:   int(cmd.Int("write-percent")),
		LogLevel:       cmd.String("log-level"),
	})
	rc, err := parse(conf)
	if err != nil {
		return err
	}

	level, err := log.ParseLevel(rc.logLevel)
	if err != nil {
		return err
	}
	logger := &log.Logger{Handler: clihandler.Default, Level: level}

	c := tiercache.New(logger, rc.cache)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	sweeper := &tiercache.Sweeper{Cache: c, Interval: rc.sweepInterval, Log: logger}
	go func() { _ = sweeper.Run(sweepCtx) }()

	elapsed, err := workload(ctx, c, rc)
	if err != nil {
		return err
	}
	report(c, rc, elapsed)
	return nil
}

var levels = [...]tiercache.Level{tiercache.Fast, tiercache.Medium, tiercache.Slow}

func workload(ctx context.Context, c tiercache.Cache, rc runConfig) (time.Duration, error) {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	key := func() string { return fmt.Sprintf("key-%d", rnd.Intn(rc.keys)) }

	start := time.Now()
	for i := 0; i < rc.ops; i++ {
		if rnd.Intn(100) < rc.writePercent {
			level := levels[rnd.Intn(len(levels))]
			if err := c.Set(ctx, key(), i, 0, level); err != nil {
				return 0, err
			}
			continue
		}
		if _, _, err := c.Get(ctx, key()); err != nil {
			return 0, err
		}
	}
	return time.Since(start), nil
}

func report(c tiercache.Cache, rc runConfig, elapsed time.Duration) {
	stats := c.Stats()
	opsPerSec := float64(rc.ops) / elapsed.Seconds()
	fmt.Printf("ran %s ops in %v (%s ops/sec)\n",
		humanize.Comma(int64(rc.ops)), elapsed.Round(time.Millisecond),
		humanize.CommafWithDigits(opsPerSec, 0))
	fmt.Printf("hits %s  misses %s  promotions %s  evictions %s  expired %s\n",
		humanize.Comma(stats.Hits), humanize.Comma(stats.Misses),
		humanize.Comma(stats.Promotions), humanize.Comma(stats.Evictions),
		humanize.Comma(stats.Expired))
}
