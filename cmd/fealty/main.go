package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/freeeve/fealty/internal/config"
	"github.com/freeeve/fealty/internal/logger"
	"github.com/freeeve/fealty/internal/repository/redis"
	"github.com/freeeve/fealty/pkg/realm"
	"github.com/freeeve/fealty/pkg/scoring"
)

type options struct {
	snapshot string
	redisURL string
	world    string
	mode     string
	clan     string
	kingdom  string
	explain  bool
	jsonOut  bool
	debug    bool
	worlds   bool
}

func main() {
	logger.Init()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			log.Error().Err(err).Msg("fealty failed")
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	opts, err := parseFlags(args, cfg)
	if err != nil {
		return err
	}
	if opts.debug {
		logger.SetDebug()
	}
	if opts.worlds {
		return listWorlds(ctx, opts, out)
	}

	s, err := loadSnapshot(ctx, opts)
	if err != nil {
		return err
	}
	log.Debug().
		Int("clans", len(s.Clans())).
		Int("kingdoms", len(s.Kingdoms())).
		Int("wars", len(s.Wars())).
		Float64("now", float64(s.Now())).
		Msg("Snapshot loaded")

	sc := scoring.NewDefaultScorer(scoring.WithLogger(logger.Component("scoring")))
	rep, err := evaluate(sc, s, opts)
	if err != nil {
		return err
	}
	if opts.jsonOut {
		return rep.writeJSON(out)
	}
	return rep.writeText(out)
}

func parseFlags(args []string, cfg *config.Config) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("fealty", flag.ContinueOnError)
	fs.StringVar(&opts.snapshot, "snapshot", cfg.SnapshotFile, "Path to a JSON world snapshot")
	fs.StringVar(&opts.redisURL, "redis", cfg.RedisURL, "Redis URL to read the snapshot from")
	fs.StringVar(&opts.world, "world", cfg.WorldID, "World id of the snapshot in Redis")
	fs.StringVar(&opts.mode, "mode", cfg.Mode, "Score mode: join, leave, recruit or table")
	fs.StringVar(&opts.clan, "clan", "", "Clan id")
	fs.StringVar(&opts.kingdom, "kingdom", "", "Kingdom id")
	fs.BoolVar(&opts.explain, "explain", false, "Print the terms behind each score")
	fs.BoolVar(&opts.jsonOut, "json", false, "Output results as JSON")
	fs.BoolVar(&opts.debug, "debug", false, "Log score breakdowns at debug level")
	fs.BoolVar(&opts.worlds, "worlds", false, "List the worlds with a snapshot in Redis and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	mode := config.Config{Mode: opts.mode}
	if err := mode.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// loadSnapshot reads the snapshot from a file, or from Redis when no file is given.
func loadSnapshot(ctx context.Context, opts *options) (*realm.Snapshot, error) {
	var (
		data   []byte
		source string
		err    error
	)
	switch {
	case opts.snapshot != "":
		source = opts.snapshot
		data, err = os.ReadFile(opts.snapshot)
		if err != nil {
			return nil, fmt.Errorf("read snapshot file: %w", err)
		}
	case opts.redisURL != "":
		source = "redis:" + opts.world
		c, err := redis.NewClient(ctx, opts.redisURL)
		if err != nil {
			return nil, err
		}
		defer c.Close()
		data, err = c.GetSnapshot(ctx, opts.world)
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("no snapshot source: set -snapshot or -redis")
	}

	logger.LogDocument(log.Logger, source, data)
	s, err := realm.DecodeBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	return s, nil
}

// listWorlds prints the ids of every world published to Redis.
func listWorlds(ctx context.Context, opts *options, out io.Writer) error {
	if opts.redisURL == "" {
		return errors.New("-worlds requires -redis")
	}
	c, err := redis.NewClient(ctx, opts.redisURL)
	if err != nil {
		return err
	}
	defer c.Close()

	worlds, err := c.Worlds(ctx)
	if err != nil {
		return err
	}
	if opts.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string][]string{"worlds": worlds})
	}
	for _, id := range worlds {
		if _, err := fmt.Fprintln(out, id); err != nil {
			return err
		}
	}
	return nil
}
