package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/bft-labs/envtap/internal/adapters/sqlite"
	"github.com/bft-labs/envtap/internal/synth"
	"github.com/bft-labs/envtap/pkg/envtap"
	"github.com/bft-labs/envtap/pkg/log"
)

func newRunCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive the synthetic Catch environment with random actions and log every step",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd.Context())
		},
	}

	f := cmd.Flags()
	f.StringVar(&c.cfg.Game, "game", c.cfg.Game, "game name used in sink paths")
	f.Float64Var(&c.cfg.Discount, "discount", c.cfg.Discount, "discount factor recorded with the run")
	f.BoolVar(&c.cfg.ConvertToString, "cvt-string", c.cfg.ConvertToString, "encode observations into frame tokens")
	f.BoolVar(&c.cfg.Train, "train", c.cfg.Train, "write the training sink")
	f.BoolVar(&c.cfg.Eval, "eval", c.cfg.Eval, "write the evaluation sink")
	f.StringVar(&c.cfg.EvalSuite, "eval-suite", c.cfg.EvalSuite, "evaluation suite name")
	f.IntVar(&c.cfg.FrameSkip, "frame-skip", c.cfg.FrameSkip, "raw ticks per step")
	f.IntVar(&c.cfg.Steps, "steps", c.cfg.Steps, "number of steps to take")
	f.IntVar(&c.cfg.Seed, "seed", c.cfg.Seed, "seed for the environment and the action policy")
	f.IntVar(&c.cfg.Height, "height", c.cfg.Height, "board height")
	f.IntVar(&c.cfg.Width, "width", c.cfg.Width, "board width")
	f.IntVar(&c.cfg.Channels, "channels", c.cfg.Channels, "frame channels")
	f.IntVar(&c.cfg.Actions, "actions", c.cfg.Actions, "action space size (at least 3)")
	f.IntVar(&c.cfg.Lives, "lives", c.cfg.Lives, "misses allowed per episode")
	return cmd
}

func (c *cli) run(ctx context.Context) (err error) {
	env, err := synth.New(synth.Config{
		Height:   c.cfg.Height,
		Width:    c.cfg.Width,
		Channels: c.cfg.Channels,
		Actions:  c.cfg.Actions,
		Lives:    c.cfg.Lives,
		Seed:     uint64(c.cfg.Seed),
	})
	if err != nil {
		return err
	}

	opts := []envtap.Option{envtap.WithLogger(log.NewZerologAdapterWithLogger(c.log))}
	if !c.cfg.NoRegistry {
		reg, err := c.openRegistry(ctx)
		if err != nil {
			return err
		}
		defer reg.Close()
		opts = append(opts, envtap.WithRegistry(reg))
	}

	adapter, err := envtap.New(ctx, env, envtap.Config{
		Game:            c.cfg.Game,
		Discount:        c.cfg.Discount,
		ConvertToString: c.cfg.ConvertToString,
		Train:           c.cfg.Train,
		Eval:            c.cfg.Eval,
		EvalSuite:       c.cfg.EvalSuite,
		Root:            c.cfg.Root,
		Project:         c.cfg.Project,
		FrameSkip:       c.cfg.FrameSkip,
	}, opts...)
	if err != nil {
		return fmt.Errorf("create adapter: %w", err)
	}
	defer func() {
		if cerr := adapter.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	policy := rand.New(rand.NewPCG(uint64(c.cfg.Seed), 0))
	actions := adapter.LegalActions()

	if _, err := adapter.Reset(ctx, nil); err != nil {
		return err
	}

	var episodes int
	var total float64
	for i := 0; i < c.cfg.Steps; i++ {
		if err := ctx.Err(); err != nil {
			c.log.Warn().Uint64("steps", adapter.Steps()).Msg("interrupted")
			break
		}
		_, reward, done, _, err := adapter.Step(ctx, actions[policy.IntN(len(actions))])
		if err != nil {
			return err
		}
		total += reward
		if done {
			episodes++
			if _, err := adapter.Reset(ctx, nil); err != nil {
				return err
			}
		}
	}

	fmt.Fprintf(c.out, "run      %s\n", adapter.Identity())
	fmt.Fprintf(c.out, "steps    %d\n", adapter.Steps())
	fmt.Fprintf(c.out, "episodes %d\n", episodes)
	fmt.Fprintf(c.out, "reward   %g\n", total)
	for _, mode := range []envtap.Mode{envtap.ModeTrain, envtap.ModeEval} {
		if loc, ok := adapter.SinkLocation(mode); ok {
			fmt.Fprintf(c.out, "%-8s %s\n", mode, loc)
		}
	}
	return nil
}

func (c *cli) openRegistry(ctx context.Context) (*sqlite.Registry, error) {
	if c.cfg.RegistryPath == "" {
		return nil, errors.New("registry path is empty")
	}
	if err := ensureParent(c.cfg.RegistryPath); err != nil {
		return nil, err
	}
	reg := sqlite.NewRegistry(c.cfg.RegistryPath)
	if err := reg.Init(ctx); err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	return reg, nil
}
