package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	logAdapter "github.com/bft-labs/envtap/internal/adapters/log"
	"github.com/bft-labs/envtap/internal/cliconfig"
)

const helpDescription = `
Record every transition of an environment to append-only CSV episode logs.

Highlights:
  - Frames are coerced to uint8 and optionally packed into compact tokens.
  - Each step is written and synced before the call returns.
  - Runs are keyed by a time-ordered token and listed in a local registry.
  - Configure via file ($HOME/.envtap/config.toml), .env / ENVTAP_* variables, or flags.
`

var exampleUsage = strings.TrimSpace(`
  envtap run --game catch --steps 5000 --eval
  envtap inspect experiments/envtap/catch/2024.05.01/<token>/<token>_catch_train_reward_history.csv
  envtap tail -f <sink.csv>
  envtap runs
  envtap decode <frame-token>
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries state shared by the subcommands.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	envPath string

	log    zerolog.Logger
	closer io.Closer
	out    io.Writer
}

func newRootCmd(out io.Writer) *cobra.Command {
	c := &cli{
		cfg:     cliconfig.DefaultConfig(),
		envPath: ".env",
		log:     zerolog.Nop(),
		out:     out,
	}

	root := &cobra.Command{
		Use:           "envtap",
		Short:         "Instrument environment steps into append-only episode logs",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if c.closer != nil {
				return c.closer.Close()
			}
			return nil
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.envtap/config.toml)")
	pf.StringVar(&c.envPath, "env-file", c.envPath, "dotenv file with ENVTAP_* variables")
	pf.StringVar(&c.cfg.Root, "root", c.cfg.Root, "experiments root directory")
	pf.StringVar(&c.cfg.Project, "project", c.cfg.Project, "project label below the root")
	pf.StringVar(&c.cfg.RegistryPath, "registry", c.cfg.RegistryPath, "run registry database (default: <root>/<project>/runs.db)")
	pf.BoolVar(&c.cfg.NoRegistry, "no-registry", c.cfg.NoRegistry, "do not record runs in the registry")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&c.cfg.LogFile, "log-file", c.cfg.LogFile, "also write JSON logs to this file, rotated by size")

	root.AddCommand(
		newRunCmd(c),
		newInspectCmd(c),
		newTailCmd(c),
		newRunsCmd(c),
		newDecodeCmd(c),
	)
	return root
}

// load applies, in increasing precedence, the config file, the dotenv file
// and ENVTAP_* variables, and explicitly set flags. It then builds the logger.
func (c *cli) load(cmd *cobra.Command) error {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}
	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	} else if c.cfgPath != "" {
		return fmt.Errorf("config file %s not found", c.cfgPath)
	}

	if err := cliconfig.LoadDotEnv(c.envPath); err != nil {
		return err
	}
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}

	if err := c.cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := logAdapter.New(logAdapter.Options{
		Level:      c.cfg.LogLevel,
		File:       c.cfg.LogFile,
		MaxBackups: 3,
	})
	if err != nil {
		return err
	}
	c.log = logger
	c.closer = closer
	c.log.Debug().Interface("config", c.cfg).Msg("configuration")
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "envtap: %v\n", err)
		os.Exit(1)
	}
}
