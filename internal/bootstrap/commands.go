package bootstrap

import (
	"context"
	"errors"

	"github.com/chmouel/cgc/internal/buildinfo"
	"github.com/chmouel/cgc/internal/cli"
	"github.com/chmouel/cgc/internal/completion"
	urfavecli "github.com/urfave/cli/v3"
)

type sessionAction func(ctx context.Context, cmd *urfavecli.Command, s *session) error

func withSession(fn sessionAction) urfavecli.ActionFunc {
	return func(ctx context.Context, cmd *urfavecli.Command) error {
		s, err := newSession(cmd)
		if err != nil {
			return err
		}
		defer s.close()
		return fn(ctx, cmd, s)
	}
}

// NewCommand builds the cgc root command.
func NewCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:                      "cgc",
		Usage:                     "Scaffold commit messages from git status and drive the commit workflow",
		Version:                   buildinfo.Summary(),
		Flags:                     globalFlags(),
		DisableSliceFlagSeparator: true,
		Commands: []*urfavecli.Command{
			commitCommand(),
			generateCommand(),
			pushCommand(),
			addCommand(),
			switchCommand(),
			statusCommand(),
			filesCommand(),
			completionCommand(),
		},
	}
}

// Run executes cgc with args, args[0] being the program name.
func Run(ctx context.Context, args []string) error {
	return NewCommand().Run(ctx, args)
}

func commitCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "commit",
		Aliases: []string{"c"},
		Usage:   "Commit with the content of the commit message file",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "push",
				Aliases: []string{"p"},
				Usage:   "Push after a successful commit",
			},
			pushArgsFlag(),
		},
		Action: withSession(func(ctx context.Context, cmd *urfavecli.Command, s *session) error {
			opts := cli.CommitOptions{
				Push:     cmd.Bool("push"),
				PushArgs: cmd.StringSlice("args"),
			}
			return cli.Commit(ctx, s.git, s.cfg, s.root, opts, s.out)
		}),
	}
}

func generateCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "generate",
		Aliases: []string{"g"},
		Usage:   "Generate the commit message file",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "watch",
				Aliases: []string{"w"},
				Usage:   "Regenerate whenever the working tree changes",
			},
		},
		Action: withSession(func(ctx context.Context, cmd *urfavecli.Command, s *session) error {
			if cmd.Bool("watch") {
				return cli.Watch(ctx, s.git, s.cfg, s.root, s.out)
			}
			_, err := cli.Generate(ctx, s.git, s.cfg, s.root, s.out)
			return err
		}),
	}
}

func pushCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "push",
		Aliases:   []string{"p"},
		Usage:     "Push the current branch",
		ArgsUsage: "[git push arguments]",
		Flags:     []urfavecli.Flag{pushArgsFlag()},
		Action: withSession(func(ctx context.Context, cmd *urfavecli.Command, s *session) error {
			args := append(cmd.StringSlice("args"), cmd.Args().Slice()...)
			if len(args) == 0 {
				args = s.cfg.PushArgs
			}
			return cli.Push(ctx, s.git, args, s.out)
		}),
	}
}

func addCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "add",
		Aliases:   []string{"a"},
		Usage:     "Stage everything except the excluded paths",
		ArgsUsage: "[path...]",
		Flags: []urfavecli.Flag{
			&urfavecli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"e"},
				Usage:   "Path to leave unstaged (repeatable)",
			},
		},
		Action: withSession(func(ctx context.Context, cmd *urfavecli.Command, s *session) error {
			exclude := append(cmd.StringSlice("exclude"), cmd.Args().Slice()...)
			return cli.AddAndExclude(ctx, s.git, s.repoPaths(exclude), s.out)
		}),
	}
}

func switchCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:    "switch",
		Aliases: []string{"s"},
		Usage:   "Pick a branch and switch to it",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:    "stash",
				Aliases: []string{"s"},
				Usage:   "Stash changes before switching",
			},
			&urfavecli.BoolFlag{
				Name:    "apply-stash",
				Aliases: []string{"a"},
				Usage:   "Pop the stash after switching",
			},
		},
		Action: withSession(func(ctx context.Context, cmd *urfavecli.Command, s *session) error {
			opts := cli.SwitchOptions{
				Stash:      cmd.Bool("stash"),
				ApplyStash: cmd.Bool("apply-stash"),
			}
			return cli.Switch(ctx, s.git, s.prompter(), opts, s.out)
		}),
	}
}

func statusCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "status",
		Usage: "Show classified status entries",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "icons",
				Usage: "Show file type icons",
			},
		},
		Action: withSession(func(ctx context.Context, cmd *urfavecli.Command, s *session) error {
			icons := s.cfg.ShowIcons
			if cmd.IsSet("icons") {
				icons = cmd.Bool("icons")
			}
			return cli.ShowStatus(ctx, s.git, s.cfg, s.root, icons, s.stdout)
		}),
	}
}

func filesCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "files",
		Usage: "List changed files, one per line",
		Action: withSession(func(ctx context.Context, _ *urfavecli.Command, s *session) error {
			return cli.ListStatusFiles(ctx, s.git, s.stdout)
		}),
	}
}

var errCompletionUsage = errors.New("usage: cgc completion <bash|zsh|fish>")

func completionCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:      "completion",
		Usage:     "Generate shell completion script",
		ArgsUsage: "<bash|zsh|fish>",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			if cmd.NArg() == 0 {
				return errCompletionUsage
			}
			_, stdout, _ := streams(cmd)
			return completion.Script(stdout, cmd.Args().First(), cmd.Root().Name)
		},
	}
}
