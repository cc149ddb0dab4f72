package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Dan9191/ambient-finance/internal/agent"
	"github.com/Dan9191/ambient-finance/internal/ambient"
	"github.com/Dan9191/ambient-finance/internal/app"
	"github.com/Dan9191/ambient-finance/internal/config"
	"github.com/Dan9191/ambient-finance/internal/notify"
	"github.com/Dan9191/ambient-finance/internal/presentation"
)

type cli struct {
	app    *app.App
	asJSON bool
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "financectl",
		Short:         "Ambient personal-finance assistant",
		Long:          `financectl derives savings, burn rate and runway from your transactions and asks a language model for advice.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a, err := app.New(cmd.Context(), cfg, app.NewLogger(cfg.LogLevel))
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.app != nil {
				c.app.Close()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&c.asJSON, "json", false, "Print raw JSON instead of formatted output")

	rootCmd.AddCommand(c.newMetricsCmd())
	rootCmd.AddCommand(c.newFlagsCmd())
	rootCmd.AddCommand(c.newSimulateCmd())
	rootCmd.AddCommand(c.newAskCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	return rootCmd
}

func (c *cli) print(w io.Writer, v any, formatted string) error {
	if !c.asJSON {
		_, err := fmt.Fprint(w, formatted)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) newMetricsCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:     "metrics",
		Aliases: []string{"dashboard"},
		Short:   "Show financial metrics, dashboard ratios and flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := c.app.Service.Overview(cmd.Context(), mode)
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), snap, presentation.RenderSnapshot(snap))
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "Balanced", "Risk mode: Conservative, Balanced or Aggressive")
	return cmd
}

func (c *cli) newFlagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "flags",
		Short: "List rule-engine flags",
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := c.app.Service.Overview(cmd.Context(), "")
			if err != nil {
				return err
			}
			var b strings.Builder
			for _, f := range snap.Flags {
				fmt.Fprintln(&b, f)
			}
			if len(snap.Flags) == 0 {
				b.WriteString("no flags\n")
			}
			return c.print(cmd.OutOrStdout(), snap.Flags, b.String())
		},
	}
}

func (c *cli) newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run what-if projections over current savings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "expense [AMOUNT]",
		Short: "Project savings after a one-off expense",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[0], err)
			}
			s, err := c.app.Service.SimulateLargeExpense(cmd.Context(), amount)
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), s, presentation.RenderScenario(s))
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "savings [PERCENT]",
		Short: "Project savings after saving an extra percent of income",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			percent, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("invalid percent %q: %w", args[0], err)
			}
			s, err := c.app.Service.SimulateSavingsIncrease(cmd.Context(), percent)
			if err != nil {
				return err
			}
			return c.print(cmd.OutOrStdout(), s, presentation.RenderScenario(s))
		},
	})
	return cmd
}

func (c *cli) newAskCmd() *cobra.Command {
	var mode string
	cmd := &cobra.Command{
		Use:   "ask [QUESTION]",
		Short: "Ask the assistant; without a question, start an interactive session",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session := agent.NewSession()
			if len(args) == 1 {
				return c.ask(cmd, session, args[0], mode)
			}
			return c.repl(cmd, session, mode)
		},
	}
	cmd.Flags().StringVar(&mode, "mode", "Balanced", "Risk mode: Conservative, Balanced or Aggressive")
	return cmd
}

func (c *cli) ask(cmd *cobra.Command, session *agent.Session, question, mode string) error {
	decision, err := c.app.Service.Decide(cmd.Context(), session, question, mode)
	if err != nil {
		return err
	}
	return c.print(cmd.OutOrStdout(), presentation.NewDecisionView(session.ID, decision), presentation.RenderDecision(decision))
}

func (c *cli) repl(cmd *cobra.Command, session *agent.Session, mode string) error {
	out := cmd.OutOrStdout()
	in := bufio.NewScanner(cmd.InOrStdin())
	fmt.Fprintln(out, "Ask about your finances. Type 'bye' to exit.")
	for {
		fmt.Fprint(out, "ask> ")
		if !in.Scan() {
			return in.Err()
		}
		question := strings.TrimSpace(in.Text())
		switch question {
		case "":
			continue
		case "bye", "exit", "quit":
			return nil
		}
		if err := c.ask(cmd, session, question, mode); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		}
	}
}

func (c *cli) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the ambient rule check on its schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.app.Config
			var notifier ambient.Notifier
			if cfg.SMTPEnabled() {
				notifier = notify.NewSender(cfg, c.app.Log)
			}
			monitor := ambient.NewMonitor(c.app.Service, notifier, cfg.AlertEmail, c.app.Log)

			flags, err := monitor.Check(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "initial check: %d flag(s) %v\n", len(flags), flags)

			if err := monitor.Start(cfg.AmbientSchedule); err != nil {
				return err
			}
			defer monitor.Stop()

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			select {
			case <-sig:
			case <-cmd.Context().Done():
			}
			return nil
		},
	}
}
