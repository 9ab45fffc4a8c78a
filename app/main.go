// lru-replay runs a TOML workload against an lru.Cache and prints what
// every op hit, missed and evicted.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/wsxiaoys/terminal"

	"github.com/airt/lru"
)

var (
	logger  = newLogger()
	rootCmd = &cobra.Command{
		Use:   "lru-replay",
		Short: "Replay cache workloads against an LRU cache",
		Long: `lru-replay reads a TOML workload (a capacity and a list of ops such as
"set a 1", "get a", "del a") and replays it against a bounded LRU cache.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setDebug(verbose)
		},
	}

	configFile string
	verbose    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "workload.toml", "Workload file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every eviction")

	rootCmd.AddCommand(runCmd(), metricsCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// runCmd replays the workload and prints a colored trace
func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Replay the workload and print each op",
		RunE: func(cmd *cobra.Command, args []string) error {
			replayer, ops, err := load(lru.Configure[string, string]())
			if err != nil {
				return err
			}
			results, err := replayer.Run(ops)
			for _, res := range results {
				printResult(res)
			}
			if err != nil {
				return err
			}
			stats := replayer.Cache().Stats()
			terminal.Stdout.Color("b").
				Print(fmt.Sprintf("hits=%d misses=%d evictions=%d size=%d/%d", stats.Hits, stats.Misses, stats.Evictions, stats.Size, stats.Capacity)).
				Nl().Reset()
			return nil
		},
	}
}

// metricsCmd replays the workload silently and dumps the collectors
func metricsCmd() *cobra.Command {
	var namespace string
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Replay the workload and print the Prometheus collectors",
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := prometheus.NewRegistry()
			replayer, ops, err := load(lru.Configure[string, string]().Metrics(reg).Namespace(namespace))
			if err != nil {
				return err
			}
			if _, err := replayer.Run(ops); err != nil {
				return err
			}
			mfs, err := reg.Gather()
			if err != nil {
				return fmt.Errorf("gather metrics: %w", err)
			}
			for _, mf := range mfs {
				for _, m := range mf.GetMetric() {
					value := m.GetCounter().GetValue()
					if m.GetGauge() != nil {
						value = m.GetGauge().GetValue()
					}
					fmt.Printf("%s %g\n", mf.GetName(), value)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&namespace, "namespace", "lru", "Metric name prefix")
	return cmd
}

func load(config *lru.Configuration[string, string]) (*Replayer, []Op, error) {
	w, err := LoadWorkload(configFile)
	if err != nil {
		return nil, nil, err
	}
	ops, err := w.ParseOps()
	if err != nil {
		return nil, nil, err
	}
	logger.Info("workload loaded", "path", configFile, "capacity", w.Capacity, "ops", len(ops))

	replayer, err := NewReplayer(config.Capacity(w.Capacity), func(key, value string) {
		logger.Debug("evicted", "key", key, "value", value)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create cache: %w", err)
	}
	return replayer, ops, nil
}

func printResult(res Result) {
	out := terminal.Stdout
	out.Print(fmt.Sprintf("%-16s", res.Op))
	switch res.Op.Verb {
	case VerbGet, VerbPeek, VerbHas:
		if res.Found {
			out.Color("g").Print("hit  ").Reset()
		} else {
			out.Color("r").Print("miss ").Reset()
		}
	case VerbSet:
		if res.Found {
			out.Color("y").Print(fmt.Sprintf("replaced %s ", res.Previous)).Reset()
		}
	case VerbDel:
		if !res.Found {
			out.Color("r").Print("absent ").Reset()
		}
	}
	if len(res.Evicted) > 0 {
		out.Color("m").Print(fmt.Sprintf("evicted %s ", strings.Join(res.Evicted, ","))).Reset()
	}
	out.Print(fmt.Sprintf("[%s]", strings.Join(res.Keys, " "))).Nl()
}
