package query

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/ValentinKolb/kvql/cmd/util"
	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var Logger = logger.GetLogger("cli")

var (
	BenchCmd = &cobra.Command{
		Use:      "bench",
		Short:    "Performance testing tool for kvql servers",
		Args:     cobra.NoArgs,
		PreRunE:  processBenchConfig,
		PostRunE: closeClient,
		RunE:     runBench,
	}
	benchKeyPrefix  = "__bench"
	benchNumThreads = 10
	benchKeySpread  = 100
	benchSkip       = make([]string, 0)
)

// benchmark is a query template run in parallel. {key} is replaced by one
// of the benchmark keys, {i} by the iteration counter of the goroutine.
type benchmark struct {
	name     string
	template string
	// seed is run once per key before the benchmark starts
	seed string
	// failing benchmarks measure the error path, their errors are not logged
	failing bool
}

var benchmarks = []benchmark{
	{name: "ping", template: "PING"},
	{name: "set", template: "SET {key} test"},
	{name: "get", template: "GET {key}", seed: "SET {key} test"},
	{name: "hset", template: "HSET {key} field{i} test"},
	{name: "hgetall", template: "HGETALL {key}", seed: "HSET {key} a 1 b 2 c 3"},
	{name: "rpush", template: "RPUSH {key} test"},
	{name: "zadd", template: "ZADD {key} {i} member{i}"},
	{name: "zrange", template: "ZRANGE {key} 0 -1 WITHSCORES", seed: "ZADD {key} 1 a 2 b 3 c"},
	{name: "xadd", template: "XADD {key} * n {i}"},
	{name: "parse-error", template: "FROBNICATE {key}", failing: true},
}

func init() {
	// add flags
	key := "skip"
	BenchCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. set,get)"))
	key = "threads"
	BenchCmd.Flags().Int(key, 10, util.WrapString("Number of goroutines to use for the benchmark"))
	key = "keys"
	BenchCmd.Flags().Int(key, 100, util.WrapString("How many different keys to use for the tests"))
	key = "csv"
	BenchCmd.Flags().String(key, "", util.WrapString("Optional path to save benchmark results as CSV"))
}

func processBenchConfig(cmd *cobra.Command, args []string) error {
	if err := setupClient(cmd, args); err != nil {
		return err
	}

	// Read the configuration from the command line flags and environment variables
	benchKeySpread = max(1, viper.GetInt("keys"))
	benchNumThreads = max(1, viper.GetInt("threads"))
	benchSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runBench(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	config := util.GetClientConfig()

	_, _ = fmt.Fprintln(out, "Performance testing tool for kvql servers")
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, "Configuration:")
	_, _ = fmt.Fprintln(out, config.String())
	_, _ = fmt.Fprintf(out, "Threads: %d\n\n", benchNumThreads)

	_, _ = fmt.Fprintln(out, "starting tests...")

	results := make(map[string]testing.BenchmarkResult, len(benchmarks))
	for _, bm := range benchmarks {
		var result testing.BenchmarkResult
		if !slices.Contains(benchSkip, bm.name) {
			result = testing.Benchmark(func(b *testing.B) { runBenchmark(cmd.Context(), b, bm) })
		}
		results[bm.name] = result
		printResult(out, bm.name, result)
	}

	// Write results to csv is specified
	if csvPath := viper.GetString("csv"); csvPath != "" {
		_, _ = fmt.Fprintf(out, "\nExporting results to CSV: %s\n", csvPath)
		file, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer file.Close()
		if err := writeResultsToCSV(file, results, config); err != nil {
			return fmt.Errorf("failed to export results to CSV: %w", err)
		}
		_, _ = fmt.Fprintln(out, "Export complete")
	}

	return nil
}

func runBenchmark(ctx context.Context, b *testing.B, bm benchmark) {
	keys := benchKeys(bm.name)

	// seed keys
	if bm.seed != "" {
		for _, key := range keys {
			if _, err := rpcClient.Query(ctx, expand(bm.seed, key, 0)); err != nil {
				Logger.Errorf("(%s) - error seeding key: %v", bm.name, err)
			}
		}
	}

	// cleanup
	b.Cleanup(func() {
		if _, err := rpcClient.Query(ctx, "DEL "+strings.Join(keys, " ")); err != nil {
			Logger.Errorf("(%s) - error deleting keys: %v", bm.name, err)
		}
	})

	b.SetParallelism(benchNumThreads)
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		counter := 0
		for pb.Next() {
			_, err := rpcClient.Query(ctx, expand(bm.template, keys[counter%len(keys)], counter))
			var remote *common.RemoteError
			if err != nil && !(bm.failing && errors.As(err, &remote)) {
				Logger.Errorf("(%s) - error running query: %v", bm.name, err)
			}
			counter++
		}
	})
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// benchKeys creates the test keys of one benchmark
func benchKeys(name string) []string {
	keys := make([]string, benchKeySpread)
	for i := range keys {
		keys[i] = fmt.Sprintf("%s-%s-%d", benchKeyPrefix, name, i)
	}
	return keys
}

// expand fills in the placeholders of a query template
func expand(template, key string, i int) string {
	return strings.NewReplacer("{key}", key, "{i}", strconv.Itoa(i)).Replace(template)
}

// printResult prints the result of a benchmark test in a formatted way
func printResult(out io.Writer, test string, result testing.BenchmarkResult) {
	if result.NsPerOp() == 0 {
		_, _ = fmt.Fprintf(out, "%-20sskipped\n", test)
		return
	}

	nsPerOp := math.Max(float64(result.NsPerOp()), 1) // prevent division by zero
	opsPerSec := 1.0 / (nsPerOp / 1e9)

	_, _ = fmt.Fprintf(out, "%-20s%.0fns/op (%s/op)\t%.0f ops/sec\n", test, nsPerOp, time.Duration(nsPerOp), opsPerSec)
}

// writeResultsToCSV writes benchmark results in the order they were run
func writeResultsToCSV(w io.Writer, results map[string]testing.BenchmarkResult, config *common.ClientConfig) error {
	writer := csv.NewWriter(w)

	// Write header
	header := []string{
		"Test", "NsPerOp", "DurationPerOp", "OpsPerSec", "Skipped",
		"Endpoints", "TimeoutSec", "RetryCount", "Format",
		"Threads", "Keys Count",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write test results
	for _, bm := range benchmarks {
		result, ok := results[bm.name]
		if !ok {
			continue
		}

		var nsPerOp, opsPerSec float64
		skipped := "true"
		if result.NsPerOp() != 0 {
			skipped = "false"
			nsPerOp = math.Max(float64(result.NsPerOp()), 1)
			opsPerSec = 1.0 / (nsPerOp / 1e9)
		}

		row := []string{
			bm.name,
			fmt.Sprintf("%.0f", nsPerOp),
			time.Duration(nsPerOp).String(),
			fmt.Sprintf("%.0f", opsPerSec),
			skipped,
			strings.Join(config.Endpoints, ";"),
			strconv.Itoa(config.TimeoutSecond),
			strconv.Itoa(config.RetryCount),
			config.Format,
			strconv.Itoa(benchNumThreads),
			strconv.Itoa(benchKeySpread),
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for test %s: %w", bm.name, err)
		}
	}

	writer.Flush()
	return writer.Error()
}
