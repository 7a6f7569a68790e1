package util

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ValentinKolb/kvql/rpc/common"
	"github.com/ValentinKolb/kvql/rpc/serializer"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+len(word) > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		currentLine.WriteString(word)
		lineWidth += len(word)
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// --------------------------------------------------------------------------
// Configuration
// --------------------------------------------------------------------------

// InitConfig loads .env files and makes viper read KVQL_* environment
// variables (e.g. KVQL_LOG_LEVEL=debug).
func InitConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("kvql")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}

// SetupRPCClientFlags adds common RPC connection flags to a command
func SetupRPCClientFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of a single request"))

	key = "endpoints"
	cmd.PersistentFlags().String(key, "http://localhost:8080", WrapString("The address of the kvql server. Multiple endpoints can be specified as a comma-separated list, requests are balanced round-robin"))

	key = "retries"
	cmd.PersistentFlags().Int(key, 3, WrapString("How many times to try a request (each attempt uses the next endpoint)"))
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	var endpoints []string
	for _, e := range strings.Split(viper.GetString("endpoints"), ",") {
		if e = strings.TrimSpace(e); e != "" {
			endpoints = append(endpoints, e)
		}
	}

	return &common.ClientConfig{
		Endpoints:     endpoints,
		TimeoutSecond: viper.GetInt("timeout"),
		RetryCount:    viper.GetInt("retries"),
		Format:        GetOutputFormat(),
	}
}

// GetOutputFormat returns the configured output format (json, json-pretty or yaml)
func GetOutputFormat() string {
	return strings.ToLower(viper.GetString("output"))
}

// GetSerializer creates the result serializer for the configured output format
func GetSerializer() (serializer.IResultSerializer, error) {
	return serializer.ForName(GetOutputFormat())
}

// --------------------------------------------------------------------------
// Output
// --------------------------------------------------------------------------

// Encode encodes any value in the given output format
func Encode(format string, v any) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return json.Marshal(v)
	case "json-pretty":
		return json.MarshalIndent(v, "", "  ")
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("invalid output format %s (expected one of: %s)", format, strings.Join(serializer.Names(), ", "))
	}
}

// Reformat converts a json document received from a server into the given
// output format. Other documents are returned unchanged.
func Reformat(format string, data []byte) []byte {
	if strings.ToLower(format) != "json-pretty" {
		return data
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}
	return buf.Bytes()
}

// Println writes data followed by exactly one newline
func Println(cmd *cobra.Command, data []byte) {
	out := cmd.OutOrStdout()
	_, _ = out.Write(bytes.TrimRight(data, "\n"))
	_, _ = fmt.Fprintln(out)
}
