package common

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters of the query server.
type ServerConfig struct {
	// HTTP api settings
	Endpoint string

	// TimeoutSecond bounds the execution of a single query
	TimeoutSecond int64

	// MaxQueryBytes is the largest accepted request body
	MaxQueryBytes int64

	// Modules reported by MODULE LIST (name -> version)
	Modules map[string]int64

	// Config overrides the parameters known to CONFIG GET
	Config map[string]string

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Endpoint)
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Max Query Size", fmt.Sprintf("%d bytes", c.MaxQueryBytes))

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	// Backend
	addSection("Backend")
	if len(c.Modules) == 0 {
		addField("Modules", "none")
	}
	for _, name := range sortedKeys(c.Modules) {
		addField("Module "+name, strconv.FormatInt(c.Modules[name], 10))
	}
	for _, name := range sortedKeys(c.Config) {
		addField("Config "+name, c.Config[name])
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

type ClientConfig struct {
	Endpoints     []string
	TimeoutSecond int
	RetryCount    int
	// Format is the encoding requested from the server (json or yaml)
	Format string
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(int(math.Max(1, float64(c.RetryCount)))))
	addField("Format", c.Format)

	// Endpoints
	addSection("Endpoints")
	for i, endpoint := range c.Endpoints {
		addField(strconv.Itoa(i), endpoint)
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// sortedKeys returns the keys of m in ascending order for stable output.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
