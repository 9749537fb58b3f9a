package config

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var (
	Dev     bool
	LogPath string
	Ask     string
	Timeout time.Duration
)

const defaultTimeout = 2 * time.Minute

// Init loads .env (if present) for flag defaults, then parses the command line.
func Init() {
	godotenv.Load()
	Register(flag.CommandLine)
	flag.Parse()
}

// Register binds every flag to fs, taking defaults from the environment.
func Register(fs *flag.FlagSet) {
	fs.BoolVar(&Dev, "dev", envBool("POLICYASK_DEV", false), "Development mode")
	fs.StringVar(&LogPath, "logPath", os.Getenv("POLICYASK_LOG_PATH"), "Path to save the log file")
	fs.StringVar(&Ask, "ask", "", "Ask a single question and print the answer instead of starting the UI")
	fs.DurationVar(&Timeout, "timeout", envDuration("POLICYASK_TIMEOUT", defaultTimeout), "How long to wait for an answer (0 waits forever)")
}

func envBool(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
