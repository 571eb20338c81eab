package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultDotEnvPath is the dotenv file read when no explicit path is given.
const DefaultDotEnvPath = ".env"

// LoadDotEnv copies variables from a dotenv file into the process environment.
// Variables already present in the environment win over file values, and a
// missing file is not an error so deployments can rely on real env vars only.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultDotEnvPath}
	}
	for _, path := range paths {
		path = strings.TrimSpace(path)
		if path == "" {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load dotenv %s: %w", path, err)
		}
	}
	return nil
}
