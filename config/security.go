package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/enola-dev/enola-sub007/errors"
)

const (
	maxConfigSize = 10 << 20 // 10MB
	maxJSONDepth  = 100
	maxEnvVarLen  = 10000
	maxPathLen    = 4096
)

// validateConfigPath rejects empty, overlong and escaping paths, and
// anything that is not a JSON file.
func validateConfigPath(path string) error {
	if path == "" {
		return errors.WrapInvalid(errors.ErrMissingConfig, "config", "validateConfigPath", "empty config path")
	}
	if len(path) > maxPathLen {
		return errors.Invalidf(errors.ErrInvalidConfig, "config", "validateConfigPath",
			"path too long: %d > %d", len(path), maxPathLen)
	}

	absPath, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return errors.WrapInvalid(err, "config", "validateConfigPath", "resolve absolute path")
	}
	if filepath.IsAbs(path) {
		if strings.Contains(filepath.ToSlash(absPath), "/../") {
			return errors.Invalidf(errors.ErrInvalidConfig, "config", "validateConfigPath",
				"path traversal not allowed: %s", path)
		}
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return errors.WrapFatal(err, "config", "validateConfigPath", "get working directory")
		}
		if rel, err := filepath.Rel(cwd, absPath); err != nil || strings.HasPrefix(rel, "..") {
			return errors.Invalidf(errors.ErrInvalidConfig, "config", "validateConfigPath",
				"path traversal not allowed: %s resolves outside working directory", path)
		}
	}

	if !strings.HasSuffix(path, ".json") {
		return errors.Invalidf(errors.ErrInvalidConfig, "config", "validateConfigPath",
			"only JSON config files allowed: %s", path)
	}
	return nil
}

// safeReadFile reads a validated config path. A missing file fails with
// ErrConfigNotFound.
func safeReadFile(path string) ([]byte, error) {
	if err := validateConfigPath(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.WrapInvalid(errors.ErrConfigNotFound, "config", "safeReadFile", path)
	}
	if err != nil {
		return nil, errors.WrapTransient(err, "config", "safeReadFile", "stat config file")
	}
	if info.Size() > maxConfigSize {
		return nil, errors.Invalidf(errors.ErrInvalidConfig, "config", "safeReadFile",
			"config file too large: %d bytes > %d", info.Size(), maxConfigSize)
	}
	if !info.Mode().IsRegular() {
		return nil, errors.Invalidf(errors.ErrInvalidConfig, "config", "safeReadFile", "not a regular file: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapTransient(err, "config", "safeReadFile", "read config file")
	}
	return data, nil
}

// safeWriteFile writes data readable by the owner only.
func safeWriteFile(path string, data []byte) error {
	if err := validateConfigPath(path); err != nil {
		return err
	}
	if len(data) > maxConfigSize {
		return errors.Invalidf(errors.ErrInvalidConfig, "config", "safeWriteFile",
			"config data too large: %d bytes > %d", len(data), maxConfigSize)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.WrapTransient(err, "config", "safeWriteFile", "write config file")
	}
	return nil
}

func validateEnvVar(key, value string) error {
	if len(value) > maxEnvVarLen {
		return errors.Invalidf(errors.ErrInvalidConfig, "config", "validateEnvVar",
			"environment variable %s too long: %d > %d", key, len(value), maxEnvVarLen)
	}
	if strings.Contains(value, "\x00") {
		return errors.Invalidf(errors.ErrInvalidConfig, "config", "validateEnvVar",
			"null byte in environment variable %s", key)
	}
	return nil
}

// validateJSONDepth bounds nesting before the document reaches the decoder.
func validateJSONDepth(data []byte) error {
	depth := 0
	inString := false
	escaped := false

	for _, b := range data {
		if escaped {
			escaped = false
			continue
		}
		if b == '\\' && inString {
			escaped = true
			continue
		}
		if b == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch b {
		case '{', '[':
			depth++
			if depth > maxJSONDepth {
				return errors.Invalidf(errors.ErrInvalidConfig, "config", "validateJSONDepth",
					"JSON nesting too deep: %d > %d", depth, maxJSONDepth)
			}
		case '}', ']':
			depth--
			if depth < 0 {
				return errors.WrapInvalid(errors.ErrInvalidConfig, "config", "validateJSONDepth", "unbalanced brackets")
			}
		}
	}
	if depth != 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "config", "validateJSONDepth",
			fmt.Sprintf("unclosed brackets (depth=%d)", depth))
	}
	return nil
}
