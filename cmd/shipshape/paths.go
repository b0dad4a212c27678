package main

import (
	"os"
	"path/filepath"
)

func shipshapeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".shipshape"), nil
}

func defaultRegistryPath() (string, error) {
	dir, err := shipshapeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "registry.json"), nil
}

func defaultStatePath() (string, error) {
	dir, err := shipshapeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "state.json"), nil
}

func defaultStatusCachePath() (string, error) {
	dir, err := shipshapeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "status.json"), nil
}

func defaultHistoryPath() (string, error) {
	dir, err := shipshapeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "history.db"), nil
}
