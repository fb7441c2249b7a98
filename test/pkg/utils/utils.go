// Copyright (c) Microsoft Corporation.
// Licensed under the MIT License.

package utils

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
)

// Run executes the provided command from the project directory and returns
// its combined output.
func Run(cmd *exec.Cmd) (string, error) {
	if cmd.Dir == "" {
		cmd.Dir, _ = GetProjectDir()
	}
	command := strings.Join(cmd.Args, " ")
	_, _ = fmt.Fprintf(GinkgoWriter, "running: %s\n", command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		_, _ = fmt.Fprintf(GinkgoWriter, "%s failed with error: (%v) %s\n", command, err, string(output))
		return string(output), err
	}

	return string(output), nil
}

// RunOutput is like Run but returns only stdout. Stderr is still logged on
// failure.
func RunOutput(cmd *exec.Cmd) (string, error) {
	if cmd.Dir == "" {
		cmd.Dir, _ = GetProjectDir()
	}
	command := strings.Join(cmd.Args, " ")
	_, _ = fmt.Fprintf(GinkgoWriter, "running: %s\n", command)
	output, err := cmd.Output()
	if err != nil {
		stderr := ""
		if exitErr, ok := err.(*exec.ExitError); ok {
			stderr = string(exitErr.Stderr)
		}
		_, _ = fmt.Fprintf(GinkgoWriter, "%s failed with error: (%v) %s\n", command, err, stderr)
		return string(output), err
	}

	return string(output), nil
}

// BuildLvmctl compiles cmd/lvmctl into dir and returns the binary path.
func BuildLvmctl(ctx context.Context, dir string) (string, error) {
	bin := filepath.Join(dir, "lvmctl")
	cmd := exec.CommandContext(ctx, "go", "build", "-o", bin, "./cmd/lvmctl")
	if _, err := Run(cmd); err != nil {
		return "", fmt.Errorf("failed to build lvmctl: %w", err)
	}
	return bin, nil
}

// GetNonEmptyLines converts given command output string into individual objects
// according to line breakers, and ignores the empty elements in it.
func GetNonEmptyLines(output string) []string {
	var res []string
	elements := strings.Split(output, "\n")
	for _, element := range elements {
		if element != "" {
			res = append(res, element)
		}
	}

	return res
}

// GetProjectDir will return the directory where the project is.
func GetProjectDir() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return wd, err
	}
	wd = strings.ReplaceAll(wd, "/test/e2e", "")
	return wd, nil
}

// RandomTag returns a random tag.
func RandomTag() string {
	bytes := make([]byte, 4)
	if _, err := rand.Read(bytes); err != nil {
		return ""
	}
	return hex.EncodeToString(bytes)
}
