package integration

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/docker/docker/pkg/stdcopy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"golang.org/x/crypto/ssh"
)

// execInContainer runs a command in the container and returns stdout
func execInContainer(ctx context.Context, container testcontainers.Container, cmd []string) (int, string, error) {
	exitCode, reader, err := container.Exec(ctx, cmd)
	if err != nil {
		return exitCode, "", err
	}

	// Demux the Docker stream (stdout/stderr are multiplexed)
	var stdout, stderr bytes.Buffer
	_, _ = stdcopy.StdCopy(&stdout, &stderr, reader)

	return exitCode, stdout.String(), nil
}

// mustExec runs a command in the container and requires it to succeed
func mustExec(t *testing.T, ctx context.Context, container testcontainers.Container, cmd ...string) string {
	t.Helper()
	exitCode, out, err := execInContainer(ctx, container, cmd)
	require.NoError(t, err)
	require.Equal(t, 0, exitCode, "command %v failed: %s", cmd, out)
	return out
}

// assertFileContains checks that a file contains all expected substrings
func assertFileContains(t *testing.T, ctx context.Context, container testcontainers.Container, path string, expected []string) {
	t.Helper()
	exitCode, content, err := execInContainer(ctx, container, []string{"cat", path})
	require.NoError(t, err)
	require.Equal(t, 0, exitCode, "failed to read file %s", path)

	for _, substr := range expected {
		assert.Contains(t, content, substr, "file %s should contain %q", path, substr)
	}
}

// countLines returns how many lines of a container file contain substr
func countLines(t *testing.T, ctx context.Context, container testcontainers.Container, path, substr string) int {
	t.Helper()
	content := mustExec(t, ctx, container, "cat", path)

	n := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return n
}

// keyPair is an ed25519 key written in OpenSSH format
type keyPair struct {
	privatePath string
	publicPath  string
	authorized  string
}

// writeKeyPair generates a key pair under dir with the given file name
func writeKeyPair(t *testing.T, dir, name string) keyPair {
	t.Helper()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	block, err := ssh.MarshalPrivateKey(priv, name)
	require.NoError(t, err)
	sshPub, err := ssh.NewPublicKey(pub)
	require.NoError(t, err)

	kp := keyPair{
		privatePath: filepath.Join(dir, name),
		publicPath:  filepath.Join(dir, name+".pub"),
		authorized:  strings.TrimSpace(string(ssh.MarshalAuthorizedKey(sshPub))) + " " + name,
	}
	require.NoError(t, os.WriteFile(kp.privatePath, pem.EncodeToMemory(block), 0o600))
	require.NoError(t, os.WriteFile(kp.publicPath, []byte(kp.authorized+"\n"), 0o644))

	return kp
}

// writeWrapper creates an executable that runs tool non-interactively
// with identity as its key
func writeWrapper(t *testing.T, dir, tool, identity string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.Base(tool))
	script := fmt.Sprintf(`#!/bin/sh
exec %s -i %s -o StrictHostKeyChecking=no -o UserKnownHostsFile=/dev/null -o BatchMode=yes -o LogLevel=ERROR "$@"
`, tool, identity)
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755))

	return path
}
