package staging

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/najamsyed/ESPA/internal/logger"
)

// scpOptions are shared by every ssh/scp invocation. Compression helps the
// many small stat and plot files.
const scpOptions = "-q -o StrictHostKeyChecking=no -C"

// SCPStager stages files over scp/ssh. It assumes key-based ssh access to
// the source host is already set up.
type SCPStager struct {
	host     string
	orderDir string
	exec     Executor
	log      *logger.Logger
}

// NewSCPStager creates an scp-based stager for the given host and order
// directory.
func NewSCPStager(host, orderDir string, exec Executor, log *logger.Logger) *SCPStager {
	return &SCPStager{
		host:     host,
		orderDir: orderDir,
		exec:     exec,
		log:      log.WithComponent("scp-stager"),
	}
}

// Fetch copies <host>:<orderDir>/stats into localDir, replacing any previous
// working copy.
func (s *SCPStager) Fetch(ctx context.Context, localDir string) error {
	if err := os.RemoveAll(localDir); err != nil {
		return fmt.Errorf("failed to clear work directory %s: %w", localDir, err)
	}

	remote := fmt.Sprintf("%s:%s", s.host, path.Join(s.orderDir, "stats"))
	cmd := strings.Join([]string{"scp", scpOptions, "-r", remote, localDir}, " ")

	s.log.Info("Fetching statistics from online cache", logger.Fields{"remote": remote})
	if out, err := s.exec.Run(ctx, cmd); err != nil {
		if len(out) > 0 {
			s.log.Error("scp output", nil, logger.Fields{"output": out})
		}
		return fmt.Errorf("failed retrieving stats from online cache: %w", err)
	}
	return nil
}

// Push creates the destination directory on the source host, transfers every
// file in localDir, and verifies each transfer by comparing cksum values.
func (s *SCPStager) Push(ctx context.Context, localDir string) error {
	remoteDir := path.Join(s.orderDir, filepath.Base(localDir))

	s.log.Info("Creating remote directory", logger.Fields{"host": s.host, "dir": remoteDir})
	mkdir := strings.Join([]string{"ssh", scpOptions, s.host, "mkdir", "-p", remoteDir}, " ")
	if out, err := s.exec.Run(ctx, mkdir); err != nil {
		if len(out) > 0 {
			s.log.Error("ssh output", nil, logger.Fields{"output": out})
		}
		return fmt.Errorf("failed to create remote directory %s: %w", remoteDir, err)
	}

	// Single quotes keep the wildcard for the remote-capable scp expansion.
	transfer := strings.Join([]string{
		"scp", scpOptions,
		fmt.Sprintf("'%s'", filepath.Join(localDir, "*")),
		fmt.Sprintf("%s:%s", s.host, remoteDir),
	}, " ")
	s.log.Info("Transferring artifacts", logger.Fields{"host": s.host, "dir": remoteDir})
	if out, err := s.exec.Run(ctx, transfer); err != nil {
		if len(out) > 0 {
			s.log.Error("scp output", nil, logger.Fields{"output": out})
		}
		return fmt.Errorf("failed to transfer artifacts: %w", err)
	}

	return s.verify(ctx, localDir, remoteDir)
}

// verify compares the cksum of every local artifact against its remote copy.
func (s *SCPStager) verify(ctx context.Context, localDir, remoteDir string) error {
	entries, err := os.ReadDir(localDir)
	if err != nil {
		return fmt.Errorf("failed to list %s for verification: %w", localDir, err)
	}

	s.log.Info("Verifying artifact transfers", logger.Fields{"count": len(entries)})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		localFile := filepath.Join(localDir, entry.Name())
		localOut, err := s.exec.Run(ctx, "cksum "+localFile)
		if err != nil {
			return fmt.Errorf("failed to checksum %s: %w", localFile, err)
		}

		remoteFile := path.Join(remoteDir, entry.Name())
		remoteCmd := strings.Join([]string{"ssh", scpOptions, s.host, "cksum", remoteFile}, " ")
		remoteOut, err := s.exec.Run(ctx, remoteCmd)
		if err != nil {
			return fmt.Errorf("failed to checksum %s:%s: %w", s.host, remoteFile, err)
		}

		if firstToken(localOut) != firstToken(remoteOut) {
			return fmt.Errorf("checksum mismatch between %s and %s:%s",
				localFile, s.host, remoteFile)
		}
	}
	return nil
}

// Close is a no-op; scp holds no persistent connection.
func (s *SCPStager) Close() error {
	return nil
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
