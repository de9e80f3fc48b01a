package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits ledger changes.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	_, err := run(dir, "init", "--quiet")
	return err
}

// Commit stages paths (everything when none are given) and commits them as
// author. Returns the short commit hash.
func Commit(dir, message string, author Author, paths ...string) (string, error) {
	add := []string{"add", "-A"}
	if len(paths) > 0 {
		add = append(add, "--")
		add = append(add, paths...)
	}
	if _, err := run(dir, add...); err != nil {
		return "", err
	}

	// The committer identity is pinned too, so commits work without a
	// global git config.
	if _, err := run(dir,
		"-c", "user.name="+author.Name,
		"-c", "user.email="+author.Email,
		"commit", "--quiet", "-m", message, "--author", author.String(),
	); err != nil {
		return "", err
	}
	return HeadHash(dir)
}

// HeadHash returns the short hash of HEAD.
func HeadHash(dir string) (string, error) {
	out, err := run(dir, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// IsRepo reports whether dir is the root of a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// WriteIgnore writes a .gitignore at dir with one pattern per line.
func WriteIgnore(dir string, patterns ...string) error {
	data := strings.Join(patterns, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(data), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}
	return nil
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %s: %w", gitVerb(args), strings.TrimSpace(string(out)), err)
	}
	return string(out), nil
}

// gitVerb returns the subcommand, skipping -c options.
func gitVerb(args []string) string {
	for i := 0; i < len(args); i++ {
		if args[i] == "-c" {
			i++
			continue
		}
		return args[i]
	}
	return ""
}
