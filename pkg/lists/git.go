package lists

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/sirupsen/logrus"
)

// ErrInvalidGitSource indicates a git source spec without a "//" path separator.
var ErrInvalidGitSource = errors.New("git source must look like <repository>//<path>[@ref]")

// GitSource reads values from a file in a Git repository.
type GitSource struct {
	URL  string
	Path string
	Ref  string // Branch name, full reference, or empty for the default branch.
	Auth GitAuth
}

// ParseGitSource parses "<repository>//<path>[@ref]".
//
// The "//" after a URL scheme ("https://") is not treated as the path separator. The last "@"
// starts a ref only when the text after it has no "." or begins with "refs/", so "a@b.txt" is a
// path and tags with dots are given in full, e.g. "@refs/tags/v1.2.0".
func ParseGitSource(spec string, auth GitAuth) (*GitSource, error) {
	searchFrom := 0
	if schemeEnd := strings.Index(spec, "://"); schemeEnd >= 0 {
		searchFrom = schemeEnd + len("://")
	}

	sep := strings.Index(spec[searchFrom:], "//")
	if sep < 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGitSource, spec)
	}

	sep += searchFrom
	repoURL := spec[:sep]
	path := spec[sep+2:]

	ref := ""
	if at := strings.LastIndex(path, "@"); at >= 0 && isRef(path[at+1:]) {
		ref = path[at+1:]
		path = path[:at]
	}

	if repoURL == "" || path == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidGitSource, spec)
	}

	return &GitSource{URL: repoURL, Path: path, Ref: ref, Auth: auth}, nil
}

func isRef(suffix string) bool {
	return strings.HasPrefix(suffix, "refs/") || !strings.Contains(suffix, ".")
}

func (s *GitSource) String() string {
	if s.Ref != "" {
		return fmt.Sprintf("git %s//%s@%s", s.URL, s.Path, s.Ref)
	}

	return fmt.Sprintf("git %s//%s", s.URL, s.Path)
}

// Values clones the repository into memory and parses the file at Path.
func (s *GitSource) Values(ctx context.Context) ([]string, error) {
	auth, err := s.Auth.transportAuth()
	if err != nil {
		return nil, err
	}

	options := &git.CloneOptions{
		URL:          s.URL,
		Auth:         auth,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}

	if s.Ref != "" {
		options.ReferenceName = referenceName(s.Ref)
	}

	logrus.WithFields(logrus.Fields{
		"repo": s.URL,
		"ref":  s.Ref,
		"auth": s.Auth.Method,
	}).Debug("Cloning list repository")

	repo, err := git.CloneContext(ctx, memory.NewStorage(), nil, options)
	if err != nil {
		return nil, fmt.Errorf("%w: clone %s: %w", errReadList, s.URL, err)
	}

	return readFile(repo, s.Path)
}

// referenceName treats simple names as branches and names with slashes as full references.
func referenceName(ref string) plumbing.ReferenceName {
	if !strings.Contains(ref, "/") {
		return plumbing.NewBranchReferenceName(ref)
	}

	return plumbing.ReferenceName(ref)
}

// readFile parses a file from the commit HEAD points to.
func readFile(repo *git.Repository, path string) ([]string, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("%w: resolve HEAD: %w", errReadList, err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("%w: read commit %s: %w", errReadList, head.Hash(), err)
	}

	file, err := commit.File(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s at %s: %w", errReadList, path, head.Hash(), err)
	}

	reader, err := file.Reader()
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", errReadList, path, err)
	}
	defer reader.Close()

	return ParseLines(reader)
}
