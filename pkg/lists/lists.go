package lists

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// errReadList indicates a list source could not be read.
var errReadList = errors.New("failed to read value list")

// Source produces raw values in order.
type Source interface {
	Values(ctx context.Context) ([]string, error)
	String() string
}

// StaticSource is a fixed list of values, typically positional arguments.
type StaticSource []string

// Values returns the values unchanged.
func (s StaticSource) Values(context.Context) ([]string, error) {
	return []string(s), nil
}

func (s StaticSource) String() string {
	return fmt.Sprintf("arguments (%d)", len(s))
}

// FileSource reads values from a local file. The path "-" reads standard input.
type FileSource struct {
	Path  string
	Stdin io.Reader // Defaults to os.Stdin.
}

// Values reads and parses the file.
func (s FileSource) Values(context.Context) ([]string, error) {
	if s.Path == "-" {
		stdin := s.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}

		return ParseLines(stdin)
	}

	file, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errReadList, err)
	}
	defer file.Close()

	return ParseLines(file)
}

func (s FileSource) String() string {
	return "file " + s.Path
}

// ParseLines reads one value per line, trimming whitespace and skipping blanks and "#" comments.
func ParseLines(reader io.Reader) ([]string, error) {
	var values []string

	scanner := bufio.NewScanner(reader)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		values = append(values, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", errReadList, err)
	}

	return values, nil
}

// Load concatenates the values of every source in order.
//
// Parameters:
//   - ctx: Context for sources that perform network access.
//   - sources: Sources to read.
//
// Returns:
//   - []string: All values, source by source.
//   - error: First source error, naming the source.
func Load(ctx context.Context, sources ...Source) ([]string, error) {
	var values []string

	for _, source := range sources {
		sourceValues, err := source.Values(ctx)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", source, err)
		}

		logrus.WithFields(logrus.Fields{
			"source": source.String(),
			"values": len(sourceValues),
		}).Debug("Loaded values")

		values = append(values, sourceValues...)
	}

	return values, nil
}
