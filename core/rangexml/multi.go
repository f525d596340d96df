package rangexml

import (
	"io"
	"iter"
	"strings"

	"github.com/FocuswithJustin/RangeAtlas/core/atlas"
	"github.com/FocuswithJustin/RangeAtlas/core/errors"
	"github.com/FocuswithJustin/RangeAtlas/internal/logging"
)

// Source is one named candidate byte stream. Discovery of sources (directory
// walks, embedded assets, whatever) lives with the caller; the parser only
// needs an ordered sequence of these.
type Source interface {
	// Name identifies the source in logs, errors, and prefix filtering.
	Name() string
	// Open returns the byte stream. The parser closes it on every exit path.
	Open() (io.ReadCloser, error)
}

// ParseAll lazily parses each source in order, yielding one Group per source
// that parses cleanly. Sources whose names do not start with prefix (when
// non-empty) are passed over without being opened. Sources that are not
// well-formed XML are skipped with a debug log entry; structural, format, and
// consistency errors are yielded to the caller, since they indicate a
// contract violation in a document that was otherwise well-formed.
//
// The sequence is finite and single-use. A consumer that stops early never
// pays for the remaining sources.
func ParseAll(srcs iter.Seq[Source], prefix string) iter.Seq2[*atlas.Group, error] {
	return func(yield func(*atlas.Group, error) bool) {
		for src := range srcs {
			if prefix != "" && !strings.HasPrefix(src.Name(), prefix) {
				continue
			}

			group, err := parseSource(src)
			if err != nil {
				if errors.IsMalformed(err) {
					logging.SourceSkipped(src.Name(), err)
					continue
				}
				if !yield(nil, errors.Wrapf(err, "source %s", src.Name())) {
					return
				}
				continue
			}
			if group == nil {
				// Empty stream: nothing was built, nothing to yield.
				continue
			}
			if !yield(group, nil) {
				return
			}
		}
	}
}

// parseSource scopes the stream to one parse call, releasing it on every
// exit path.
func parseSource(src Source) (*atlas.Group, error) {
	rc, err := src.Open()
	if err != nil {
		return nil, errors.Wrap(err, "open source")
	}
	defer rc.Close()
	return ParseDocument(rc)
}
