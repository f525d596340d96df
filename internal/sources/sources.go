// Package sources discovers named byte streams for the document parser.
//
// Discovery is an explicit, caller-driven enumeration over a directory or any
// fs.FS (including embedded assets). Candidate documents are plain ".xml"
// files or xz-compressed ".xml.xz" files; compressed sources decompress
// transparently when opened.
package sources

import (
	"encoding/hex"
	"io"
	"io/fs"
	"iter"
	"os"
	"sort"
	"strings"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/RangeAtlas/core/errors"
	"github.com/FocuswithJustin/RangeAtlas/core/rangexml"
)

// fsSource is one candidate file inside an fs.FS.
type fsSource struct {
	fsys fs.FS
	name string
}

// Name returns the file name within its directory.
func (s fsSource) Name() string {
	return s.name
}

// Open returns the decoded byte stream. Compressed sources are unwrapped
// here so the parser only ever sees document bytes.
func (s fsSource) Open() (io.ReadCloser, error) {
	f, err := s.fsys.Open(s.name)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", s.name)
	}
	if !strings.HasSuffix(s.name, ".xz") {
		return f, nil
	}
	xzr, err := xz.NewReader(f)
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "decompress %s", s.name)
	}
	return &xzReadCloser{Reader: xzr, underlying: f}, nil
}

// xzReadCloser closes the underlying file once the decompressed stream is
// done; the xz layer itself holds no resources.
type xzReadCloser struct {
	*xz.Reader
	underlying io.Closer
}

func (r *xzReadCloser) Close() error {
	return r.underlying.Close()
}

// FromFS enumerates candidate sources in the root of fsys, ordered lexically
// by name. Listing happens when iteration starts; each source is opened only
// if the consumer gets that far.
func FromFS(fsys fs.FS) iter.Seq[rangexml.Source] {
	return func(yield func(rangexml.Source) bool) {
		entries, err := fs.ReadDir(fsys, ".")
		if err != nil {
			return
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			if isCandidate(e.Name()) {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			if !yield(fsSource{fsys: fsys, name: name}) {
				return
			}
		}
	}
}

// FromDir enumerates candidate sources in a filesystem directory.
func FromDir(path string) iter.Seq[rangexml.Source] {
	return FromFS(os.DirFS(path))
}

func isCandidate(name string) bool {
	return strings.HasSuffix(name, ".xml") || strings.HasSuffix(name, ".xml.xz")
}

// Digest returns the BLAKE3 fingerprint of source content, used to identify
// sources in logs and listings without trusting file names.
func Digest(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}
