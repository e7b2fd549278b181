package lang

import (
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/klauspost/readahead"
	"github.com/zeebo/xxh3"
)

// programCache stores parsed programs keyed by source hash. Parsing is
// deterministic so identical sources share one immutable Program; the
// evaluator never mutates a syntax tree.
var programCache sync.Map

// cacheEntry tracks the parse of a single source.
type cacheEntry struct {
	once sync.Once
	prog *Program
	err  error
}

// ParseString parses source into a Program, one statement per line. Repeat
// parses of identical source return the cached tree.
func ParseString(source string) (*Program, error) {
	hash := xxh3.Hash([]byte(source))
	key := strconv.FormatUint(hash, 36)

	value, _ := programCache.LoadOrStore(key, new(cacheEntry))
	entry := value.(*cacheEntry)

	entry.once.Do(func() {
		prog, err := ParseReader(strings.NewReader(source))
		if err != nil {
			entry.err = WrapError(err).With(
				slog.Int("source_length", len(source)),
			)

			return
		}

		entry.prog = prog
	})

	return entry.prog, entry.err
}

// ParseStream reads all of r through an async read-ahead buffer and parses
// it with caching. Data is pre-fetched while earlier chunks are consumed.
func ParseStream(r io.Reader) (*Program, error) {
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	return ParseString(string(data))
}

// ClearCache removes all cached programs. Primarily useful for testing or
// when memory needs to be reclaimed.
func ClearCache() {
	programCache = sync.Map{}
}
