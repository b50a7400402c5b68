package chain

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"eulerScope/internal/model"
)

// BlockSource yields fully-materialized blocks in strictly increasing height
// order. Next returns io.EOF when the stream is exhausted.
type BlockSource interface {
	Next() (*model.Block, error)
	Close() error
}

// JsonlStream reads blocks from a JSONL file, one block per line. This is the
// boundary to the host runtime that materializes transactions, logs, calls
// and storage writes.
type JsonlStream struct {
	file    *os.File
	scanner *bufio.Scanner
	line    uint64
}

// OpenJsonlStream opens a block stream backed by the given JSONL file.
func OpenJsonlStream(path string) (*JsonlStream, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open block stream: %w", err)
	}
	scanner := bufio.NewScanner(file)
	// Blocks with full call traces can be large.
	scanner.Buffer(make([]byte, 0, 1024*1024), 256*1024*1024)
	return &JsonlStream{file: file, scanner: scanner}, nil
}

// Next returns the next block, or io.EOF at the end of the stream.
func (s *JsonlStream) Next() (*model.Block, error) {
	for s.scanner.Scan() {
		s.line++
		line := s.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var block model.Block
		if err := json.Unmarshal(line, &block); err != nil {
			return nil, fmt.Errorf("parse block at line %d: %w", s.line, err)
		}
		return &block, nil
	}
	if err := s.scanner.Err(); err != nil {
		return nil, fmt.Errorf("read block stream: %w", err)
	}
	return nil, io.EOF
}

// Close closes the underlying file.
func (s *JsonlStream) Close() error {
	return s.file.Close()
}
