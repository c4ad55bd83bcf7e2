// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// deletedField marks tombstone lines in the append log.
const deletedField = "$$deleted"

// FileBackend is the embedded backend: one append-only JSON-lines file
// per collection under a data directory. Each write appends a full
// document; later lines for the same native key supersede earlier
// ones, and tombstone lines delete. The log is compacted on open.
//
// Layout:
//
//	data_dir/
//	  artworks.db
//	  artist.db
//	  faqs.db
//	  users.db
//	  settings.db
type FileBackend struct {
	mu    sync.Mutex
	dir   string
	colls map[string]*fileCollection
}

type fileCollection struct {
	file  *os.File       // append handle
	docs  map[string]Doc // native id -> latest version
	order []string       // native ids in insertion order
}

// OpenFile opens (creating if needed) the data directory. Collection
// files are loaded lazily on first access.
func OpenFile(dir string) (*FileBackend, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileBackend{dir: dir, colls: make(map[string]*fileCollection)}, nil
}

func (b *FileBackend) Kind() string           { return "file" }
func (b *FileBackend) PersistsPublicID() bool { return true }

func (b *FileBackend) Ping(ctx context.Context) error {
	_, err := os.Stat(b.dir)
	return err
}

func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var first error
	for _, fc := range b.colls {
		if err := fc.file.Close(); err != nil && first == nil {
			first = err
		}
	}
	b.colls = make(map[string]*fileCollection)
	return first
}

func (b *FileBackend) path(collection string) string {
	return filepath.Join(b.dir, collection+".db")
}

// load reads and compacts a collection log. Caller holds b.mu.
func (b *FileBackend) load(collection string) (*fileCollection, error) {
	if fc, ok := b.colls[collection]; ok {
		return fc, nil
	}

	fc := &fileCollection{docs: make(map[string]Doc)}
	path := b.path(collection)

	f, err := os.Open(path)
	if err == nil {
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}
			var doc Doc
			if err := json.Unmarshal(line, &doc); err != nil {
				// A torn trailing line from a crashed write; skip it.
				continue
			}
			native := doc.NativeID()
			if native == "" {
				continue
			}
			if del, _ := doc[deletedField].(bool); del {
				if _, ok := fc.docs[native]; ok {
					delete(fc.docs, native)
					fc.order = removeString(fc.order, native)
				}
				continue
			}
			if _, ok := fc.docs[native]; !ok {
				fc.order = append(fc.order, native)
			}
			fc.docs[native] = doc
		}
		f.Close()
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		if err := b.compact(collection, fc); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	af, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open %s for append: %w", path, err)
	}
	fc.file = af
	b.colls[collection] = fc
	return fc, nil
}

// compact rewrites the log with one line per live document, via a
// temp file and rename so a crash mid-compaction never loses the log.
func (b *FileBackend) compact(collection string, fc *fileCollection) error {
	path := b.path(collection)
	tmp, err := os.CreateTemp(b.dir, collection+".compact-*")
	if err != nil {
		return fmt.Errorf("compact %s: %w", collection, err)
	}
	w := bufio.NewWriter(tmp)
	for _, native := range fc.order {
		line, err := json.Marshal(fc.docs[native])
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			return fmt.Errorf("compact %s: %w", collection, err)
		}
		w.Write(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("compact %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("compact %s: %w", collection, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("compact %s: %w", collection, err)
	}
	return nil
}

func (b *FileBackend) appendLine(fc *fileCollection, doc Doc) error {
	line, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := fc.file.Write(append(line, '\n')); err != nil {
		return err
	}
	return nil
}

func (b *FileBackend) Find(ctx context.Context, collection string, filter Filter) ([]Doc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fc, err := b.load(collection)
	if err != nil {
		return nil, err
	}
	out := make([]Doc, 0, len(fc.order))
	for _, native := range fc.order {
		doc := fc.docs[native]
		if matchFilter(doc, filter) {
			out = append(out, cloneDoc(doc))
		}
	}
	return out, nil
}

func (b *FileBackend) Insert(ctx context.Context, collection string, doc Doc) (Doc, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fc, err := b.load(collection)
	if err != nil {
		return nil, err
	}
	stored := cloneDoc(doc)
	native, err := newNativeID()
	if err != nil {
		return nil, err
	}
	stored[nativeIDField] = native
	if err := b.appendLine(fc, stored); err != nil {
		return nil, err
	}
	fc.docs[native] = stored
	fc.order = append(fc.order, native)
	return cloneDoc(stored), nil
}

func (b *FileBackend) Replace(ctx context.Context, collection, nativeID string, doc Doc) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fc, err := b.load(collection)
	if err != nil {
		return 0, err
	}
	if _, ok := fc.docs[nativeID]; !ok {
		return 0, nil
	}
	stored := cloneDoc(doc)
	stored[nativeIDField] = nativeID
	if err := b.appendLine(fc, stored); err != nil {
		return 0, err
	}
	fc.docs[nativeID] = stored
	return 1, nil
}

func (b *FileBackend) Remove(ctx context.Context, collection, nativeID string) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fc, err := b.load(collection)
	if err != nil {
		return 0, err
	}
	if _, ok := fc.docs[nativeID]; !ok {
		return 0, nil
	}
	if err := b.appendLine(fc, Doc{nativeIDField: nativeID, deletedField: true}); err != nil {
		return 0, err
	}
	delete(fc.docs, nativeID)
	fc.order = removeString(fc.order, nativeID)
	return 1, nil
}

// newNativeID generates a 16-character alphanumeric key, the format
// the embedded store has always used on disk.
func newNativeID() (string, error) {
	const chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate native id: %w", err)
	}
	for i, c := range buf {
		buf[i] = chars[int(c)%len(chars)]
	}
	return string(buf), nil
}

// cloneDoc deep-copies through JSON so callers never alias the
// in-memory index. Numbers come back as float64, matching what a
// fresh load from disk would produce.
func cloneDoc(d Doc) Doc {
	b, err := json.Marshal(d)
	if err != nil {
		return Doc{}
	}
	var out Doc
	if err := json.Unmarshal(b, &out); err != nil {
		return Doc{}
	}
	return out
}

func removeString(list []string, s string) []string {
	for i, v := range list {
		if v == s {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
