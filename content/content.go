// Copyright (c) 2026 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package content

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danielhkuo/atelier/store"
)

var (
	// ErrNotFound means the requested record does not exist. Handlers
	// translate it to 404.
	ErrNotFound = errors.New("not found")

	// ErrSelfDelete rejects a user deleting their own account.
	ErrSelfDelete = errors.New("cannot delete your own account")

	ErrSlugTaken  = errors.New("slug already in use")
	ErrEmailTaken = errors.New("email already in use")
)

// docTo converts a stored document into a typed model through JSON.
func docTo[T any](doc store.Doc) (T, error) {
	var v T
	raw, err := json.Marshal(doc)
	if err != nil {
		return v, fmt.Errorf("encode document: %w", err)
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode document: %w", err)
	}
	return v, nil
}

func docsTo[T any](docs []store.Doc) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		v, err := docTo[T](doc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// toDoc converts a typed model into a storable document. A zero ID is
// dropped by omitempty, so fresh models produce documents without
// identity fields.
func toDoc(v any) (store.Doc, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode model: %w", err)
	}
	var doc store.Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}
	delete(doc, "id")
	delete(doc, "_id")
	return doc, nil
}
