package memory

import (
	"errors"
	"fmt"
)

// Metadata bag keys. The key set and the value encodings are persisted
// state: changing either breaks every record already written by an older
// build, so they are frozen.
const (
	KeyIsReference        = "IsReference"
	KeyExternalSourceName = "ExternalSourceName"
	KeyID                 = "Id"
	KeyDescription        = "Description"
	KeyText               = "Text"
)

// Boolean encoding inside the bag. Deliberately not strconv's "true"/
// "false": a single stable character survives storage engines that
// re-case, trim or otherwise normalize their string columns.
const (
	boolTrue  = "T"
	boolFalse = "F"
)

// ErrInvalidMetadata reports a metadata bag that no compatible writer
// could have produced: storage corruption or a foreign schema.
var ErrInvalidMetadata = errors.New("invalid record metadata")

// ToMetadata encodes the record's scalar fields into the flat metadata
// bag used for storage-engine-agnostic persistence. The bag always holds
// exactly the five scalar keys; the embedding is never part of it (stores
// persist vectors through their own channel).
//
// Encoding cannot fail.
func (r *Record) ToMetadata() map[string]string {
	isReference := boolFalse
	if r.isReference {
		isReference = boolTrue
	}
	return map[string]string{
		KeyIsReference:        isReference,
		KeyExternalSourceName: r.externalSourceName,
		KeyID:                 r.id,
		KeyDescription:        r.description,
		KeyText:               r.text,
	}
}

// ApplyMetadata replays a metadata bag into the record's scalar fields.
// Each key is looked up independently: an absent key leaves the
// corresponding field unchanged, so a record can be partially
// reconstructed from engines that drop empty values.
//
// A present IsReference value must be exactly "T" or "F"; anything else
// fails with ErrInvalidMetadata and leaves the field unwritten. Silently
// coercing it would mask corruption or an incompatible writer. The call
// is not atomic across keys, but each key's decode is all-or-nothing.
func (r *Record) ApplyMetadata(meta map[string]string) error {
	if value, ok := meta[KeyIsReference]; ok {
		switch value {
		case boolTrue:
			r.isReference = true
		case boolFalse:
			r.isReference = false
		default:
			return fmt.Errorf("decode %s: value %q is not %q or %q: %w",
				KeyIsReference, value, boolTrue, boolFalse, ErrInvalidMetadata)
		}
	}
	if value, ok := meta[KeyExternalSourceName]; ok {
		r.externalSourceName = value
	}
	if value, ok := meta[KeyID]; ok {
		r.id = value
	}
	if value, ok := meta[KeyDescription]; ok {
		r.description = value
	}
	if value, ok := meta[KeyText]; ok {
		r.text = value
	}
	return nil
}
