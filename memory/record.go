package memory

// Record is the persisted memory entity: identity, classification (local
// text vs. external reference), descriptive metadata and the content's
// embedding vector.
//
// A record is either local or a reference, never both:
//   - local: the full source text is stored inline (Text non-empty,
//     ExternalSourceName empty)
//   - reference: the content lives in an external system; only the
//     external identifier and source name are stored (Text empty)
//
// NewLocalRecord and NewReferenceRecord are the only construction paths
// with meaningful semantics. NewBlankRecord exists solely for the
// reconstruction path: store implementations create a blank record and
// populate it via ApplyMetadata and SetEmbedding. Fields are set once
// through a factory or through bag replay and never mutated afterwards
// by consumers.
//
// None of the constructors validate their arguments. Empty identifiers or
// source names are accepted as given; producing collaborators own that
// responsibility. Rejecting them here could refuse previously persisted
// data.
type Record struct {
	id                 string
	isReference        bool
	externalSourceName string
	description        string
	text               string
	embedding          Embedding
}

// NewLocalRecord creates a record whose full source text is stored inline
// next to its embedding. description may be empty.
func NewLocalRecord(id string, text string, description string, embedding Embedding) *Record {
	return &Record{
		id:          id,
		isReference: false,
		description: description,
		text:        text,
		embedding:   embedding,
	}
}

// NewReferenceRecord creates a record pointing at content owned by an
// external system. externalID is the identifier within that system (URI,
// GUID, provider key), sourceName identifies the system itself (e.g.
// "GitHub"). description may be empty.
func NewReferenceRecord(externalID string, sourceName string, description string, embedding Embedding) *Record {
	return &Record{
		id:                 externalID,
		isReference:        true,
		externalSourceName: sourceName,
		description:        description,
		embedding:          embedding,
	}
}

// NewBlankRecord creates a record in placeholder state, used by store
// implementations when deserializing. The caller must populate it via
// ApplyMetadata and SetEmbedding before handing it to anyone.
func NewBlankRecord() *Record {
	return &Record{}
}

// ID returns the record's unique identifier. For reference records this is
// the identifier within the external system.
func (r *Record) ID() string {
	return r.id
}

// IsReference reports whether the underlying content lives in an external
// system rather than inline in Text.
func (r *Record) IsReference() bool {
	return r.isReference
}

// ExternalSourceName identifies the external system owning the content.
// Empty for local records.
func (r *Record) ExternalSourceName() string {
	return r.externalSourceName
}

// Description is an optional, non-indexed human-readable label.
func (r *Record) Description() string {
	return r.description
}

// Text is the full source text the embedding was produced from. Empty for
// reference records.
func (r *Record) Text() string {
	return r.text
}

// Embedding returns the record's embedding vector.
func (r *Record) Embedding() Embedding {
	return r.embedding
}

// SetEmbedding attaches an embedding vector. Used by store implementations
// when reconstructing a record; vectors and scalar metadata are persisted
// through separate channels.
func (r *Record) SetEmbedding(embedding Embedding) {
	r.embedding = embedding
}
