package domain

import "time"

// Status is the outcome of the proposal a document belongs to.
type Status string

const (
	// StatusAccepted marks documents from won proposals.
	StatusAccepted Status = "accepted"

	// StatusRejected marks documents from lost proposals.
	StatusRejected Status = "rejected"

	// StatusUnknown marks documents whose outcome could not be determined.
	StatusUnknown Status = "unknown"
)

// Valid reports whether s is a known status value.
func (s Status) Valid() bool {
	switch s {
	case StatusAccepted, StatusRejected, StatusUnknown:
		return true
	}
	return false
}

// Category distinguishes client requirement documents from our response documents.
type Category string

const (
	// CategoryRequirement is a client requirement (RFP) document.
	CategoryRequirement Category = "requirement"

	// CategoryResponse is a proposal response document.
	CategoryResponse Category = "response"
)

// Valid reports whether c is a known category value.
func (c Category) Valid() bool {
	return c == CategoryRequirement || c == CategoryResponse
}

// ExtractionMethod records how a document's text was obtained.
type ExtractionMethod string

const (
	// ExtractionNativeText means the text came from the PDF text layer
	// (or directly from a DOCX/TXT file).
	ExtractionNativeText ExtractionMethod = "native-text"

	// ExtractionVision means the pages were rasterised and transcribed
	// by a vision-capable language model.
	ExtractionVision ExtractionMethod = "vision-model"

	// ExtractionFallbackText means a scanned document was forced through
	// the native text path because no vision client was available.
	// The resulting content is likely near-empty.
	ExtractionFallbackText ExtractionMethod = "fallback-text"
)

// ProjectUnknown is the project identifier assigned to documents whose
// filename does not match the requirement<N>/response<N> pattern.
// Such documents are ingested and searchable but never paired.
const ProjectUnknown = "unknown"

// Document represents a single ingested file after text extraction.
// It is immutable once registered.
type Document struct {
	// ID is the unique identifier assigned at ingestion time.
	ID string

	// Source is the original file path.
	Source string

	// File is the base filename (e.g. "requirement3.pdf").
	File string

	// Folder is the directory the file was ingested from.
	Folder string

	// Method records how the text content was extracted.
	Method ExtractionMethod

	// Category is requirement or response.
	Category Category

	// Status is the proposal outcome inherited from the source folder.
	Status Status

	// ProjectNumber links paired requirement/response documents.
	// ProjectUnknown when the filename carried no parseable number.
	ProjectNumber string

	// Content is the full extracted text before chunking.
	Content string

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Chunk is a contiguous text segment of a Document. Every chunk carries a
// copy of its document's filter metadata so status/category filtering works
// uniformly at the chunk level.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the source Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for similarity search.
	Embedding []float32

	// Status is copied from the source document.
	Status Status

	// Category is copied from the source document.
	Category Category

	// ProjectNumber is copied from the source document.
	ProjectNumber string

	// Source is the originating file path, kept for provenance display.
	Source string
}

// RegistryEntry is the persisted registry record for one document,
// keyed by document ID in document_registry.json.
type RegistryEntry struct {
	File          string           `json:"file"`
	Folder        string           `json:"folder"`
	Type          ExtractionMethod `json:"type"`
	Status        Status           `json:"status"`
	Category      Category         `json:"category"`
	ProjectNumber string           `json:"project_number"`
}

// ProjectMapping links a requirement document and a response document under
// a shared project number. Either side may be empty while the pair is
// incomplete.
type ProjectMapping struct {
	RequirementDocID string `json:"requirement_doc_id,omitempty"`
	ResponseDocID    string `json:"response_doc_id,omitempty"`
	Status           Status `json:"status"`
}

// Complete reports whether both sides of the pair are present.
func (m ProjectMapping) Complete() bool {
	return m.RequirementDocID != "" && m.ResponseDocID != ""
}

// FolderSpec labels an ingest directory with the status and category that
// apply to every document inside it. Directory identity is the only source
// of this labelling.
type FolderSpec struct {
	Path     string
	Status   Status
	Category Category
}
