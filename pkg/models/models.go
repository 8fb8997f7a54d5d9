package models

import (
	"encoding/json"
	"strings"
	"time"
)

// File is a parsed input file (CSV dataset or free-text dump) and the
// documents extracted from it.
type File struct {
	ID uint `json:"id" gorm:"primarykey"`

	Provider string    `json:"provider"` // CSV, Text
	FilePath string    `json:"file_path"`
	FileName string    `json:"file_name"`
	MIMEType string    `json:"mime_type"`
	Size     uint      `json:"size"`
	Rows     uint      `json:"rows"`
	ParsedAt time.Time `json:"parsed_at"`

	Fingerprint string `json:"fingerprint" gorm:"unique;not null"`

	// Failed flag set if the result should be considered failed
	Failed       bool   `json:"failed"`
	FailedReason string `json:"failed_reason"`

	Documents []Document `json:"documents" gorm:"constraint:OnDelete:CASCADE"`
}

// Document is a single validated occurrence: a CPF, CNPJ, phone number or
// e-mail address.
type Document struct {
	ID     uint `json:"id" gorm:"primarykey"`
	FileID uint `json:"file_id"`

	Time time.Time `json:"time"`

	Kind      string `json:"kind"` // cpf, cnpj, phone, email
	Rule      string `json:"rule"`
	Raw       string `json:"raw"`
	Digits    string `json:"digits"`
	Formatted string `json:"formatted"`

	// Column holds the CSV column name when Provider is CSV; Line holds
	// the 1-based line for text scans.
	Column string `json:"column"`
	Line   int    `json:"line"`

	Domain  string  `json:"domain"` // e-mail domain, when Kind is email
	Entropy float32 `json:"entropy"`

	NearText string `json:"near_text"`
}

// Finding carries a raw rule match through post-processing. Only matches
// that survive validation become a Document.
type Finding struct {
	RuleID      string
	Description string

	StartLine   int
	EndLine     int
	StartColumn int
	EndColumn   int

	Line string `json:"-"`

	Match  string
	Secret string

	File string

	// Entropy is the shannon entropy of Secret
	Entropy float32

	Tags []string

	Document Document
}

// Clone copies the file metadata without its documents.
func (file File) Clone() *File {
	nf := file
	nf.ID = 0
	nf.Documents = []Document{}
	return &nf
}

// AddDocument appends a validated document and stamps it with the file
// parse time when the finding has no time of its own.
func (file *File) AddDocument(doc Document) {
	if doc.Time.IsZero() {
		doc.Time = file.ParsedAt
	}
	file.Documents = append(file.Documents, doc)
}

/* Custom Marshaller for File */
func (file File) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Provider    string `json:"provider"`
		FilePath    string `json:"file_path"`
		FileName    string `json:"file_name"`
		MIMEType    string `json:"mime_type"`
		Size        uint   `json:"size"`
		Rows        uint   `json:"rows"`
		ParsedAt    string `json:"parsed_at"`
		Fingerprint string `json:"fingerprint"`
		Failed      bool   `json:"failed"`
	}{
		Provider:    file.Provider,
		FilePath:    file.FilePath,
		FileName:    file.FileName,
		MIMEType:    file.MIMEType,
		Size:        file.Size,
		Rows:        file.Rows,
		ParsedAt:    file.ParsedAt.Format(time.RFC3339),
		Fingerprint: file.Fingerprint,
		Failed:      file.Failed,
	})
}

/* Custom Marshaller for Document */
func (doc Document) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Time      string  `json:"time"`
		Kind      string  `json:"kind"`
		Rule      string  `json:"rule"`
		Raw       string  `json:"raw"`
		Digits    string  `json:"digits"`
		Formatted string  `json:"formatted"`
		Column    string  `json:"column"`
		Line      int     `json:"line"`
		Domain    string  `json:"domain"`
		Entropy   float32 `json:"entropy"`
		NearText  string  `json:"near_text"`
	}{
		Time:      doc.Time.Format(time.RFC3339),
		Kind:      doc.Kind,
		Rule:      doc.Rule,
		Raw:       doc.Raw,
		Digits:    doc.Digits,
		Formatted: doc.Formatted,
		Column:    doc.Column,
		Line:      doc.Line,
		Domain:    strings.ToLower(doc.Domain),
		Entropy:   doc.Entropy,
		NearText:  doc.NearText,
	})
}
