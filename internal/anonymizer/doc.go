// Package anonymizer derives the irreversible shadow identity of a subject.
//
// The shadow name depends only on the subject id and the shadow contact keeps
// at most the last four digits of the real contact. Neither value can be
// turned back into the real identity. [Engine] writes both shadow fields
// into the record store in one UPDATE and never touches the real fields.
package anonymizer
