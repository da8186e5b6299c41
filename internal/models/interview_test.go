package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveDocumentFlags(t *testing.T) {
	hasResume, hasJD := DeriveDocumentFlags(nil)
	assert.False(t, hasResume)
	assert.False(t, hasJD)

	hasResume, hasJD = DeriveDocumentFlags([]string{"doc-1"})
	assert.True(t, hasResume)
	assert.False(t, hasJD)

	hasResume, hasJD = DeriveDocumentFlags([]string{"doc-1", "doc-2"})
	assert.True(t, hasResume)
	assert.True(t, hasJD)
}

func TestDocumentSelectionIDs(t *testing.T) {
	assert.Nil(t, DocumentSelection{}.IDs())

	assert.Equal(t, []string{"r1"}, DocumentSelection{ResumeID: "r1"}.IDs())
	assert.Equal(t, []string{"j1"}, DocumentSelection{JobDescriptionID: "j1"}.IDs())

	// Resume always precedes the job description.
	both := DocumentSelection{ResumeID: "r1", JobDescriptionID: "j1"}
	assert.Equal(t, []string{"r1", "j1"}, both.IDs())
}

func TestKnowledgeDocumentHasTag(t *testing.T) {
	doc := KnowledgeDocument{Tags: []string{TagResume}}
	assert.True(t, doc.HasTag(TagResume))
	assert.False(t, doc.HasTag(TagJobDescription))
	assert.False(t, KnowledgeDocument{}.HasTag(TagResume))
}
