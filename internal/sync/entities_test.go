package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/examgraph/exam-graph-backend/internal/ontology"
)

// Every descriptor must stay consistent with the ontology catalog: its class
// registered, its property list matching the class declaration, its hints
// naming real relationships with the declared edge properties, and the record
// on the side of the edge the relationship declares for its class.
func TestDescriptorsMatchOntology(t *testing.T) {
	reg := ontology.Default()

	for entityType, d := range descriptors {
		t.Run(entityType, func(t *testing.T) {
			assert.Equal(t, entityType, d.EntityType)

			class, err := reg.ClassByName(d.Class)
			require.NoError(t, err)
			assert.NotEmpty(t, class.KeyField)
			assert.ElementsMatch(t, class.Properties, d.PropFields,
				"node properties diverge from the %s declaration", d.Class)

			require.NotEmpty(t, d.Queries.ByID)
			require.NotEmpty(t, d.Queries.All)
			require.NotEmpty(t, d.Queries.Count)

			for _, hint := range d.Hints {
				rel, err := reg.RelationshipByName(hint.Rel)
				require.NoError(t, err, "hint %s", hint.Rel)
				assert.NotEmpty(t, hint.FKField, "hint %s", hint.Rel)
				assert.ElementsMatch(t, rel.Properties, hint.PropFields,
					"edge properties diverge from the %s declaration", hint.Rel)

				recordSide := rel.Source
				if hint.RecordIsTarget {
					recordSide = rel.Target
				}
				assert.Equal(t, d.Class, recordSide,
					"hint %s puts the record on the wrong side", hint.Rel)
			}
		})
	}
}

func TestEntityOrderCoversAllDescriptors(t *testing.T) {
	assert.Len(t, entityOrder, len(descriptors))
	seen := make(map[string]bool, len(entityOrder))
	for _, entityType := range entityOrder {
		_, ok := descriptors[entityType]
		assert.True(t, ok, "ordered entity %s has no descriptor", entityType)
		assert.False(t, seen[entityType], "entity %s ordered twice", entityType)
		seen[entityType] = true
	}
}

func TestAssociationPasses(t *testing.T) {
	reg := ontology.Default()

	require.Len(t, associations, 3)
	for _, d := range associations {
		t.Run(d.EntityType, func(t *testing.T) {
			_, err := reg.ClassByName(d.Class)
			require.NoError(t, err)
			require.Len(t, d.Hints, 1)

			rel, err := reg.RelationshipByName(d.Hints[0].Rel)
			require.NoError(t, err)
			assert.Equal(t, d.Class, rel.Source)
			assert.False(t, d.Hints[0].RecordIsTarget)
			assert.ElementsMatch(t, rel.Properties, d.Hints[0].PropFields)
		})
	}
}

func TestDescriptorFor(t *testing.T) {
	d, err := DescriptorFor("candidates")
	require.NoError(t, err)
	assert.Equal(t, "Candidate", d.Class)

	_, err = DescriptorFor("wizards")
	assert.ErrorIs(t, err, ErrUnknownEntity)
}
