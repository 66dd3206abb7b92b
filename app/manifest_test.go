package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hafilati/hafilati-be/model"
)

func TestGroupManifest(t *testing.T) {
	entries := []*model.ManifestEntry{
		{StudentId: 1, StudentName: "Aya", GateId: 10, GateName: "North"},
		{StudentId: 2, StudentName: "Badr", GateId: 10, GateName: "North"},
		{StudentId: 3, StudentName: "Dana", GateId: 20, GateName: "South"},
	}

	gates := GroupManifest(entries)

	require.Len(t, gates, 2)
	assert.Equal(t, "North", gates[0].GateName)
	assert.Len(t, gates[0].Students, 2)
	assert.Equal(t, "Aya", gates[0].Students[0].StudentName)
	assert.Equal(t, "South", gates[1].GateName)
	assert.Len(t, gates[1].Students, 1)
}

func TestGroupManifestEmpty(t *testing.T) {
	gates := GroupManifest(nil)
	assert.NotNil(t, gates)
	assert.Empty(t, gates)
}
