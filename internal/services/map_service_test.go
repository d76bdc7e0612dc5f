package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

var (
	testNodes = datatypes.JSON(`[{"id":"n1","type":"default","data":{"label":"Basics"},"position":{"x":0,"y":0}},{"id":"n2","type":"default","data":{"label":"Advanced"},"position":{"x":100,"y":50}}]`)
	testEdges = datatypes.JSON(`[{"id":"e1","source":"n1","target":"n2","type":"smoothstep"}]`)
)

func TestSaveAndListGrowsByOne(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner := uuid.New()

	before, err := svc.List(owner)
	require.NoError(t, err)

	_, err = svc.Save(owner, "Go", "Beginner", testNodes, testEdges)
	require.NoError(t, err)

	after, err := svc.List(owner)
	require.NoError(t, err)
	assert.Len(t, after, len(before)+1)
}

func TestListOrderedMostRecentFirst(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner := uuid.New()

	for _, topic := range []string{"first", "second", "third"} {
		_, err := svc.Save(owner, topic, "Beginner", testNodes, testEdges)
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	maps, err := svc.List(owner)
	require.NoError(t, err)
	require.Len(t, maps, 3)
	assert.Equal(t, "third", maps[0].Topic)
	assert.Equal(t, "second", maps[1].Topic)
	assert.Equal(t, "first", maps[2].Topic)
}

func TestListCappedAtHundred(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner := uuid.New()

	for i := 0; i < maxListedMaps+5; i++ {
		_, err := svc.Save(owner, fmt.Sprintf("topic-%d", i), "Beginner", testNodes, testEdges)
		require.NoError(t, err)
	}

	maps, err := svc.List(owner)
	require.NoError(t, err)
	assert.Len(t, maps, maxListedMaps)
}

func TestListScopedToOwner(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner, stranger := uuid.New(), uuid.New()

	_, err := svc.Save(owner, "Go", "Beginner", testNodes, testEdges)
	require.NoError(t, err)

	maps, err := svc.List(stranger)
	require.NoError(t, err)
	assert.Empty(t, maps)
}

func TestSaveAlwaysInserts(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner := uuid.New()

	first, err := svc.Save(owner, "Go", "Beginner", testNodes, testEdges)
	require.NoError(t, err)
	second, err := svc.Save(owner, "Go", "Beginner", testNodes, testEdges)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	maps, err := svc.List(owner)
	require.NoError(t, err)
	assert.Len(t, maps, 2)
}

func TestGetRoundTripPreservesNodesAndEdges(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner := uuid.New()

	saved, err := svc.Save(owner, "Go", "Intermediate", testNodes, testEdges)
	require.NoError(t, err)

	got, err := svc.Get(owner, saved.ID)
	require.NoError(t, err)
	assert.JSONEq(t, string(testNodes), string(got.Nodes))
	assert.JSONEq(t, string(testEdges), string(got.Edges))
	assert.Equal(t, "Go", got.Topic)
	assert.Equal(t, "Intermediate", got.Level)
}

func TestGetForeignMapIsNotFound(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner, stranger := uuid.New(), uuid.New()

	saved, err := svc.Save(owner, "Go", "Beginner", testNodes, testEdges)
	require.NoError(t, err)

	_, err = svc.Get(stranger, saved.ID)
	assert.ErrorIs(t, err, ErrMapNotFound)

	_, err = svc.Get(owner, uuid.New())
	assert.ErrorIs(t, err, ErrMapNotFound)
}

func TestDeleteTwice(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner := uuid.New()

	saved, err := svc.Save(owner, "Go", "Beginner", testNodes, testEdges)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(owner, saved.ID))
	assert.ErrorIs(t, svc.Delete(owner, saved.ID), ErrMapNotFound)
}

func TestDeleteForeignMapIsNotFound(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner, stranger := uuid.New(), uuid.New()

	saved, err := svc.Save(owner, "Go", "Beginner", testNodes, testEdges)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(stranger, saved.ID), ErrMapNotFound)

	// Still fetchable by its owner
	_, err = svc.Get(owner, saved.ID)
	require.NoError(t, err)
}

func TestExportSameLookupRuleAsGet(t *testing.T) {
	svc := NewMapService(newTestDB(t))
	owner, stranger := uuid.New(), uuid.New()

	saved, err := svc.Save(owner, "Go", "Beginner", testNodes, testEdges)
	require.NoError(t, err)

	exported, err := svc.Export(owner, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, exported.ID)
	assert.JSONEq(t, string(testNodes), string(exported.Nodes))

	_, err = svc.Export(stranger, saved.ID)
	assert.ErrorIs(t, err, ErrMapNotFound)
}
