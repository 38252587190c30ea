package checks

import (
	"context"
	"testing"

	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/core/nusc/nusctest"
	"nuscenes-devkit/core/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func open(t *testing.T, d *nusctest.Dataset) *nusc.Tables {
	t.Helper()
	tables, err := nusc.Open(context.Background(), nusctest.Version, d.Write(t))
	require.NoError(t, err)
	return tables
}

func TestRun_CleanDataset(t *testing.T) {
	tables := open(t, nusctest.New(nusctest.Options{}))

	results := Run(tables)
	require.Len(t, results, len(All()))
	for _, r := range results {
		assert.Equal(t, StatusOK, r.Status, r.Name)
		assert.Zero(t, r.Count, r.Name)
		assert.Empty(t, r.Issues, r.Name)
	}
}

func TestSceneChains_BrokenNext(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 3})
	d.Samples[1].Next = token.None

	res := SceneChains(open(t, d))

	assert.Equal(t, StatusFailed, res.Status)
	require.Equal(t, 2, res.Count)
	assert.Equal(t, nusc.TableSample, res.Issues[0].Table)
	assert.Equal(t, d.Samples[1].Token.String(), res.Issues[0].Token)
	assert.Contains(t, res.Issues[0].Message, "chain ends here")
	assert.Equal(t, nusc.TableScene, res.Issues[1].Table)
	assert.Contains(t, res.Issues[1].Message, "chain has 2 samples, nbr_samples is 3")
}

func TestSceneChains_Loop(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 3})
	d.Samples[2].Next = token.Some(d.Samples[0].Token)

	res := SceneChains(open(t, d))

	require.Equal(t, 1, res.Count)
	assert.Contains(t, res.Issues[0].Message, "chain loops back to "+d.Samples[0].Token.String())
}

func TestSceneChains_AsymmetricPrev(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 3})
	d.Samples[2].Prev = token.Some(d.Samples[0].Token)

	res := SceneChains(open(t, d))

	require.Equal(t, 1, res.Count)
	assert.Equal(t, d.Samples[2].Token.String(), res.Issues[0].Token)
	assert.Contains(t, res.Issues[0].Message, "prev link does not point back")
}

func TestSceneChains_MissingFirst(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 2})
	d.Scenes[0].FirstSampleToken = token.New()

	res := SceneChains(open(t, d))

	require.Equal(t, 2, res.Count)
	assert.Contains(t, res.Issues[0].Message, "first record of the chain does not exist")
	assert.Contains(t, res.Issues[1].Message, "chain has 0 samples")
}

func TestSceneChains_WrongScene(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 2, SamplesPerScene: 2})
	d.Samples[1].SceneToken = d.Scenes[1].Token

	res := SceneChains(open(t, d))

	require.Equal(t, 1, res.Count)
	assert.Equal(t, d.Samples[1].Token.String(), res.Issues[0].Token)
	assert.Contains(t, res.Issues[0].Message, "belongs to "+d.Scenes[1].Token.String())
}

func TestInstanceChains_CountMismatch(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 3})
	d.Instances[0].NbrAnnotations = 5

	res := InstanceChains(open(t, d))

	require.Equal(t, 1, res.Count)
	assert.Equal(t, nusc.TableInstance, res.Issues[0].Table)
	assert.Contains(t, res.Issues[0].Message, "chain has 3 annotations, nbr_annotations is 5")
}

func TestSampleDataChains_DanglingNext(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 2})
	d.SampleData[0].Next = token.Some(token.New())

	res := SampleDataChains(open(t, d))

	require.Equal(t, 1, res.Count)
	assert.Equal(t, d.SampleData[0].Token.String(), res.Issues[0].Token)
	assert.Contains(t, res.Issues[0].Message, "does not exist")
}

func TestReferences_Missing(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 2})
	d.Scenes[0].LogToken = token.New()
	d.SampleData[0].EgoPoseToken = token.New()
	d.Annotations[0].AttributeTokens = []token.Token{token.New()}
	d.Maps[0].LogTokens = append(d.Maps[0].LogTokens, token.New())
	d.LidarSeg[0].SampleDataToken = token.New()

	res := References(open(t, d))

	assert.Equal(t, StatusFailed, res.Status)
	require.Equal(t, 5, res.Count)
	tables := make([]string, 0, len(res.Issues))
	for _, iss := range res.Issues {
		tables = append(tables, iss.Table)
	}
	assert.Equal(t, []string{
		nusc.TableMap, nusc.TableScene, nusc.TableSampleData, nusc.TableSampleAnnotation, nusc.TableLidarSeg,
	}, tables)
	assert.Equal(t, "log_token "+d.Scenes[0].LogToken.String()+" not found in log", res.Issues[1].Message)
}

func TestReferences_OptionalTablesAbsent(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 2})
	d.LidarSeg, d.Panoptic = nil, nil

	res := References(open(t, d))

	assert.Equal(t, StatusOK, res.Status)
}

func TestDuplicates(t *testing.T) {
	d := nusctest.New(nusctest.Options{Scenes: 1, SamplesPerScene: 2})
	d.Attributes = append(d.Attributes, d.Attributes[0], d.Attributes[1])

	res := Duplicates(open(t, d))

	require.Equal(t, 1, res.Count)
	assert.Equal(t, nusc.TableAttribute, res.Issues[0].Table)
	assert.Equal(t, "2 rows shadowed by a later row with the same token", res.Issues[0].Message)
}

func TestCollector_CapsIssues(t *testing.T) {
	c := newCollector("test")
	for range MaxIssues + 10 {
		c.add("sample", "", "broken")
	}

	res := c.result()

	assert.Equal(t, MaxIssues+10, res.Count)
	assert.Len(t, res.Issues, MaxIssues)
}
