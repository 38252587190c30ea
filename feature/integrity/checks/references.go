package checks

import (
	"fmt"

	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/core/token"
)

// References checks foreign keys that loading tolerates: scene to log, sample
// to scene, sample_data to sample and ego_pose, annotation to sample and
// attribute, map to log, and the optional extension tables to sample_data.
func References(t *nusc.Tables) Result {
	c := newCollector("references")
	missing := func(tbl string, owner token.Token, field, target string, ref token.Token) {
		c.add(tbl, owner.String(), field+" "+ref.String()+" not found in "+target)
	}

	for _, m := range t.Map().All() {
		for _, l := range m.LogTokens {
			if !t.Log().Has(l) {
				missing(nusc.TableMap, m.Token, "log_tokens", nusc.TableLog, l)
			}
		}
	}
	for _, sc := range t.Scene().All() {
		if !t.Log().Has(sc.LogToken) {
			missing(nusc.TableScene, sc.Token, "log_token", nusc.TableLog, sc.LogToken)
		}
	}
	for _, s := range t.Sample().All() {
		if !t.Scene().Has(s.SceneToken) {
			missing(nusc.TableSample, s.Token, "scene_token", nusc.TableScene, s.SceneToken)
		}
	}
	for _, d := range t.SampleData().All() {
		if !t.Sample().Has(d.SampleToken) {
			missing(nusc.TableSampleData, d.Token, "sample_token", nusc.TableSample, d.SampleToken)
		}
		if !t.EgoPose().Has(d.EgoPoseToken) {
			missing(nusc.TableSampleData, d.Token, "ego_pose_token", nusc.TableEgoPose, d.EgoPoseToken)
		}
	}
	for _, a := range t.SampleAnnotation().All() {
		if !t.Sample().Has(a.SampleToken) {
			missing(nusc.TableSampleAnnotation, a.Token, "sample_token", nusc.TableSample, a.SampleToken)
		}
		for _, at := range a.AttributeTokens {
			if !t.Attribute().Has(at) {
				missing(nusc.TableSampleAnnotation, a.Token, "attribute_tokens", nusc.TableAttribute, at)
			}
		}
	}
	if ls, ok := t.LidarSeg(); ok {
		for _, r := range ls.All() {
			if !t.SampleData().Has(r.SampleDataToken) {
				missing(nusc.TableLidarSeg, r.Token, "sample_data_token", nusc.TableSampleData, r.SampleDataToken)
			}
		}
	}
	if pan, ok := t.Panoptic(); ok {
		for _, r := range pan.All() {
			if !t.SampleData().Has(r.SampleDataToken) {
				missing(nusc.TablePanoptic, r.Token, "sample_data_token", nusc.TableSampleData, r.SampleDataToken)
			}
		}
	}
	return c.result()
}

// Duplicates reports every table in which a later row shadowed an earlier
// one with the same token.
func Duplicates(t *nusc.Tables) Result {
	c := newCollector("duplicates")
	for _, st := range t.Stats() {
		if st.Duplicates > 0 {
			c.add(st.Name, "", fmt.Sprintf("%d rows shadowed by a later row with the same token", st.Duplicates))
		}
	}
	return c.result()
}
