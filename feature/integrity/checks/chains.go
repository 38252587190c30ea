package checks

import (
	"fmt"

	"nuscenes-devkit/core/nusc"
	"nuscenes-devkit/core/nusc/model"
	"nuscenes-devkit/core/table"
	"nuscenes-devkit/core/token"
)

// link exposes the doubly linked list fields of a record.
type link[T table.Record] struct {
	rows  *table.Table[T]
	prev  func(T) token.Optional
	next  func(T) token.Optional
	owner func(T) token.Token
}

// walk follows next pointers from first and reports broken links. It returns
// the number of records visited.
func walk[T table.Record](c *collector, tbl string, l link[T], owner, first, last token.Token) int {
	cur, ok := l.rows.Get(first)
	if !ok {
		c.add(tbl, first.String(), "first record of the chain does not exist")
		return 0
	}
	if l.prev(cur).Valid {
		c.add(tbl, first.String(), "first record of the chain has a prev link")
	}

	seen := make(map[token.Token]struct{})
	for n := 1; ; n++ {
		key := cur.Key()
		seen[key] = struct{}{}
		if l.owner(cur) != owner {
			c.add(tbl, key.String(), fmt.Sprintf("belongs to %s, not to %s", l.owner(cur), owner))
		}

		nextTok, hasNext := l.next(cur).Get()
		if !hasNext {
			if key != last {
				c.add(tbl, key.String(), fmt.Sprintf("chain ends here, expected last record %s", last))
			}
			return n
		}
		if _, loop := seen[nextTok]; loop {
			c.add(tbl, key.String(), "chain loops back to "+nextTok.String())
			return n
		}
		next, ok := l.rows.Get(nextTok)
		if !ok {
			c.add(tbl, key.String(), "next record "+nextTok.String()+" does not exist")
			return n
		}
		if back, _ := l.prev(next).Get(); back != key {
			c.add(tbl, nextTok.String(), "prev link does not point back to "+key.String())
		}
		cur = next
	}
}

// SceneChains checks that every scene's samples form one chain from the first
// to the last sample, with nbr_samples entries.
func SceneChains(t *nusc.Tables) Result {
	c := newCollector("scene_chains")
	l := link[model.Sample]{
		rows:  t.Sample(),
		prev:  func(s model.Sample) token.Optional { return s.Prev },
		next:  func(s model.Sample) token.Optional { return s.Next },
		owner: func(s model.Sample) token.Token { return s.SceneToken },
	}
	for _, sc := range t.Scene().All() {
		if !t.Sample().Has(sc.LastSampleToken) {
			c.add(nusc.TableScene, sc.Token.String(), "last sample "+sc.LastSampleToken.String()+" does not exist")
		}
		n := walk(c, nusc.TableSample, l, sc.Token, sc.FirstSampleToken, sc.LastSampleToken)
		if n != sc.NbrSamples {
			c.add(nusc.TableScene, sc.Token.String(), fmt.Sprintf("chain has %d samples, nbr_samples is %d", n, sc.NbrSamples))
		}
	}
	return c.result()
}

// InstanceChains checks that every instance's annotations form one chain from
// the first to the last annotation, with nbr_annotations entries.
func InstanceChains(t *nusc.Tables) Result {
	c := newCollector("instance_chains")
	l := link[model.SampleAnnotation]{
		rows:  t.SampleAnnotation(),
		prev:  func(a model.SampleAnnotation) token.Optional { return a.Prev },
		next:  func(a model.SampleAnnotation) token.Optional { return a.Next },
		owner: func(a model.SampleAnnotation) token.Token { return a.InstanceToken },
	}
	for _, ins := range t.Instance().All() {
		if !t.SampleAnnotation().Has(ins.LastAnnotationToken) {
			c.add(nusc.TableInstance, ins.Token.String(), "last annotation "+ins.LastAnnotationToken.String()+" does not exist")
		}
		n := walk(c, nusc.TableSampleAnnotation, l, ins.Token, ins.FirstAnnotationToken, ins.LastAnnotationToken)
		if n != ins.NbrAnnotations {
			c.add(nusc.TableInstance, ins.Token.String(), fmt.Sprintf("chain has %d annotations, nbr_annotations is %d", n, ins.NbrAnnotations))
		}
	}
	return c.result()
}

// SampleDataChains checks that prev/next links of every capture point at
// existing captures that link back.
func SampleDataChains(t *nusc.Tables) Result {
	c := newCollector("sample_data_chains")
	sd := t.SampleData()
	for _, d := range sd.All() {
		if next, ok := d.Next.Get(); ok {
			n, found := sd.Get(next)
			switch {
			case !found:
				c.add(nusc.TableSampleData, d.Token.String(), "next capture "+next.String()+" does not exist")
			case n.Prev.Token != d.Token || !n.Prev.Valid:
				c.add(nusc.TableSampleData, next.String(), "prev link does not point back to "+d.Token.String())
			}
		}
		if prev, ok := d.Prev.Get(); ok && !sd.Has(prev) {
			c.add(nusc.TableSampleData, d.Token.String(), "prev capture "+prev.String()+" does not exist")
		}
	}
	return c.result()
}
