// Package model defines the record types of the nuScenes schema.
//
// Each type decodes directly from one row of its source JSON table. Fields
// tagged `json:"-"` are derived: they are absent from the source file and are
// filled in by the resolver while the snapshot is built (Log.MapToken,
// SampleData.Modality/Channel, SampleAnnotation.CategoryName, Sample.Data and
// Sample.Anns).
//
// Records are values. Slices held by a record (token lists, annotation lists)
// are shared with the snapshot and must not be modified.
//
// # Tables
//
//   - Vehicle: Log, Map, Sensor, CalibratedSensor
//   - Extraction: Scene, Sample, SampleData, EgoPose
//   - Annotation: Instance, SampleAnnotation
//   - Taxonomy: Category, Attribute
//   - Extensions: LidarSeg, Panoptic
//
// Every record implements Key (its own token) and Fields (the ordered
// field/value rendering handed to callers).
package model
