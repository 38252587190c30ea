// Package export writes a denormalized snapshot into a SQL database.
//
// Scenes, samples, captures, annotations, instances and categories are
// flattened into GORM models: scenes carry their log's location and vehicle,
// captures their channel and modality, annotations and instances their
// category name. Every export replaces the previous contents inside a single
// transaction and verifies row counts once it commits.
package export
