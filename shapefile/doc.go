// Package shapefile declares record shapes from YAML or JSON documents whose
// field types are written as type expressions.
package shapefile
