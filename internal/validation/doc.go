// Package validation declares the shape of every request body the API
// accepts and checks incoming values against it.
//
// Rules are expressed as go-playground/validator struct tags plus a few
// custom ones (objectid, handle, social=<platform>) and a struct-level date
// range rule for experience and education entries. Only the first violation
// is reported, rendered as a human-readable message that names the JSON path
// of the offending field.
package validation
