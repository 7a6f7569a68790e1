// Package result wraps converted replies into a uniform value.
//
// Every query answer is a Result holding the query, a shape tag and the
// canonical payload. There are two shapes: ShapeList for sequences and ShapeMap
// for ordered field maps. Generic consumers only need to branch on the shape,
// never on the command that produced the result.
package result
